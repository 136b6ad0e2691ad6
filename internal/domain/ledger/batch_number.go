package ledger

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// batchNoPattern matches numbers of the form ACM20250301-007
var batchNoPattern = regexp.MustCompile(`^[A-Z0-9]{1,16}\d{8}-\d{3,}$`)

// SequenceAllocator hands out monotonically increasing sequence numbers.
// The sequence is shared across all brands for a given day, so two batches
// received on the same day never collide even under concurrent purchases.
type SequenceAllocator interface {
	// Next returns the next sequence number for the given day
	Next(ctx context.Context, day time.Time) (int, error)
}

// BatchNumberGenerator builds batch numbers of the form
// {brandCode}{yyyyMMdd}-{seq} where seq is zero padded to three digits.
type BatchNumberGenerator struct {
	sequences SequenceAllocator
}

// NewBatchNumberGenerator creates a batch number generator
func NewBatchNumberGenerator(sequences SequenceAllocator) *BatchNumberGenerator {
	return &BatchNumberGenerator{sequences: sequences}
}

// Generate produces the next batch number for the brand on the given day
func (g *BatchNumberGenerator) Generate(ctx context.Context, brandCode string, day time.Time) (string, error) {
	seq, err := g.sequences.Next(ctx, day)
	if err != nil {
		return "", fmt.Errorf("allocate batch sequence: %w", err)
	}
	return FormatBatchNumber(brandCode, day, seq), nil
}

// FormatBatchNumber renders a batch number from its parts. Sequences above
// 999 widen the suffix rather than wrapping.
func FormatBatchNumber(brandCode string, day time.Time, seq int) string {
	return fmt.Sprintf("%s%s-%03d", brandCode, day.Format("20060102"), seq)
}

// IsValidBatchNumber reports whether a string looks like a generated batch number
func IsValidBatchNumber(batchNo string) bool {
	return batchNoPattern.MatchString(batchNo)
}
