package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GormSequenceAllocator hands out per-day batch number sequences through an
// atomic upsert. Two concurrent purchases on the same day can never observe
// the same sequence, unlike a scan-max-plus-one over existing batch numbers.
type GormSequenceAllocator struct {
	db *gorm.DB
}

// NewGormSequenceAllocator creates a new GormSequenceAllocator
func NewGormSequenceAllocator(db *gorm.DB) *GormSequenceAllocator {
	return &GormSequenceAllocator{db: db}
}

// Next returns the next sequence number for the given day
func (a *GormSequenceAllocator) Next(ctx context.Context, day time.Time) (int, error) {
	var seq int
	err := a.db.WithContext(ctx).Raw(`
		INSERT INTO batch_day_sequences (day, last_seq)
		VALUES (?, 1)
		ON CONFLICT (day)
		DO UPDATE SET last_seq = batch_day_sequences.last_seq + 1
		RETURNING last_seq`,
		day.Format("2006-01-02"),
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
