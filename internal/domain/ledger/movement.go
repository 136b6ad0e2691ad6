package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypePurchase MovementType = "purchase"
	MovementTypeAdjust   MovementType = "adjust"
	MovementTypeSale     MovementType = "sale"
	MovementTypeReturn   MovementType = "return"
	MovementTypeExpire   MovementType = "expire"
	MovementTypeRecount  MovementType = "recount"
)

// IsValid reports whether the movement type is one of the known types
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase, MovementTypeAdjust, MovementTypeSale,
		MovementTypeReturn, MovementTypeExpire, MovementTypeRecount:
		return true
	}
	return false
}

// StockMovement is one append-only row in the movement ledger. Rows are
// never updated or deleted; every stock change writes at least one row,
// and AfterQty must always equal BeforeQty plus ChangeQty.
type StockMovement struct {
	shared.BaseEntity
	SKUID     uuid.UUID       `gorm:"column:sku_id;type:uuid;index;not null"`
	BatchID   *uuid.UUID      `gorm:"type:uuid;index"`
	Type      MovementType    `gorm:"size:16;index;not null"`
	ChangeQty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BeforeQty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AfterQty  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reference string          `gorm:"size:128"`
	Reason    string          `gorm:"size:255"`
	Operator  string          `gorm:"size:64"`
	MovedAt   time.Time       `gorm:"index;not null"`
}

// TableName returns the database table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// changeQtySignValid checks the change quantity sign against the movement
// type. Inbound types must increase stock and outbound types must not,
// while adjust and recount rows may carry either sign (a floored
// adjustment can even record a zero delta).
func changeQtySignValid(movType MovementType, changeQty decimal.Decimal) bool {
	switch movType {
	case MovementTypePurchase, MovementTypeReturn:
		return changeQty.IsPositive()
	case MovementTypeSale, MovementTypeExpire:
		return !changeQty.IsPositive()
	}
	return true
}

// NewStockMovement creates a ledger row, validating the balance and
// sign invariants
func NewStockMovement(skuID uuid.UUID, batchID *uuid.UUID, movType MovementType, changeQty, beforeQty, afterQty decimal.Decimal, reference, reason, operator string) (*StockMovement, error) {
	if !movType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "unknown movement type: "+string(movType))
	}
	if !afterQty.Equal(beforeQty.Add(changeQty)) {
		return nil, shared.NewDomainError("LEDGER_IMBALANCE",
			"movement balance mismatch: after quantity must equal before plus change")
	}
	if !changeQtySignValid(movType, changeQty) {
		return nil, shared.NewDomainError("LEDGER_IMBALANCE",
			"movement change sign does not match movement type "+string(movType))
	}

	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(),
		SKUID:      skuID,
		BatchID:    batchID,
		Type:       movType,
		ChangeQty:  changeQty,
		BeforeQty:  beforeQty,
		AfterQty:   afterQty,
		Reference:  reference,
		Reason:     reason,
		Operator:   operator,
		MovedAt:    time.Now(),
	}, nil
}
