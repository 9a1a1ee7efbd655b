package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidOwner   = errors.New("invalid tax owner")
	ErrTaxRateExists  = errors.New("tax rate already exists")
	ErrInvalidPercent = errors.New("invalid tax percent")
)

// TaxRate is a per-owner percentage applied when building subscription
// requests. An owner with no row simply has no tax configured.
type TaxRate struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	OwnerID   snowflake.ID    `gorm:"not null;uniqueIndex" json:"owner_id"`
	Percent   decimal.Decimal `gorm:"type:numeric(6,3);not null" json:"percent"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (TaxRate) TableName() string { return "tax_rates" }

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, rate *TaxRate) error
	FindByOwnerID(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) (*TaxRate, error)
}

// Resolver reports an owner's tax percentage. A nil result with a nil
// error means no tax is configured, which the builder treats as an
// omitted field rather than zero percent.
type Resolver interface {
	ResolveTaxPercent(ctx context.Context, ownerID snowflake.ID) (*decimal.Decimal, error)
}
