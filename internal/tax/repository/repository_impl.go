package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/railzwaylabs/billingkit/internal/tax/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct{}

func NewRepository() taxdomain.Repository {
	return &repository{}
}

func (r *repository) Upsert(ctx context.Context, db *gorm.DB, rate *taxdomain.TaxRate) error {
	if rate == nil || rate.OwnerID == 0 {
		return taxdomain.ErrInvalidOwner
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"percent", "updated_at"}),
		}).
		Create(rate).Error
}

func (r *repository) FindByOwnerID(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) (*taxdomain.TaxRate, error) {
	if ownerID == 0 {
		return nil, taxdomain.ErrInvalidOwner
	}

	var rate taxdomain.TaxRate
	err := db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
