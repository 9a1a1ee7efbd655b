package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/railzwaylabs/billingkit/internal/tax/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Resolver struct {
	db   *gorm.DB
	log  *zap.Logger
	repo taxdomain.Repository
}

type ResolverParam struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo taxdomain.Repository
}

func NewResolver(p ResolverParam) taxdomain.Resolver {
	return &Resolver{
		db:   p.DB,
		log:  p.Log.Named("tax.resolver"),
		repo: p.Repo,
	}
}

func (r *Resolver) ResolveTaxPercent(ctx context.Context, ownerID snowflake.ID) (*decimal.Decimal, error) {
	rate, err := r.repo.FindByOwnerID(ctx, r.db, ownerID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, nil
	}

	percent := rate.Percent
	return &percent, nil
}
