package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	subscriptiondomain "github.com/railzwaylabs/billingkit/internal/subscription/domain"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() subscriptiondomain.Repository {
	return &repository{}
}

func (r *repository) Create(ctx context.Context, db *gorm.DB, sub *subscriptiondomain.Subscription) error {
	if sub == nil || sub.OwnerID == 0 {
		return subscriptiondomain.ErrInvalidOwner
	}
	if strings.TrimSpace(sub.RemoteID) == "" {
		return subscriptiondomain.ErrMissingRemoteID
	}

	err := db.WithContext(ctx).Create(sub).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return subscriptiondomain.ErrDuplicateRemoteID
	}
	return err
}

func (r *repository) FindByRemoteID(ctx context.Context, db *gorm.DB, remoteID string) (*subscriptiondomain.Subscription, error) {
	var sub subscriptiondomain.Subscription
	err := db.WithContext(ctx).Where("remote_id = ?", remoteID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, subscriptiondomain.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) ListByOwnerID(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) ([]subscriptiondomain.Subscription, error) {
	if ownerID == 0 {
		return nil, subscriptiondomain.ErrInvalidOwner
	}

	var subs []subscriptiondomain.Subscription
	err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
