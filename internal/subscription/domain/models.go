package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Subscription is the local record persisted after a successful remote
// creation.
type Subscription struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	OwnerID     snowflake.ID      `gorm:"not null;index" json:"owner_id"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	RemoteID    string            `gorm:"type:text;not null;uniqueIndex" json:"remote_id"`
	Plan        string            `gorm:"type:text;not null" json:"plan"`
	Quantity    int64             `gorm:"not null;default:1" json:"quantity"`
	TrialEndsAt *time.Time        `json:"trial_ends_at"`
	EndsAt      *time.Time        `json:"ends_at"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// OnTrial reports whether the record is still inside its trial window.
func (s *Subscription) OnTrial(now time.Time) bool {
	return s.TrialEndsAt != nil && s.TrialEndsAt.After(now)
}

// Ended reports whether the subscription has a past end date.
func (s *Subscription) Ended(now time.Time) bool {
	return s.EndsAt != nil && !s.EndsAt.After(now)
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, sub *Subscription) error
	FindByRemoteID(ctx context.Context, db *gorm.DB, remoteID string) (*Subscription, error)
	ListByOwnerID(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) ([]Subscription, error)
}
