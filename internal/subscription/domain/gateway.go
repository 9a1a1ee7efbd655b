package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// RemoteStatus is the provider-side subscription status returned on
// creation.
type RemoteStatus string

const (
	RemoteStatusActive            RemoteStatus = "active"
	RemoteStatusTrialing          RemoteStatus = "trialing"
	RemoteStatusPastDue           RemoteStatus = "past_due"
	RemoteStatusIncomplete        RemoteStatus = "incomplete"
	RemoteStatusIncompleteExpired RemoteStatus = "incomplete_expired"
	RemoteStatusCanceled          RemoteStatus = "canceled"
	RemoteStatusUnpaid            RemoteStatus = "unpaid"
)

// Incomplete reports whether a just-created remote subscription must be
// cancelled instead of recorded locally.
func (s RemoteStatus) Incomplete() bool {
	return s == RemoteStatusIncomplete || s == RemoteStatusIncompleteExpired
}

type CustomerHandle struct {
	ID string
}

type RemoteSubscription struct {
	ID     string
	Status RemoteStatus
}

// OwnerAccount is the billable entity on whose behalf subscriptions are
// created. Implementations own the remote-customer lifecycle; the
// builder only asks for a handle and a payment method attachment.
type OwnerAccount interface {
	OwnerID() snowflake.ID
	EnsureRemoteCustomer(ctx context.Context, options map[string]string) (CustomerHandle, error)
	AttachPaymentMethod(ctx context.Context, token string) error
}

// Gateway submits creation requests to the billing provider. Transport,
// retries and timeouts are the implementation's concern.
type Gateway interface {
	Submit(ctx context.Context, req *CreationRequest, customer CustomerHandle) (RemoteSubscription, error)
	Cancel(ctx context.Context, remoteID string) error
}
