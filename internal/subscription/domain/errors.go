package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid subscription configuration")
	ErrPlanRequired         = fmt.Errorf("%w: plan identifier required", ErrInvalidConfiguration)
	ErrInvalidQuantity      = fmt.Errorf("%w: quantity must be at least 1", ErrInvalidConfiguration)
	ErrDueDaysRequired      = fmt.Errorf("%w: send_invoice mode requires a positive days-until-due window", ErrInvalidConfiguration)

	ErrCreationFailed         = errors.New("subscription creation failed")
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrInvalidOwner           = errors.New("invalid subscription owner")
	ErrDuplicateRemoteID      = errors.New("subscription remote id already recorded")
	ErrMissingRemoteID        = errors.New("subscription remote id required")
)

// CreationFailedError reports a remote subscription that came back in an
// incomplete state and has already been cancelled remotely. The remote
// id and status are kept for diagnostics.
type CreationFailedError struct {
	RemoteID string
	Status   RemoteStatus
}

func (e *CreationFailedError) Error() string {
	return fmt.Sprintf("subscription creation failed: remote subscription %s returned status %q and was cancelled", e.RemoteID, e.Status)
}

func (e *CreationFailedError) Unwrap() error { return ErrCreationFailed }
