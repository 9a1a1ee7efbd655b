package domain

import (
	"context"
	"time"
)

// Severity classifies a billing event for rendering.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityNeutral Severity = "neutral"
)

// EventSource tags which vocabulary a history entry came from.
type EventSource string

const (
	EventSourcePaymentAttempt   EventSource = "payment_attempt"
	EventSourceStatusTransition EventSource = "status_transition"
)

// BillingEvent is the unified history entry. It is transient: built
// during one History call, never persisted.
type BillingEvent struct {
	Timestamp   time.Time
	Description string
	Source      EventSource
	Severity    Severity
}

// Charge statuses as reported by the provider.
const (
	ChargeStatusSucceeded = "succeeded"
	ChargeStatusPending   = "pending"
	ChargeStatusFailed    = "failed"
)

// AttemptStatusRequiresPaymentMethod marks an attempt that stalled for
// want of a usable payment method.
const AttemptStatusRequiresPaymentMethod = "requires_payment_method"

type Charge struct {
	ID        string
	Status    string
	CreatedAt time.Time
}

// PaymentAttempt is one provider-side attempt to collect an invoice.
// Charges nest the individual charge tries, possibly empty.
type PaymentAttempt struct {
	ID        string
	Status    string
	InvoiceID string
	CreatedAt time.Time
	Charges   []Charge
}

// PaymentAttemptSource lists a customer's payment attempts; history
// assembly filters them down to one invoice.
type PaymentAttemptSource interface {
	ListForCustomer(ctx context.Context, customerID string) ([]PaymentAttempt, error)
}
