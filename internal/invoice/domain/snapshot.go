package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemType is the provider's line discriminator.
type LineItemType string

const (
	LineItemTypeInvoiceItem  LineItemType = "invoiceitem"
	LineItemTypeSubscription LineItemType = "subscription"
)

// Snapshot is the raw provider invoice as received from the gateway.
// It is read-only; views wrap it and never mutate it. Optional fields
// are legitimately absent depending on invoice state, so every derived
// computation defaults instead of failing.
type Snapshot struct {
	ID         string
	CustomerID string
	Number     string
	Currency   string

	Paid         bool
	Attempted    bool
	AttemptCount int64

	Subtotal        int64
	Tax             int64
	Total           int64
	StartingBalance int64

	PrePaymentCreditNotesAmount  int64
	PostPaymentCreditNotesAmount int64

	Discount *Discount
	Lines    []LineItem

	DueDate     *time.Time
	Transitions StatusTransitions
}

// Discount wraps the provider's discount descriptor.
type Discount struct {
	Coupon Coupon
}

// Coupon expresses either a percent-off or an amount-off discount.
type Coupon struct {
	ID         string
	PercentOff *decimal.Decimal
	AmountOff  *int64
}

type LineItem struct {
	ID          string
	Type        LineItemType
	Description string
	Amount      int64
	Currency    string
	Quantity    int64
}

// StatusTransitions are the invoice's named lifecycle timestamps, in
// the provider's declaration order.
type StatusTransitions struct {
	CreatedAt             *time.Time
	FinalizedAt           *time.Time
	PaidAt                *time.Time
	VoidedAt              *time.Time
	MarkedUncollectibleAt *time.Time
}

const (
	TransitionCreated             = "created_at"
	TransitionFinalized           = "finalized_at"
	TransitionPaid                = "paid_at"
	TransitionVoided              = "voided_at"
	TransitionMarkedUncollectible = "marked_uncollectible_at"
)

// Transition pairs a transition name with its timestamp.
type Transition struct {
	Name string
	At   time.Time
}

// Reversed returns the non-nil transitions, newest-declared first. The
// reverse declaration order is deliberate: downstream history assembly
// depends on it for stable pre-sort ordering.
func (t StatusTransitions) Reversed() []Transition {
	declared := []struct {
		name string
		at   *time.Time
	}{
		{TransitionMarkedUncollectible, t.MarkedUncollectibleAt},
		{TransitionVoided, t.VoidedAt},
		{TransitionPaid, t.PaidAt},
		{TransitionFinalized, t.FinalizedAt},
		{TransitionCreated, t.CreatedAt},
	}

	out := make([]Transition, 0, len(declared))
	for _, entry := range declared {
		if entry.at == nil {
			continue
		}
		out = append(out, Transition{Name: entry.name, At: *entry.at})
	}
	return out
}
