package service

import (
	"context"
	"sort"
	"strings"

	invoicedomain "github.com/railzwaylabs/billingkit/internal/invoice/domain"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// History merges the invoice's payment attempts and status transitions
// into one severity-classified timeline, newest first. Payment events
// are concatenated before transition events, and the final sort is
// stable, so a payment event wins a timestamp tie with a transition.
func (v *View) History(ctx context.Context) ([]invoicedomain.BillingEvent, error) {
	attempts, err := v.attempts.ListForCustomer(ctx, v.snapshot.CustomerID)
	if err != nil {
		return nil, err
	}

	relevant := lo.Filter(attempts, func(attempt invoicedomain.PaymentAttempt, _ int) bool {
		return attempt.InvoiceID == v.snapshot.ID
	})

	events := make([]invoicedomain.BillingEvent, 0, len(relevant)+5)
	for _, attempt := range relevant {
		events = append(events, attemptEvents(attempt)...)
	}
	events = append(events, v.transitionEvents()...)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	v.log.Debug("invoice history assembled",
		zap.String("invoice_id", v.snapshot.ID),
		zap.Int("events", len(events)))

	return events, nil
}

// attemptEvents fans an attempt out into one event per nested charge,
// or a single event for the attempt itself when no charges exist.
func attemptEvents(attempt invoicedomain.PaymentAttempt) []invoicedomain.BillingEvent {
	if len(attempt.Charges) == 0 {
		severity := invoicedomain.SeverityNeutral
		if attempt.Status == invoicedomain.AttemptStatusRequiresPaymentMethod {
			severity = invoicedomain.SeverityDanger
		}
		return []invoicedomain.BillingEvent{{
			Timestamp:   attempt.CreatedAt,
			Description: paymentDescription(attempt.Status),
			Source:      invoicedomain.EventSourcePaymentAttempt,
			Severity:    severity,
		}}
	}

	events := make([]invoicedomain.BillingEvent, 0, len(attempt.Charges))
	for _, charge := range attempt.Charges {
		severity := invoicedomain.SeverityNeutral
		if charge.Status == invoicedomain.ChargeStatusFailed {
			severity = invoicedomain.SeverityDanger
		}

		at := charge.CreatedAt
		if at.IsZero() {
			at = attempt.CreatedAt
		}

		events = append(events, invoicedomain.BillingEvent{
			Timestamp:   at,
			Description: paymentDescription(charge.Status),
			Source:      invoicedomain.EventSourcePaymentAttempt,
			Severity:    severity,
		})
	}
	return events
}

// transitionEvents walks the non-nil status transitions in reverse
// declaration order. On a paid invoice the finalized transition is
// relabeled "created" so the timeline does not show a redundant
// finalization step next to the creation it duplicates.
func (v *View) transitionEvents() []invoicedomain.BillingEvent {
	transitions := v.snapshot.Transitions.Reversed()
	events := make([]invoicedomain.BillingEvent, 0, len(transitions))

	for _, transition := range transitions {
		name := transition.Name
		if v.snapshot.Paid && name == invoicedomain.TransitionFinalized {
			name = invoicedomain.TransitionCreated
		}

		severity := invoicedomain.SeverityNeutral
		switch {
		case name == invoicedomain.TransitionPaid && v.snapshot.Paid:
			severity = invoicedomain.SeveritySuccess
		case name == invoicedomain.TransitionVoided,
			name == invoicedomain.TransitionMarkedUncollectible:
			severity = invoicedomain.SeverityWarning
		}

		events = append(events, invoicedomain.BillingEvent{
			Timestamp:   transition.At,
			Description: transitionDescription(name),
			Source:      invoicedomain.EventSourceStatusTransition,
			Severity:    severity,
		})
	}
	return events
}

// transitionDescription strips the _at suffix and humanizes the rest:
// paid_at becomes "Invoice was paid".
func transitionDescription(name string) string {
	label := strings.TrimSuffix(name, "_at")
	label = strings.ReplaceAll(label, "_", " ")
	return "Invoice was " + label
}

func paymentDescription(status string) string {
	label := strings.ReplaceAll(strings.TrimSpace(status), "_", " ")
	if label == "" {
		label = "attempted"
	}
	return "Payment " + label
}
