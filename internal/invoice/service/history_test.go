package service

import (
	"context"
	"testing"
	"time"

	invoicedomain "github.com/railzwaylabs/billingkit/internal/invoice/domain"
	"github.com/stretchr/testify/require"
)

type fakeAttemptSource struct {
	attempts []invoicedomain.PaymentAttempt
	err      error
}

func (s *fakeAttemptSource) ListForCustomer(ctx context.Context, customerID string) ([]invoicedomain.PaymentAttempt, error) {
	return s.attempts, s.err
}

func TestHistoryMergesAttemptsAndTransitions(t *testing.T) {
	created := viewNow.Add(-72 * time.Hour)
	chargedAt := viewNow.Add(-48 * time.Hour)
	paidAt := viewNow.Add(-24 * time.Hour)

	source := &fakeAttemptSource{
		attempts: []invoicedomain.PaymentAttempt{
			{
				ID:        "pi_1",
				Status:    "succeeded",
				InvoiceID: "in_1",
				CreatedAt: chargedAt,
				Charges: []invoicedomain.Charge{
					{ID: "ch_1", Status: invoicedomain.ChargeStatusFailed, CreatedAt: chargedAt},
				},
			},
		},
	}

	view := newTestView(&invoicedomain.Snapshot{
		ID:         "in_1",
		CustomerID: "cus_1",
		Paid:       true,
		Transitions: invoicedomain.StatusTransitions{
			CreatedAt: &created,
			PaidAt:    &paidAt,
		},
	}, source)

	events, err := view.History(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)

	require.Equal(t, "Invoice was paid", events[0].Description)
	require.Equal(t, invoicedomain.SeveritySuccess, events[0].Severity)
	require.Equal(t, invoicedomain.EventSourceStatusTransition, events[0].Source)

	require.Equal(t, "Payment failed", events[1].Description)
	require.Equal(t, invoicedomain.SeverityDanger, events[1].Severity)
	require.Equal(t, invoicedomain.EventSourcePaymentAttempt, events[1].Source)

	require.Equal(t, "Invoice was created", events[2].Description)
	require.Equal(t, invoicedomain.SeverityNeutral, events[2].Severity)
}

func TestHistoryFiltersOtherInvoices(t *testing.T) {
	source := &fakeAttemptSource{
		attempts: []invoicedomain.PaymentAttempt{
			{ID: "pi_other", Status: "succeeded", InvoiceID: "in_other", CreatedAt: viewNow},
		},
	}

	view := newTestView(&invoicedomain.Snapshot{ID: "in_1", CustomerID: "cus_1"}, source)

	events, err := view.History(context.Background())
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestHistoryFinalizedRelabeledWhenPaid(t *testing.T) {
	finalized := viewNow.Add(-time.Hour)

	view := newTestView(&invoicedomain.Snapshot{
		ID:   "in_1",
		Paid: true,
		Transitions: invoicedomain.StatusTransitions{
			FinalizedAt: &finalized,
		},
	}, &fakeAttemptSource{})

	events, err := view.History(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Invoice was created", events[0].Description)

	// Unpaid invoices keep the finalized label.
	view = newTestView(&invoicedomain.Snapshot{
		ID: "in_1",
		Transitions: invoicedomain.StatusTransitions{
			FinalizedAt: &finalized,
		},
	}, &fakeAttemptSource{})

	events, err = view.History(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Invoice was finalized", events[0].Description)
}

func TestHistoryVoidAndUncollectibleAreWarnings(t *testing.T) {
	voided := viewNow.Add(-time.Hour)
	uncollectible := viewNow.Add(-2 * time.Hour)

	view := newTestView(&invoicedomain.Snapshot{
		ID: "in_1",
		Transitions: invoicedomain.StatusTransitions{
			VoidedAt:              &voided,
			MarkedUncollectibleAt: &uncollectible,
		},
	}, &fakeAttemptSource{})

	events, err := view.History(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Invoice was voided", events[0].Description)
	require.Equal(t, invoicedomain.SeverityWarning, events[0].Severity)
	require.Equal(t, "Invoice was marked uncollectible", events[1].Description)
	require.Equal(t, invoicedomain.SeverityWarning, events[1].Severity)
}

func TestHistoryPaidWithoutPaidFlagStaysNeutral(t *testing.T) {
	paidAt := viewNow.Add(-time.Hour)

	view := newTestView(&invoicedomain.Snapshot{
		ID: "in_1",
		Transitions: invoicedomain.StatusTransitions{
			PaidAt: &paidAt,
		},
	}, &fakeAttemptSource{})

	events, err := view.History(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, invoicedomain.SeverityNeutral, events[0].Severity)
}

func TestHistoryAttemptWithoutCharges(t *testing.T) {
	source := &fakeAttemptSource{
		attempts: []invoicedomain.PaymentAttempt{
			{
				ID:        "pi_1",
				Status:    invoicedomain.AttemptStatusRequiresPaymentMethod,
				InvoiceID: "in_1",
				CreatedAt: viewNow.Add(-time.Hour),
			},
		},
	}

	view := newTestView(&invoicedomain.Snapshot{ID: "in_1", CustomerID: "cus_1"}, source)

	events, err := view.History(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Payment requires payment method", events[0].Description)
	require.Equal(t, invoicedomain.SeverityDanger, events[0].Severity)
}

func TestHistoryChargeWithoutTimestampFallsBackToAttempt(t *testing.T) {
	attemptAt := viewNow.Add(-time.Hour)
	source := &fakeAttemptSource{
		attempts: []invoicedomain.PaymentAttempt{
			{
				ID:        "pi_1",
				Status:    "succeeded",
				InvoiceID: "in_1",
				CreatedAt: attemptAt,
				Charges: []invoicedomain.Charge{
					{ID: "ch_1", Status: invoicedomain.ChargeStatusSucceeded},
				},
			},
		},
	}

	view := newTestView(&invoicedomain.Snapshot{ID: "in_1", CustomerID: "cus_1"}, source)

	events, err := view.History(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, attemptAt, events[0].Timestamp)
}

func TestHistoryPaymentWinsTimestampTie(t *testing.T) {
	at := viewNow.Add(-time.Hour)

	source := &fakeAttemptSource{
		attempts: []invoicedomain.PaymentAttempt{
			{
				ID:        "pi_1",
				Status:    "succeeded",
				InvoiceID: "in_1",
				CreatedAt: at,
				Charges: []invoicedomain.Charge{
					{ID: "ch_1", Status: invoicedomain.ChargeStatusSucceeded, CreatedAt: at},
				},
			},
		},
	}

	view := newTestView(&invoicedomain.Snapshot{
		ID:   "in_1",
		Paid: true,
		Transitions: invoicedomain.StatusTransitions{
			PaidAt: &at,
		},
	}, source)

	events, err := view.History(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, invoicedomain.EventSourcePaymentAttempt, events[0].Source)
	require.Equal(t, invoicedomain.EventSourceStatusTransition, events[1].Source)
}

func TestHistoryDescendingAcrossSources(t *testing.T) {
	t1 := viewNow.Add(-4 * time.Hour)
	t2 := viewNow.Add(-3 * time.Hour)
	t3 := viewNow.Add(-2 * time.Hour)
	t4 := viewNow.Add(-1 * time.Hour)

	source := &fakeAttemptSource{
		attempts: []invoicedomain.PaymentAttempt{
			{
				ID: "pi_1", Status: "succeeded", InvoiceID: "in_1", CreatedAt: t2,
				Charges: []invoicedomain.Charge{
					{ID: "ch_1", Status: invoicedomain.ChargeStatusFailed, CreatedAt: t2},
					{ID: "ch_2", Status: invoicedomain.ChargeStatusSucceeded, CreatedAt: t4},
				},
			},
		},
	}

	view := newTestView(&invoicedomain.Snapshot{
		ID:   "in_1",
		Paid: true,
		Transitions: invoicedomain.StatusTransitions{
			CreatedAt: &t1,
			PaidAt:    &t3,
		},
	}, source)

	events, err := view.History(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 4)
	require.Equal(t, "Payment succeeded", events[0].Description)
	require.Equal(t, "Invoice was paid", events[1].Description)
	require.Equal(t, "Payment failed", events[2].Description)
	require.Equal(t, "Invoice was created", events[3].Description)
}
