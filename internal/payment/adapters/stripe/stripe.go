package stripe

import (
	"context"
	"strings"
	"time"

	invoicedomain "github.com/railzwaylabs/billingkit/internal/invoice/domain"
	paymentdomain "github.com/railzwaylabs/billingkit/internal/payment/domain"
	subscriptiondomain "github.com/railzwaylabs/billingkit/internal/subscription/domain"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Provider() string {
	return "stripe"
}

func (f *Factory) NewAdapter(cfg paymentdomain.AdapterConfig, log *zap.Logger) (*Adapter, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, paymentdomain.ErrInvalidConfig
	}

	return &Adapter{
		client: stripe.NewClient(apiKey, nil),
		log:    log.Named("payment.stripe"),
	}, nil
}

// Adapter implements the gateway-side collaborator contracts on the
// official Stripe client: subscription submit/cancel and the payment
// attempt source backed by payment intents.
type Adapter struct {
	client *stripe.Client
	log    *zap.Logger
}

// Submit maps a creation request onto Stripe subscription params. Only
// present fields are set, preserving the sparse-field contract: Stripe
// distinguishes an absent field from an explicit zero.
func (a *Adapter) Submit(ctx context.Context, req *subscriptiondomain.CreationRequest, customer subscriptiondomain.CustomerHandle) (subscriptiondomain.RemoteSubscription, error) {
	if strings.TrimSpace(customer.ID) == "" {
		return subscriptiondomain.RemoteSubscription{}, paymentdomain.ErrMissingCustomer
	}

	params := &stripe.SubscriptionCreateParams{
		Customer: stripe.String(customer.ID),
		Items: []*stripe.SubscriptionCreateItemParams{
			{
				Price:    stripe.String(req.Plan),
				Quantity: stripe.Int64(req.Quantity),
			},
		},
		CollectionMethod: stripe.String(req.CollectionMethod.String()),
	}

	if req.TrialEnd != nil {
		if req.TrialEnd.Now {
			params.TrialEndNow = stripe.Bool(true)
		} else {
			params.TrialEnd = stripe.Int64(req.TrialEnd.At.Unix())
		}
	}
	if req.Coupon != nil {
		params.Discounts = []*stripe.SubscriptionCreateDiscountParams{
			{Coupon: stripe.String(*req.Coupon)},
		}
	}
	if len(req.Metadata) > 0 {
		params.Metadata = req.Metadata
	}
	if req.DaysUntilDue != nil {
		params.DaysUntilDue = stripe.Int64(*req.DaysUntilDue)
	}
	if len(req.TaxRates) > 0 {
		params.DefaultTaxRates = stripe.StringSlice(req.TaxRates)
	}
	if req.BillingCycleAnchor != nil {
		params.BillingCycleAnchor = stripe.Int64(*req.BillingCycleAnchor)
	}

	sub, err := a.client.V1Subscriptions.Create(ctx, params)
	if err != nil {
		a.log.Error("stripe subscription create failed",
			zap.String("customer_id", customer.ID),
			zap.String("plan", req.Plan),
			zap.Error(err))
		return subscriptiondomain.RemoteSubscription{}, err
	}

	return subscriptiondomain.RemoteSubscription{
		ID:     sub.ID,
		Status: subscriptiondomain.RemoteStatus(sub.Status),
	}, nil
}

func (a *Adapter) Cancel(ctx context.Context, remoteID string) error {
	_, err := a.client.V1Subscriptions.Cancel(ctx, remoteID, nil)
	if err != nil {
		a.log.Error("stripe subscription cancel failed",
			zap.String("remote_id", remoteID),
			zap.Error(err))
	}
	return err
}

// ListForCustomer maps the customer's payment intents to payment
// attempts. The invoice association rides in intent metadata under
// invoice_id, mirrored by Submit's metadata contract.
func (a *Adapter) ListForCustomer(ctx context.Context, customerID string) ([]invoicedomain.PaymentAttempt, error) {
	params := &stripe.PaymentIntentListParams{
		Customer: stripe.String(customerID),
	}

	var attempts []invoicedomain.PaymentAttempt
	for intent, err := range a.client.V1PaymentIntents.List(ctx, params) {
		if err != nil {
			return nil, err
		}

		attempt := invoicedomain.PaymentAttempt{
			ID:        intent.ID,
			Status:    string(intent.Status),
			InvoiceID: intent.Metadata["invoice_id"],
			CreatedAt: time.Unix(intent.Created, 0).UTC(),
		}
		if intent.LatestCharge != nil {
			attempt.Charges = append(attempt.Charges, invoicedomain.Charge{
				ID:        intent.LatestCharge.ID,
				Status:    string(intent.LatestCharge.Status),
				CreatedAt: time.Unix(intent.LatestCharge.Created, 0).UTC(),
			})
		}

		attempts = append(attempts, attempt)
	}

	return attempts, nil
}
