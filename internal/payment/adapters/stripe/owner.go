package stripe

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/railzwaylabs/billingkit/internal/payment/domain"
	subscriptiondomain "github.com/railzwaylabs/billingkit/internal/subscription/domain"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// Owner binds a local billable account to its Stripe customer. It
// creates the remote customer lazily and remembers the handle for the
// rest of its lifetime.
type Owner struct {
	adapter    *Adapter
	ownerID    snowflake.ID
	customerID string
}

// NewOwner wraps a local owner id and, when known, its existing remote
// customer id.
func (a *Adapter) NewOwner(ownerID snowflake.ID, remoteCustomerID string) *Owner {
	return &Owner{
		adapter:    a,
		ownerID:    ownerID,
		customerID: strings.TrimSpace(remoteCustomerID),
	}
}

func (o *Owner) OwnerID() snowflake.ID { return o.ownerID }

// EnsureRemoteCustomer returns the existing handle or creates the
// customer. Recognised options: email, name, description; everything
// else lands in customer metadata alongside the local owner id.
func (o *Owner) EnsureRemoteCustomer(ctx context.Context, options map[string]string) (subscriptiondomain.CustomerHandle, error) {
	if o.customerID != "" {
		return subscriptiondomain.CustomerHandle{ID: o.customerID}, nil
	}

	params := &stripe.CustomerCreateParams{
		Metadata: map[string]string{
			"owner_id": o.ownerID.String(),
		},
	}
	for key, value := range options {
		switch key {
		case "email":
			params.Email = stripe.String(value)
		case "name":
			params.Name = stripe.String(value)
		case "description":
			params.Description = stripe.String(value)
		default:
			params.Metadata[key] = value
		}
	}

	customer, err := o.adapter.client.V1Customers.Create(ctx, params)
	if err != nil {
		o.adapter.log.Error("stripe customer create failed",
			zap.String("owner_id", o.ownerID.String()),
			zap.Error(err))
		return subscriptiondomain.CustomerHandle{}, err
	}

	o.customerID = customer.ID
	return subscriptiondomain.CustomerHandle{ID: customer.ID}, nil
}

// AttachPaymentMethod attaches the token to the remote customer and
// makes it the invoice default.
func (o *Owner) AttachPaymentMethod(ctx context.Context, token string) error {
	if o.customerID == "" {
		return paymentdomain.ErrMissingCustomer
	}

	_, err := o.adapter.client.V1PaymentMethods.Attach(ctx, token, &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(o.customerID),
	})
	if err != nil {
		return err
	}

	_, err = o.adapter.client.V1Customers.Update(ctx, o.customerID, &stripe.CustomerUpdateParams{
		InvoiceSettings: &stripe.CustomerUpdateInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(token),
		},
	})
	return err
}
