package domain

import (
	"github.com/shopspring/decimal"
)

// CollectionMethod determines how the provider collects payment for the
// subscription's invoices.
type CollectionMethod string

const (
	CollectionMethodChargeAutomatically CollectionMethod = "charge_automatically"
	CollectionMethodSendInvoice         CollectionMethod = "send_invoice"
)

func (c CollectionMethod) String() string { return string(c) }

// CreationRequest is the immutable output of the builder. Optional
// fields use pointer presence: nil means the field is omitted from the
// provider payload entirely, which the provider treats differently from
// an explicit zero or null.
type CreationRequest struct {
	Plan             string
	Quantity         int64
	TrialEnd         *TrialEnd
	Coupon           *string
	Metadata         map[string]string
	CollectionMethod CollectionMethod
	DaysUntilDue     *int64
	TaxPercent       *decimal.Decimal
	// TaxRates carries the accumulated tax-rate identifiers. Only the
	// resolved TaxPercent is serialized (legacy percentage code path);
	// rate ids are available to gateway adapters that support them.
	TaxRates           []string
	BillingCycleAnchor *int64
}

// Payload renders the sparse wire map. Keys for unset optional fields
// are absent, not null.
func (r *CreationRequest) Payload() map[string]any {
	payload := map[string]any{
		"plan":              r.Plan,
		"quantity":          r.Quantity,
		"collection_method": r.CollectionMethod.String(),
	}

	if r.TrialEnd != nil {
		if r.TrialEnd.Now {
			payload["trial_end"] = "now"
		} else {
			payload["trial_end"] = r.TrialEnd.At.Unix()
		}
	}
	if r.Coupon != nil {
		payload["coupon"] = *r.Coupon
	}
	if len(r.Metadata) > 0 {
		payload["metadata"] = r.Metadata
	}
	if r.DaysUntilDue != nil {
		payload["days_until_due"] = *r.DaysUntilDue
	}
	if r.TaxPercent != nil {
		payload["tax_percent"] = r.TaxPercent.String()
	}
	if r.BillingCycleAnchor != nil {
		payload["billing_cycle_anchor"] = *r.BillingCycleAnchor
	}

	return payload
}
