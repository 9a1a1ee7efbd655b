package service

import (
	"time"

	"github.com/railzwaylabs/billingkit/internal/clock"
	"github.com/railzwaylabs/billingkit/internal/currency"
	invoicedomain "github.com/railzwaylabs/billingkit/internal/invoice/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ViewFactory wires shared collaborators into per-snapshot views.
type ViewFactory struct {
	log       *zap.Logger
	clock     clock.Clock
	formatter currency.Formatter
	attempts  invoicedomain.PaymentAttemptSource
}

type ViewFactoryParam struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Formatter currency.Formatter
	Attempts  invoicedomain.PaymentAttemptSource
}

func NewViewFactory(p ViewFactoryParam) *ViewFactory {
	return &ViewFactory{
		log:       p.Log.Named("invoice.view"),
		clock:     p.Clock,
		formatter: p.Formatter,
		attempts:  p.Attempts,
	}
}

func (f *ViewFactory) Wrap(snapshot *invoicedomain.Snapshot) *View {
	return &View{
		snapshot:  snapshot,
		log:       f.log,
		clock:     f.clock,
		formatter: f.formatter,
		attempts:  f.attempts,
	}
}

// View wraps a provider invoice snapshot for read-only querying. It is
// safe for concurrent reads; derived values and history are recomputed
// on every call, nothing is cached.
type View struct {
	snapshot  *invoicedomain.Snapshot
	log       *zap.Logger
	clock     clock.Clock
	formatter currency.Formatter
	attempts  invoicedomain.PaymentAttemptSource
}

func (v *View) Snapshot() *invoicedomain.Snapshot { return v.snapshot }

func (v *View) Total() int64    { return v.snapshot.Total }
func (v *View) Subtotal() int64 { return v.snapshot.Subtotal }
func (v *View) Tax() int64      { return v.snapshot.Tax }

// RawTotal folds the starting balance into the invoice total. Starting
// balance is negative when it represents account credit.
func (v *View) RawTotal() int64 {
	return v.snapshot.Total + v.snapshot.StartingBalance
}

func (v *View) HasStartingBalance() bool {
	return v.snapshot.StartingBalance < 0
}

func (v *View) StartingBalance() int64 {
	return v.snapshot.StartingBalance
}

func (v *View) RawCreditBalance() int64 {
	return v.snapshot.PrePaymentCreditNotesAmount + v.snapshot.PostPaymentCreditNotesAmount
}

func (v *View) HasCreditBalance() bool {
	return v.RawCreditBalance() > 0
}

func (v *View) HasDiscount() bool {
	return v.snapshot.Subtotal > 0 &&
		v.snapshot.Subtotal != v.snapshot.Total &&
		v.snapshot.Discount != nil
}

// DiscountAmount derives the monetary discount from the totals rather
// than the discount descriptor, since the descriptor may express either
// percent-off or amount-off.
func (v *View) DiscountAmount() int64 {
	return v.snapshot.Subtotal + v.snapshot.Tax - v.snapshot.Total
}

func (v *View) PercentOff() decimal.Decimal {
	if v.snapshot.Discount == nil || v.snapshot.Discount.Coupon.PercentOff == nil {
		return decimal.Zero
	}
	return *v.snapshot.Discount.Coupon.PercentOff
}

func (v *View) AmountOff() int64 {
	if v.snapshot.Discount == nil || v.snapshot.Discount.Coupon.AmountOff == nil {
		return 0
	}
	return *v.snapshot.Discount.Coupon.AmountOff
}

// PastDue reports whether an unpaid invoice is overdue, evaluated
// against now in the given timezone.
func (v *View) PastDue(loc *time.Location) bool {
	if v.snapshot.DueDate == nil || v.snapshot.Paid {
		return false
	}
	if v.snapshot.Attempted && v.snapshot.AttemptCount > 0 {
		return true
	}
	if loc == nil {
		loc = time.UTC
	}
	now := v.clock.Now().In(loc)
	return v.snapshot.DueDate.In(loc).Before(now)
}

// ItemsByType filters the line items by discriminator, preserving
// source order.
func (v *View) ItemsByType(kind invoicedomain.LineItemType) []invoicedomain.LineItem {
	return lo.Filter(v.snapshot.Lines, func(item invoicedomain.LineItem, _ int) bool {
		return item.Type == kind
	})
}

func (v *View) InvoiceItems() []invoicedomain.LineItem {
	return v.ItemsByType(invoicedomain.LineItemTypeInvoiceItem)
}

func (v *View) Subscriptions() []invoicedomain.LineItem {
	return v.ItemsByType(invoicedomain.LineItemTypeSubscription)
}

func (v *View) FormatTotal() string {
	return v.formatter.Format(v.snapshot.Total, v.snapshot.Currency)
}

func (v *View) FormatRawTotal() string {
	return v.formatter.Format(v.RawTotal(), v.snapshot.Currency)
}

func (v *View) FormatDiscountAmount() string {
	return v.formatter.Format(v.DiscountAmount(), v.snapshot.Currency)
}

func (v *View) FormatCreditBalance() string {
	return v.formatter.Format(v.RawCreditBalance(), v.snapshot.Currency)
}
