package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/billingkit/internal/clock"
	subscriptiondomain "github.com/railzwaylabs/billingkit/internal/subscription/domain"
	taxdomain "github.com/railzwaylabs/billingkit/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultDaysUntilDue int64 = 7

// BuilderFactory wires shared collaborators into per-session builders.
type BuilderFactory struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	gateway subscriptiondomain.Gateway
	tax     taxdomain.Resolver
	repo    subscriptiondomain.Repository
}

type BuilderFactoryParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock

	Gateway subscriptiondomain.Gateway
	Tax     taxdomain.Resolver
	Repo    subscriptiondomain.Repository
}

func NewBuilderFactory(p BuilderFactoryParam) *BuilderFactory {
	return &BuilderFactory{
		db:      p.DB,
		log:     p.Log.Named("subscription.builder"),
		genID:   p.GenID,
		clock:   p.Clock,
		gateway: p.Gateway,
		tax:     p.Tax,
		repo:    p.Repo,
	}
}

// New starts a build session for one subscription. Builders are
// single-owner and consumed by Build/Create; they are not safe for
// concurrent configuration.
func (f *BuilderFactory) New(owner subscriptiondomain.OwnerAccount, name, plan string) *Builder {
	return &Builder{
		factory:  f,
		owner:    owner,
		name:     name,
		plan:     plan,
		quantity: 1,
		trial:    subscriptiondomain.NoTrial(),
		mode:     subscriptiondomain.CollectionMethodChargeAutomatically,
	}
}

// Builder accumulates subscription configuration through chained
// setters. Setters never validate; Build does.
type Builder struct {
	factory *BuilderFactory
	owner   subscriptiondomain.OwnerAccount

	name     string
	plan     string
	quantity int64
	trial    subscriptiondomain.TrialPolicy
	anchor   *int64
	coupon   *string
	metadata map[string]string
	mode     subscriptiondomain.CollectionMethod
	dueDays  *int64
	taxRates []string
}

func (b *Builder) WithQuantity(n int64) *Builder {
	b.quantity = n
	return b
}

// WithTrialDays sets the trial end to now + n days, computed at call
// time against the injected clock, not at build time.
func (b *Builder) WithTrialDays(n int) *Builder {
	until := b.factory.clock.Now().AddDate(0, 0, n)
	b.trial = b.trial.WithUntil(until)
	return b
}

func (b *Builder) WithTrialUntil(t time.Time) *Builder {
	b.trial = b.trial.WithUntil(t)
	return b
}

// SkipTrial forces an immediate start. It wins over any trial value set
// before or after it.
func (b *Builder) SkipTrial() *Builder {
	b.trial = b.trial.Skip()
	return b
}

// SendInvoices switches collection to send_invoice. The optional
// argument sets the due window in days; unspecified defaults to 7.
// The last collection-mode call wins, no error is raised on switches.
func (b *Builder) SendInvoices(daysUntilDue ...int64) *Builder {
	b.mode = subscriptiondomain.CollectionMethodSendInvoice
	if len(daysUntilDue) > 0 {
		days := daysUntilDue[0]
		b.dueDays = &days
	}
	return b
}

func (b *Builder) ChargeAutomatically() *Builder {
	b.mode = subscriptiondomain.CollectionMethodChargeAutomatically
	b.dueDays = nil
	return b
}

// AnchorBillingCycleOn normalizes the given date to epoch seconds.
func (b *Builder) AnchorBillingCycleOn(date time.Time) *Builder {
	anchor := date.Unix()
	b.anchor = &anchor
	return b
}

func (b *Builder) WithCoupon(code string) *Builder {
	b.coupon = &code
	return b
}

func (b *Builder) WithMetadata(metadata map[string]string) *Builder {
	b.metadata = metadata
	return b
}

// WithTaxRate appends a tax-rate identifier; repeatable, duplicates are
// kept as provided.
func (b *Builder) WithTaxRate(id string) *Builder {
	b.taxRates = append(b.taxRates, id)
	return b
}

// Build resolves the accumulated configuration into one immutable
// creation request. Unset optional fields stay nil and are omitted from
// the provider payload.
func (b *Builder) Build(ctx context.Context) (*subscriptiondomain.CreationRequest, error) {
	if b.plan == "" {
		return nil, subscriptiondomain.ErrPlanRequired
	}
	if b.quantity < 1 {
		return nil, subscriptiondomain.ErrInvalidQuantity
	}

	req := &subscriptiondomain.CreationRequest{
		Plan:               b.plan,
		Quantity:           b.quantity,
		TrialEnd:           b.trial.Resolve(),
		CollectionMethod:   b.mode,
		Coupon:             b.coupon,
		BillingCycleAnchor: b.anchor,
	}

	if len(b.metadata) > 0 {
		metadata := make(map[string]string, len(b.metadata))
		for k, v := range b.metadata {
			metadata[k] = v
		}
		req.Metadata = metadata
	}

	if len(b.taxRates) > 0 {
		req.TaxRates = append([]string(nil), b.taxRates...)
	}

	if b.mode == subscriptiondomain.CollectionMethodSendInvoice {
		days := defaultDaysUntilDue
		if b.dueDays != nil {
			days = *b.dueDays
		}
		if days <= 0 {
			return nil, subscriptiondomain.ErrDueDaysRequired
		}
		req.DaysUntilDue = &days
	}

	if b.factory.tax != nil && b.owner != nil {
		percent, err := b.factory.tax.ResolveTaxPercent(ctx, b.owner.OwnerID())
		if err != nil {
			return nil, err
		}
		req.TaxPercent = percent
	}

	return req, nil
}

// Create submits the built request and interprets the outcome. An
// incomplete remote subscription is cancelled exactly once and surfaced
// as a CreationFailedError; nothing is persisted locally in that case.
func (b *Builder) Create(ctx context.Context, paymentToken string, options map[string]string) (*subscriptiondomain.Subscription, error) {
	log := b.factory.log.With(zap.String("plan", b.plan), zap.String("name", b.name))

	customer, err := b.owner.EnsureRemoteCustomer(ctx, options)
	if err != nil {
		return nil, err
	}

	if paymentToken != "" {
		if err := b.owner.AttachPaymentMethod(ctx, paymentToken); err != nil {
			return nil, err
		}
	}

	req, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}

	remote, err := b.factory.gateway.Submit(ctx, req, customer)
	if err != nil {
		return nil, err
	}

	if remote.Status.Incomplete() {
		if cancelErr := b.factory.gateway.Cancel(ctx, remote.ID); cancelErr != nil {
			log.Warn("failed to cancel incomplete remote subscription",
				zap.String("remote_id", remote.ID),
				zap.Error(cancelErr))
		}
		return nil, &subscriptiondomain.CreationFailedError{
			RemoteID: remote.ID,
			Status:   remote.Status,
		}
	}

	now := b.factory.clock.Now()
	sub := &subscriptiondomain.Subscription{
		ID:        b.factory.genID.Generate(),
		OwnerID:   b.owner.OwnerID(),
		Name:      b.name,
		RemoteID:  remote.ID,
		Plan:      req.Plan,
		Quantity:  req.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.TrialEnd != nil && !req.TrialEnd.Now {
		trialEnd := req.TrialEnd.At
		sub.TrialEndsAt = &trialEnd
	}
	if len(req.Metadata) > 0 {
		sub.Metadata = datatypes.JSONMap{}
		for k, v := range req.Metadata {
			sub.Metadata[k] = v
		}
	}

	if err := b.factory.repo.Create(ctx, b.factory.db, sub); err != nil {
		return nil, err
	}

	log.Info("subscription created",
		zap.String("remote_id", remote.ID),
		zap.String("status", string(remote.Status)))

	return sub, nil
}
