package settlement

import (
	"context"
	"fmt"
	"time"

	"bloomfundr-settlement/internal/dto"
	"bloomfundr-settlement/internal/idgen"
	ordermodel "bloomfundr-settlement/internal/model/order"
	"bloomfundr-settlement/internal/payrail"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultTransferTimeout = 10 * time.Second

type Options struct {
	TransferTimeout time.Duration
	Currency        string
	// SimulatedMarksCompleted records every nonzero simulated leg as
	// completed without a transfer id, whether or not the recipient has an
	// account.
	SimulatedMarksCompleted bool

	Now   func() time.Time
	NewID func() uint64
}

// Processor settles paid orders: it marks the order paid, splits the pool
// and pays both recipients.
type Processor struct {
	store    Store
	rail     payrail.Rail
	sim      payrail.Rail
	notifier Notifier
	log      *logrus.Logger
	opts     Options
}

func NewProcessor(store Store, rail payrail.Rail, notifier Notifier, log *logrus.Logger, opts Options) *Processor {
	if opts.TransferTimeout <= 0 {
		opts.TransferTimeout = defaultTransferTimeout
	}
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = idgen.New
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Processor{
		store:    store,
		rail:     rail,
		sim:      payrail.SimulatedRail{},
		notifier: notifier,
		log:      log,
		opts:     opts,
	}
}

// Settle runs one completion signal to the end. Only a missing order,
// campaign or recipient, a status that cannot become paid, and a failure of
// the paid transition itself are returned as errors; leg outcomes are
// reported in the result.
func (p *Processor) Settle(ctx context.Context, req dto.SettleRequest) (*dto.SettlementResult, error) {
	if req.Mode == "" {
		req.Mode = dto.SettleModeLive
	}
	log := p.log.WithFields(logrus.Fields{"order_id": req.OrderID, "mode": req.Mode, "source": req.Source})

	order, err := p.store.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", req.OrderID, err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, req.OrderID)
	}

	res := &dto.SettlementResult{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		CampaignID:  order.CampaignID,
		Mode:        req.Mode,
	}
	if order.PaymentStatus == ordermodel.PaymentStatusPaid {
		log.Info("[SETTLEMENT] order already paid, skipping")
		return alreadySettled(res, order), nil
	}
	if !order.Settleable() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderStatusInvalid, order.ID, order.PaymentStatus)
	}

	parties, err := p.store.GetParties(ctx, order.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("load campaign %s: %w", order.CampaignID, err)
	}
	if parties.Campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, order.CampaignID)
	}
	if parties.Florist == nil {
		return nil, fmt.Errorf("%w: florist %s", ErrRecipientNotFound, parties.Campaign.FloristID)
	}
	if parties.Organization == nil {
		return nil, fmt.Errorf("%w: organization %s", ErrRecipientNotFound, parties.Campaign.OrganizationID)
	}

	paidAt := p.opts.Now()
	changed, err := p.store.MarkOrderPaid(ctx, order.ID, paidAt, req.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("mark order %s paid: %w", order.ID, err)
	}
	if !changed {
		current, err := p.store.GetOrder(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("reload order %s: %w", order.ID, err)
		}
		if current != nil && current.PaymentStatus == ordermodel.PaymentStatusPaid {
			log.Info("[SETTLEMENT] concurrent delivery already settled the order")
			return alreadySettled(res, current), nil
		}
		status := "missing"
		if current != nil {
			status = current.PaymentStatus
		}
		return nil, fmt.Errorf("%w: order %s moved to %s", ErrOrderStatusInvalid, order.ID, status)
	}
	res.PaymentStatus = ordermodel.PaymentStatusPaid
	res.PaidAt = &paidAt

	c := parties.Campaign
	res.Shares = CalculateShares(order.Subtotal, order.ProcessingFee, order.PlatformFee,
		c.FloristMarginPercent, c.OrganizationMarginPercent)

	// The order is paid from here on; the caller going away must not
	// abandon the legs half written.
	detached := context.WithoutCancel(ctx)
	legs := []leg{
		{
			recipientType: ordermodel.RecipientFlorist,
			recipientID:   parties.Florist.ID,
			account:       deref(parties.Florist.StripeAccountID),
			amount:        res.Shares.Florist,
		},
		{
			recipientType: ordermodel.RecipientOrganization,
			recipientID:   parties.Organization.ID,
			account:       deref(parties.Organization.StripeAccountID),
			amount:        res.Shares.Organization,
		},
	}
	out := make([]dto.LegResult, len(legs))
	var g errgroup.Group
	for i, l := range legs {
		i, l := i, l
		g.Go(func() error {
			out[i] = p.runLeg(detached, order, l, req.Mode)
			return nil
		})
	}
	_ = g.Wait()
	res.Florist, res.Organization = out[0], out[1]

	log.WithFields(logrus.Fields{
		"available":           res.Shares.Available.StringFixed(2),
		"florist_status":      res.Florist.Status,
		"organization_status": res.Organization.Status,
	}).Info("[SETTLEMENT] order settled")

	if p.notifier != nil {
		if err := p.notifier.SettlementCompleted(detached, res); err != nil {
			log.WithError(err).Warn("[SETTLEMENT] notification failed")
		}
	}
	return res, nil
}

func alreadySettled(res *dto.SettlementResult, order *ordermodel.Order) *dto.SettlementResult {
	res.AlreadySettled = true
	res.PaymentStatus = order.PaymentStatus
	res.PaidAt = order.PaidAt
	return res
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
