package settlement

import (
	"context"
	"errors"
	"fmt"

	"bloomfundr-settlement/internal/dto"
	ordermodel "bloomfundr-settlement/internal/model/order"
	"bloomfundr-settlement/internal/payrail"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxFailureReason = 255

var errNoRail = errors.New("no payment rail configured")

type leg struct {
	recipientType string
	recipientID   string
	account       string
	amount        decimal.Decimal
}

// IdempotencyKey is the transfer key for one recipient of one order.
func IdempotencyKey(orderID, recipientType string) string {
	return fmt.Sprintf("payout_%s_%s", orderID, recipientType)
}

// runLeg pays one recipient. It never returns an error: every outcome is
// folded into the LegResult. A panic in the rail fails the transfer through
// the normal path; the recover here only guards the bookkeeping after it.
func (p *Processor) runLeg(ctx context.Context, order *ordermodel.Order, l leg, mode dto.SettleMode) (res dto.LegResult) {
	res = dto.LegResult{
		RecipientType: l.recipientType,
		RecipientID:   l.recipientID,
		Amount:        l.amount,
	}
	log := p.log.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"recipient": l.recipientType,
		"amount":    l.amount.StringFixed(2),
	})
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[SETTLEMENT] leg panicked: %v", r)
			res.Status = dto.LegFailed
			res.Error = fmt.Sprintf("panic: %v", r)
			res.EarningsCredited = false
		}
	}()

	if l.amount.Sign() <= 0 {
		res.Status = dto.LegSkipped
		log.Info("[SETTLEMENT] nothing to pay, leg skipped")
		return res
	}

	payout := &ordermodel.Payout{
		ID:            p.opts.NewID(),
		OrderID:       order.ID,
		CampaignID:    order.CampaignID,
		RecipientType: l.recipientType,
		RecipientID:   l.recipientID,
		Amount:        l.amount,
	}

	switch {
	case mode == dto.SettleModeSimulated && p.opts.SimulatedMarksCompleted:
		now := p.opts.Now()
		payout.Status = ordermodel.PayoutStatusCompleted
		payout.ProcessedAt = &now
	case l.account == "":
		payout.Status = ordermodel.PayoutStatusPending
	default:
		rail := p.rail
		if mode == dto.SettleModeSimulated {
			rail = p.sim
		}
		tr, err := p.transfer(ctx, rail, order, l)
		if err != nil {
			payout.Status = ordermodel.PayoutStatusFailed
			payout.FailureReason = truncate(err.Error(), maxFailureReason)
			res.Error = err.Error()
			log.WithError(err).Warn("[SETTLEMENT] transfer failed")
		} else {
			now := p.opts.Now()
			payout.Status = ordermodel.PayoutStatusCompleted
			payout.StripeTransferID = &tr.TransferID
			payout.ProcessedAt = &now
			res.TransferID = tr.TransferID
		}
	}
	res.Status = dto.LegStatus(payout.Status)

	if err := p.store.CreatePayout(ctx, payout); err != nil {
		// Without the row the ledger cannot back a credit, so the counter is
		// left alone and the leg is flagged for an operator.
		log.WithError(err).WithField("status", payout.Status).Error("[SETTLEMENT] payout record not saved")
		res.Error = joinReason(res.Error, "payout record not saved: "+err.Error())
		return res
	}
	res.PayoutID = payout.ID

	if payout.CountsTowardEarnings() {
		if err := p.store.IncrementEarnings(ctx, l.recipientType, l.recipientID, l.amount); err != nil {
			log.WithError(err).Error("[SETTLEMENT] earnings increment failed, left for reconciliation")
		} else {
			res.EarningsCredited = true
		}
	}
	log.WithField("status", payout.Status).Info("[SETTLEMENT] leg finished")
	return res
}

// transfer calls the rail once. A panic inside the rail comes back as an
// error so the leg still records a failed payout.
func (p *Processor) transfer(ctx context.Context, rail payrail.Rail, order *ordermodel.Order, l leg) (tr payrail.TransferResult, err error) {
	if rail == nil {
		return payrail.TransferResult{}, errNoRail
	}
	defer func() {
		if r := recover(); r != nil {
			tr, err = payrail.TransferResult{}, fmt.Errorf("rail panicked: %v", r)
		}
	}()
	tctx, cancel := context.WithTimeout(ctx, p.opts.TransferTimeout)
	defer cancel()
	return rail.Transfer(tctx, payrail.TransferRequest{
		Amount:         l.amount,
		Currency:       p.opts.Currency,
		Destination:    l.account,
		IdempotencyKey: IdempotencyKey(order.ID, l.recipientType),
		TransferGroup:  "order_" + order.ID,
		Metadata: map[string]string{
			"order_id":       order.ID,
			"order_number":   order.OrderNumber,
			"recipient_type": l.recipientType,
			"recipient_id":   l.recipientID,
		},
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func joinReason(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
