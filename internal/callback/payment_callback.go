package callback

import (
	"context"
	"errors"
	"fmt"

	"bloomfundr-settlement/internal/dto"
	ordermodel "bloomfundr-settlement/internal/model/order"
	"bloomfundr-settlement/internal/settlement"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
)

const providerStripe = "stripe"

type Settler interface {
	Settle(ctx context.Context, req dto.SettleRequest) (*dto.SettlementResult, error)
}

type OrderFailer interface {
	MarkFailed(ctx context.Context, orderID string) (bool, error)
}

type EventStore interface {
	CreateIfNotExists(ctx context.Context, ev *ordermodel.WebhookEvent) (*ordermodel.WebhookEvent, bool, error)
	MarkProcessed(ctx context.Context, id uint, orderID, processingErr string) error
}

// Outcome describes how one webhook event was handled.
type Outcome struct {
	EventID   string
	EventType string
	OrderID   string
	Duplicate bool
	Ignored   bool
	Result    *dto.SettlementResult
}

// PaymentCallback turns verified Stripe events into settlement calls.
type PaymentCallback struct {
	settler Settler
	orders  OrderFailer
	events  EventStore
	log     *logrus.Logger
}

func NewPaymentCallback(settler Settler, orders OrderFailer, events EventStore, log *logrus.Logger) *PaymentCallback {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentCallback{settler: settler, orders: orders, events: events, log: log}
}

// HandleStripeEvent processes a verified event. A returned error means the
// order state mutation failed and the provider should redeliver.
func (s *PaymentCallback) HandleStripeEvent(ctx context.Context, ev stripe.Event, payload []byte) (Outcome, error) {
	out := Outcome{EventID: ev.ID, EventType: string(ev.Type)}
	log := s.log.WithFields(logrus.Fields{"event_id": ev.ID, "event_type": ev.Type})

	var stored *ordermodel.WebhookEvent
	if s.events != nil {
		rec, created, err := s.events.CreateIfNotExists(ctx, &ordermodel.WebhookEvent{
			Provider:        providerStripe,
			ProviderEventID: ev.ID,
			EventType:       string(ev.Type),
			PayloadJSON:     string(payload),
			SignatureValid:  true,
		})
		switch {
		case err != nil:
			// Settlement is idempotent on its own; carry on without the record.
			log.WithError(err).Warn("[WEBHOOK] could not record event")
		case !created && rec.Handled():
			log.Info("[WEBHOOK] duplicate event, already processed")
			out.Duplicate = true
			out.OrderID = rec.OrderID
			return out, nil
		default:
			stored = rec
		}
	}

	procErr, err := s.dispatch(ctx, ev, &out, log)
	if stored != nil {
		errText := procErr
		if err != nil {
			errText = err.Error()
		}
		if merr := s.events.MarkProcessed(ctx, stored.ID, out.OrderID, errText); merr != nil {
			log.WithError(merr).Warn("[WEBHOOK] could not mark event processed")
		}
	}
	return out, err
}

// dispatch returns a note for non-fatal problems and an error only when the
// order mutation failed.
func (s *PaymentCallback) dispatch(ctx context.Context, ev stripe.Event, out *Outcome, log *logrus.Entry) (string, error) {
	switch string(ev.Type) {
	case EventCheckoutSessionCompleted, EventCheckoutAsyncPaymentSuccess:
		t, err := parseCheckoutSession(ev)
		if err != nil {
			log.WithError(err).Warn("[WEBHOOK] unreadable checkout session")
			out.Ignored = true
			return err.Error(), nil
		}
		if !t.Paid {
			log.Info("[WEBHOOK] checkout session not paid yet, waiting for async payment")
			out.Ignored = true
			out.OrderID = t.OrderID
			return "", nil
		}
		return s.settle(ctx, t, out, log)
	case EventPaymentIntentSucceeded:
		t, err := parsePaymentIntent(ev)
		if err != nil {
			log.WithError(err).Warn("[WEBHOOK] unreadable payment intent")
			out.Ignored = true
			return err.Error(), nil
		}
		return s.settle(ctx, t, out, log)
	case EventPaymentIntentFailed:
		t, err := parsePaymentIntent(ev)
		if err != nil {
			log.WithError(err).Warn("[WEBHOOK] unreadable payment intent")
			out.Ignored = true
			return err.Error(), nil
		}
		return s.markFailed(ctx, t, out, log)
	default:
		out.Ignored = true
		log.Debug("[WEBHOOK] event type not handled")
		return "", nil
	}
}

func (s *PaymentCallback) settle(ctx context.Context, t paymentTarget, out *Outcome, log *logrus.Entry) (string, error) {
	out.OrderID = t.OrderID
	if t.OrderID == "" {
		log.Warn("[WEBHOOK] event has no order id in metadata")
		out.Ignored = true
		return "missing order id", nil
	}
	log = log.WithField("order_id", t.OrderID)

	res, err := s.settler.Settle(ctx, dto.SettleRequest{
		OrderID:          t.OrderID,
		PaymentReference: t.Reference,
		Mode:             dto.SettleModeLive,
		Source:           "webhook",
	})
	switch {
	case err == nil:
		out.Result = res
		return "", nil
	case errors.Is(err, settlement.ErrOrderNotFound):
		// Acknowledge so the provider stops redelivering an event we can never apply.
		log.WithError(err).Warn("[WEBHOOK] order not found, acknowledging")
		return err.Error(), nil
	case settlement.IsFatal(err):
		log.WithError(err).Error("[WEBHOOK] order cannot be settled")
		return err.Error(), nil
	default:
		log.WithError(err).Error("[WEBHOOK] settlement failed")
		return "", fmt.Errorf("settle order %s: %w", t.OrderID, err)
	}
}

func (s *PaymentCallback) markFailed(ctx context.Context, t paymentTarget, out *Outcome, log *logrus.Entry) (string, error) {
	out.OrderID = t.OrderID
	if t.OrderID == "" {
		log.Warn("[WEBHOOK] failed payment has no order id in metadata")
		out.Ignored = true
		return "missing order id", nil
	}
	changed, err := s.orders.MarkFailed(ctx, t.OrderID)
	if err != nil {
		log.WithError(err).WithField("order_id", t.OrderID).Error("[WEBHOOK] mark order failed")
		return "", fmt.Errorf("mark order %s failed: %w", t.OrderID, err)
	}
	if !changed {
		out.Ignored = true
	}
	log.WithFields(logrus.Fields{"order_id": t.OrderID, "changed": changed}).Info("[WEBHOOK] payment failed")
	return "", nil
}
