package callback

import (
	"encoding/json"
	"fmt"

	"bloomfundr-settlement/internal/constant"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Stripe event types acted on.
const (
	EventCheckoutSessionCompleted    = "checkout.session.completed"
	EventCheckoutAsyncPaymentSuccess = "checkout.session.async_payment_succeeded"
	EventPaymentIntentSucceeded      = "payment_intent.succeeded"
	EventPaymentIntentFailed         = "payment_intent.payment_failed"
)

var (
	ErrSignature    = constant.NewError(constant.CodeSignatureError)
	ErrEventPayload = constant.NewError(constant.CodePaymentEventError)
)

// VerifyStripeEvent checks the Stripe-Signature header and decodes the event.
// An empty secret rejects every event.
func VerifyStripeEvent(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	if secret == "" {
		return stripe.Event{}, fmt.Errorf("%w: webhook secret not configured", ErrSignature)
	}
	ev, err := webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return ev, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	return ev, nil
}

// paymentTarget is what a settling event points at. Paid is false only for
// a checkout session still waiting on an async payment method.
type paymentTarget struct {
	OrderID   string
	Reference string
	Paid      bool
}

func metadataOrderID(md map[string]string) string {
	if id := md["orderId"]; id != "" {
		return id
	}
	return md["order_id"]
}

func parseCheckoutSession(ev stripe.Event) (paymentTarget, error) {
	var sess stripe.CheckoutSession
	if ev.Data == nil || json.Unmarshal(ev.Data.Raw, &sess) != nil {
		return paymentTarget{}, fmt.Errorf("%w: checkout session %s", ErrEventPayload, ev.ID)
	}
	t := paymentTarget{
		OrderID:   metadataOrderID(sess.Metadata),
		Reference: sess.ID,
		Paid:      sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusUnpaid,
	}
	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		t.Reference = sess.PaymentIntent.ID
	}
	return t, nil
}

func parsePaymentIntent(ev stripe.Event) (paymentTarget, error) {
	var pi stripe.PaymentIntent
	if ev.Data == nil || json.Unmarshal(ev.Data.Raw, &pi) != nil {
		return paymentTarget{}, fmt.Errorf("%w: payment intent %s", ErrEventPayload, ev.ID)
	}
	return paymentTarget{
		OrderID:   metadataOrderID(pi.Metadata),
		Reference: pi.ID,
		Paid:      true,
	}, nil
}
