package handler

import (
	"context"
	"io"
	"net/http"

	"bloomfundr-settlement/internal/callback"
	"bloomfundr-settlement/internal/constant"
	"bloomfundr-settlement/internal/middleware"
	"bloomfundr-settlement/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
)

const maxWebhookBody = int64(65536)

type StripeEventHandler interface {
	HandleStripeEvent(ctx context.Context, ev stripe.Event, payload []byte) (callback.Outcome, error)
}

type WebhookHandler struct {
	secret string
	events StripeEventHandler
	log    *logrus.Logger
}

func NewWebhookHandler(secret string, events StripeEventHandler, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{secret: secret, events: events, log: log}
}

// Stripe verifies and applies one provider event. Anything other than a
// failed order mutation is answered with 200 so the provider stops retrying.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	log := h.log.WithField("trace_id", middleware.TraceID(c))

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		log.WithError(err).Warn("[WEBHOOK] unreadable body")
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}

	ev, err := callback.VerifyStripeEvent(payload, c.GetHeader("Stripe-Signature"), h.secret)
	if err != nil {
		log.WithError(err).Warn("[WEBHOOK] signature verification failed")
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeSignatureError))
		return
	}

	out, err := h.events.HandleStripeEvent(c.Request.Context(), ev, payload)
	if err != nil {
		resp := utils.Error(constant.CodeSettlementFailed)
		resp.TraceID = middleware.TraceID(c)
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{
		"received":  true,
		"eventId":   out.EventID,
		"duplicate": out.Duplicate,
		"ignored":   out.Ignored,
	}))
}
