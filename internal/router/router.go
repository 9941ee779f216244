package router

import (
	"bloomfundr-settlement/internal/handler"
	"bloomfundr-settlement/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handlers are the HTTP surfaces the router mounts.
type Handlers struct {
	Payment *handler.PaymentHandler
	Webhook *handler.WebhookHandler
	Payout  *handler.PayoutHandler
	Health  *handler.HealthHandler
}

func Setup(h Handlers, internalToken string, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "10.0.0.0/8", "192.168.0.0/16"})
	r.Use(middleware.Trace(), middleware.Recover(log), middleware.RequestLogger(log))

	r.GET("/healthz", h.Health.Healthz)

	v1 := r.Group("/api/v1")
	{
		// Stripe signs its own requests; no internal token here.
		v1.POST("/webhooks/stripe", h.Webhook.Stripe)

		internal := v1.Group("", middleware.InternalAuth(internalToken))
		internal.POST("/payments/complete", h.Payment.Complete)
		internal.GET("/orders/:id/settlement", h.Payout.OrderSettlement)

		admin := internal.Group("/admin")
		admin.GET("/payouts", h.Payout.List)
		admin.POST("/earnings/reconcile", h.Payout.Reconcile)
	}
	return r
}
