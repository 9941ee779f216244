package handler

import (
	"context"
	"net/http"

	"bloomfundr-settlement/internal/constant"
	"bloomfundr-settlement/internal/dto"
	"bloomfundr-settlement/internal/middleware"
	"bloomfundr-settlement/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Settler interface {
	Settle(ctx context.Context, req dto.SettleRequest) (*dto.SettlementResult, error)
}

// PaymentHandler serves the simulated completion endpoint.
type PaymentHandler struct {
	settler Settler
	log     *logrus.Logger
}

func NewPaymentHandler(settler Settler, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{settler: settler, log: log}
}

// Complete settles an order in simulated mode. No money leaves the platform.
func (h *PaymentHandler) Complete(c *gin.Context) {
	var req dto.CompletePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.BindError(err))
		return
	}
	if req.ID() == "" {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeMissingParams))
		return
	}

	res, err := h.settler.Settle(c.Request.Context(), dto.SettleRequest{
		OrderID: req.ID(),
		Mode:    dto.SettleModeSimulated,
		Source:  "api",
	})
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"order_id": req.ID(),
			"trace_id": middleware.TraceID(c),
		}).Warn("[SETTLEMENT] simulated completion rejected")
		status, resp := utils.FromError(err)
		resp.TraceID = middleware.TraceID(c)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, utils.Success(res))
}
