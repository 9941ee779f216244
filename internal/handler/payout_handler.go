package handler

import (
	"context"
	"net/http"
	"strconv"

	"bloomfundr-settlement/internal/constant"
	"bloomfundr-settlement/internal/dto"
	ordermodel "bloomfundr-settlement/internal/model/order"
	"bloomfundr-settlement/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderReader interface {
	GetByID(ctx context.Context, id string) (*ordermodel.Order, error)
}

type PayoutReader interface {
	ListByOrder(ctx context.Context, orderID string) ([]ordermodel.Payout, error)
	List(ctx context.Context, q dto.PayoutQuery) ([]ordermodel.Payout, int64, error)
}

type Reconciler interface {
	Run(ctx context.Context, fix bool) (dto.ReconcileReport, error)
}

// PayoutHandler serves the operator views over orders and payouts.
type PayoutHandler struct {
	orders     OrderReader
	payouts    PayoutReader
	reconciler Reconciler
	log        *logrus.Logger
}

func NewPayoutHandler(orders OrderReader, payouts PayoutReader, reconciler Reconciler, log *logrus.Logger) *PayoutHandler {
	return &PayoutHandler{orders: orders, payouts: payouts, reconciler: reconciler, log: log}
}

func (h *PayoutHandler) OrderSettlement(c *gin.Context) {
	id := c.Param("id")
	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.log.WithError(err).WithField("order_id", id).Error("load order")
		c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeDatabaseError))
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, utils.Error(constant.CodeOrderNotFound))
		return
	}
	rows, err := h.payouts.ListByOrder(c.Request.Context(), id)
	if err != nil {
		h.log.WithError(err).WithField("order_id", id).Error("list payouts of order")
		c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeDatabaseError))
		return
	}
	c.JSON(http.StatusOK, utils.Success(dto.OrderSettlementVO{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		PaymentStatus: order.PaymentStatus,
		PaidAt:        order.PaidAt,
		Payouts:       toPayoutVOs(rows),
	}))
}

func (h *PayoutHandler) List(c *gin.Context) {
	var q dto.PayoutQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, utils.BindError(err))
		return
	}
	rows, total, err := h.payouts.List(c.Request.Context(), q)
	if err != nil {
		h.log.WithError(err).Error("list payouts")
		c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeDatabaseError))
		return
	}
	c.JSON(http.StatusOK, utils.Success(dto.PayoutListVO{Total: total, List: toPayoutVOs(rows)}))
}

// Reconcile runs earnings reconciliation on demand; ?fix=true applies corrections.
func (h *PayoutHandler) Reconcile(c *gin.Context) {
	fix := false
	if raw := c.Query("fix"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
			return
		}
		fix = v
	}
	report, err := h.reconciler.Run(c.Request.Context(), fix)
	if err != nil {
		h.log.WithError(err).Error("[RECONCILE] on-demand run failed")
		status, resp := utils.FromError(err)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, utils.Success(report))
}

func toPayoutVOs(rows []ordermodel.Payout) []dto.PayoutVO {
	out := make([]dto.PayoutVO, 0, len(rows))
	for _, p := range rows {
		vo := dto.PayoutVO{
			ID:            strconv.FormatUint(p.ID, 10),
			OrderID:       p.OrderID,
			CampaignID:    p.CampaignID,
			RecipientType: p.RecipientType,
			RecipientID:   p.RecipientID,
			Amount:        p.Amount,
			Status:        p.Status,
			ProcessedAt:   p.ProcessedAt,
			IsReversal:    p.IsReversal,
			FailureReason: p.FailureReason,
			CreatedAt:     p.CreatedAt,
		}
		if p.StripeTransferID != nil {
			vo.StripeTransferID = *p.StripeTransferID
		}
		out = append(out, vo)
	}
	return out
}
