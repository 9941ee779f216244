package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutQuery filters the admin payout list.
type PayoutQuery struct {
	CampaignID    string `form:"campaign_id"`
	RecipientType string `form:"recipient_type" binding:"omitempty,oneof=florist organization"`
	Status        string `form:"status" binding:"omitempty,oneof=pending completed failed"`
	PageNum       int    `form:"page_num,default=1" binding:"min=1"`
	PageSize      int    `form:"page_size,default=20" binding:"min=1,max=200"`
}

func (q PayoutQuery) Offset() int {
	return (q.PageNum - 1) * q.PageSize
}

type PayoutVO struct {
	ID               string          `json:"id"`
	OrderID          string          `json:"orderId"`
	CampaignID       string          `json:"campaignId"`
	RecipientType    string          `json:"recipientType"`
	RecipientID      string          `json:"recipientId"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	StripeTransferID string          `json:"stripeTransferId,omitempty"`
	ProcessedAt      *time.Time      `json:"processedAt,omitempty"`
	IsReversal       bool            `json:"isReversal"`
	FailureReason    string          `json:"failureReason,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type PayoutListVO struct {
	Total int64      `json:"total"`
	List  []PayoutVO `json:"list"`
}

// OrderSettlementVO is the admin view of one order's settlement.
type OrderSettlementVO struct {
	OrderID       string     `json:"orderId"`
	OrderNumber   string     `json:"orderNumber"`
	PaymentStatus string     `json:"paymentStatus"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	Payouts       []PayoutVO `json:"payouts"`
}

// CompletePaymentReq is the simulated completion body. Older clients send orderId.
type CompletePaymentReq struct {
	OrderID       string `json:"order_id" binding:"omitempty,max=64"`
	LegacyOrderID string `json:"orderId" binding:"omitempty,max=64"`
}

func (r CompletePaymentReq) ID() string {
	if r.OrderID != "" {
		return r.OrderID
	}
	return r.LegacyOrderID
}
