package ordermodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses of an order.
const (
	PaymentStatusPending           = "pending"
	PaymentStatusPaid              = "paid"
	PaymentStatusFailed            = "failed"
	PaymentStatusRefunded          = "refunded"
	PaymentStatusPartiallyRefunded = "partially_refunded"
)

// Order is a customer checkout. Total = Subtotal + ProcessingFee; the
// platform fee comes out of the recipients' share, not the customer total.
type Order struct {
	ID                    string          `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	OrderNumber           string          `gorm:"column:order_number;type:varchar(32);not null;uniqueIndex" json:"orderNumber"`
	CampaignID            string          `gorm:"column:campaign_id;type:varchar(36);not null;index" json:"campaignId"`
	CustomerID            string          `gorm:"column:customer_id;type:varchar(36);index" json:"customerId"`
	Subtotal              decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2);not null" json:"subtotal"`
	PlatformFee           decimal.Decimal `gorm:"column:platform_fee;type:decimal(12,2);not null;default:0" json:"platformFee"`
	ProcessingFee         decimal.Decimal `gorm:"column:processing_fee;type:decimal(12,2);not null;default:0" json:"processingFee"`
	Total                 decimal.Decimal `gorm:"column:total;type:decimal(12,2);not null" json:"total"`
	PaymentStatus         string          `gorm:"column:payment_status;type:varchar(24);not null;default:pending;index" json:"paymentStatus"`
	StripePaymentIntentID *string         `gorm:"column:stripe_payment_intent_id;type:varchar(64)" json:"stripePaymentIntentId"`
	PaidAt                *time.Time      `gorm:"column:paid_at" json:"paidAt"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// Settleable reports whether a completion signal may move the order to paid.
func (o *Order) Settleable() bool {
	return o.PaymentStatus == PaymentStatusPending || o.PaymentStatus == PaymentStatusFailed
}
