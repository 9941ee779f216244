package ordermodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipient types.
const (
	RecipientFlorist      = "florist"
	RecipientOrganization = "organization"
)

// Payout statuses. A skipped leg never produces a row.
const (
	PayoutStatusPending   = "pending"
	PayoutStatusCompleted = "completed"
	PayoutStatusFailed    = "failed"
)

// Payout is one settlement attempt for one recipient of one order. Rows are
// append-only; a correction is a new row with IsReversal set.
type Payout struct {
	ID               uint64          `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	OrderID          string          `gorm:"column:order_id;type:varchar(36);not null;uniqueIndex:ux_payout_order_recipient,priority:1" json:"orderId"`
	CampaignID       string          `gorm:"column:campaign_id;type:varchar(36);not null;index" json:"campaignId"`
	RecipientType    string          `gorm:"column:recipient_type;type:varchar(20);not null;uniqueIndex:ux_payout_order_recipient,priority:2;index:idx_payout_recipient,priority:1" json:"recipientType"`
	RecipientID      string          `gorm:"column:recipient_id;type:varchar(36);not null;index:idx_payout_recipient,priority:2" json:"recipientId"`
	Amount           decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Status           string          `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	StripeTransferID *string         `gorm:"column:stripe_transfer_id;type:varchar(64)" json:"stripeTransferId"`
	ProcessedAt      *time.Time      `gorm:"column:processed_at" json:"processedAt"`
	IsReversal       bool            `gorm:"column:is_reversal;not null;default:false;uniqueIndex:ux_payout_order_recipient,priority:3" json:"isReversal"`
	FailureReason    string          `gorm:"column:failure_reason;type:varchar(255)" json:"failureReason,omitempty"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Payout) TableName() string {
	return "payouts"
}

// CountsTowardEarnings reports whether the row is owed to the recipient.
func (p *Payout) CountsTowardEarnings() bool {
	return p.Status == PayoutStatusPending || p.Status == PayoutStatusCompleted
}
