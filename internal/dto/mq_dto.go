package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentCompletedMQ is consumed from the payment_completed queue.
type PaymentCompletedMQ struct {
	OrderID          string `json:"order_id"`
	PaymentReference string `json:"payment_reference"`
	RetryCount       int    `json:"retry_count"`
}

// SettlementEventMQ is published once a settlement finishes.
type SettlementEventMQ struct {
	OrderID        string          `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	CampaignID     string          `json:"campaign_id"`
	Mode           string          `json:"mode"`
	Available      decimal.Decimal `json:"available_for_distribution"`
	FloristID      string          `json:"florist_id"`
	FloristAmount  decimal.Decimal `json:"florist_amount"`
	FloristStatus  string          `json:"florist_status"`
	OrganizationID string          `json:"organization_id"`
	OrgAmount      decimal.Decimal `json:"organization_amount"`
	OrgStatus      string          `json:"organization_status"`
	PaidAt         *time.Time      `json:"paid_at"`
	PublishedAt    time.Time       `json:"published_at"`
}
