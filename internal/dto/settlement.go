package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleMode selects how payout legs reach recipients.
type SettleMode string

const (
	// SettleModeLive moves money on the configured payment rail.
	SettleModeLive SettleMode = "live"
	// SettleModeSimulated never calls the rail; used when no real rail is configured.
	SettleModeSimulated SettleMode = "simulated"
)

// LegStatus is the outcome of one recipient leg.
type LegStatus string

const (
	LegSkipped   LegStatus = "skipped"
	LegPending   LegStatus = "pending"
	LegCompleted LegStatus = "completed"
	LegFailed    LegStatus = "failed"
)

// SettleRequest is a completion signal for one order.
type SettleRequest struct {
	OrderID          string     `json:"orderId"`
	PaymentReference string     `json:"paymentReference,omitempty"` // payment_intent or session id
	Mode             SettleMode `json:"mode"`
	Source           string     `json:"source,omitempty"` // webhook | simulated | mq
}

// Shares is the computed split of an order.
type Shares struct {
	Available    decimal.Decimal `json:"availableForDistribution"`
	Florist      decimal.Decimal `json:"floristShare"`
	Organization decimal.Decimal `json:"organizationShare"`
}

// LegResult describes what happened to one recipient.
type LegResult struct {
	RecipientType    string          `json:"recipientType"`
	RecipientID      string          `json:"recipientId"`
	Amount           decimal.Decimal `json:"amount"`
	Status           LegStatus       `json:"status"`
	PayoutID         uint64          `json:"payoutId,string,omitempty"`
	TransferID       string          `json:"transferId,omitempty"`
	EarningsCredited bool            `json:"earningsCredited"`
	Error            string          `json:"error,omitempty"`
}

// SettlementResult is returned for every successful settle call, including
// the already-paid short circuit.
type SettlementResult struct {
	OrderID        string     `json:"orderId"`
	OrderNumber    string     `json:"orderNumber"`
	CampaignID     string     `json:"campaignId,omitempty"`
	Mode           SettleMode `json:"mode"`
	AlreadySettled bool       `json:"alreadySettled"`
	PaymentStatus  string     `json:"paymentStatus"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
	Shares         Shares     `json:"shares"`
	Florist        LegResult  `json:"florist"`
	Organization   LegResult  `json:"organization"`
}

// Legs returns both legs in florist, organization order.
func (r *SettlementResult) Legs() []LegResult {
	return []LegResult{r.Florist, r.Organization}
}

// HasFailedLeg reports whether any leg ended failed.
func (r *SettlementResult) HasFailedLeg() bool {
	return r.Florist.Status == LegFailed || r.Organization.Status == LegFailed
}

// NeedsAttention reports a failed leg or a leg whose bookkeeping failed.
func (r *SettlementResult) NeedsAttention() bool {
	for _, l := range r.Legs() {
		if l.Status == LegFailed || l.Error != "" {
			return true
		}
	}
	return false
}
