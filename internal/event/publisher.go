package event

import (
	"context"
	"time"

	"bloomfundr-settlement/internal/dto"
)

// Routing keys on the service exchange.
const (
	TopicPaymentCompleted    = "payment.completed"
	TopicSettlementCompleted = "settlement.completed"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, msg any) error
}

// NewSettlementEvent flattens a settlement result for downstream consumers.
func NewSettlementEvent(res *dto.SettlementResult, now time.Time) dto.SettlementEventMQ {
	return dto.SettlementEventMQ{
		OrderID:        res.OrderID,
		OrderNumber:    res.OrderNumber,
		CampaignID:     res.CampaignID,
		Mode:           string(res.Mode),
		Available:      res.Shares.Available,
		FloristID:      res.Florist.RecipientID,
		FloristAmount:  res.Florist.Amount,
		FloristStatus:  string(res.Florist.Status),
		OrganizationID: res.Organization.RecipientID,
		OrgAmount:      res.Organization.Amount,
		OrgStatus:      string(res.Organization.Status),
		PaidAt:         res.PaidAt,
		PublishedAt:    now,
	}
}
