package dao

import (
	"context"
	"time"

	ordermodel "bloomfundr-settlement/internal/model/order"
	"bloomfundr-settlement/internal/settlement"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SettlementStore backs the settlement processor with the gorm DAOs.
type SettlementStore struct {
	orders     *OrderDao
	recipients *RecipientDao
	payouts    *PayoutDao
}

func NewSettlementStore(db *gorm.DB) *SettlementStore {
	return &SettlementStore{
		orders:     NewOrderDao(db),
		recipients: NewRecipientDao(db),
		payouts:    NewPayoutDao(db),
	}
}

var _ settlement.Store = (*SettlementStore)(nil)

func (s *SettlementStore) GetOrder(ctx context.Context, orderID string) (*ordermodel.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

func (s *SettlementStore) GetParties(ctx context.Context, campaignID string) (settlement.Parties, error) {
	var p settlement.Parties
	c, err := s.recipients.GetCampaign(ctx, campaignID)
	if err != nil || c == nil {
		return p, err
	}
	p.Campaign = c
	if p.Florist, err = s.recipients.GetFlorist(ctx, c.FloristID); err != nil {
		return p, err
	}
	if p.Organization, err = s.recipients.GetOrganization(ctx, c.OrganizationID); err != nil {
		return p, err
	}
	return p, nil
}

func (s *SettlementStore) MarkOrderPaid(ctx context.Context, orderID string, paidAt time.Time, paymentReference string) (bool, error) {
	return s.orders.MarkPaid(ctx, orderID, paidAt, paymentReference)
}

func (s *SettlementStore) CreatePayout(ctx context.Context, p *ordermodel.Payout) error {
	return s.payouts.Insert(ctx, p)
}

func (s *SettlementStore) IncrementEarnings(ctx context.Context, recipientType, recipientID string, delta decimal.Decimal) error {
	return s.recipients.IncrementEarnings(ctx, recipientType, recipientID, delta)
}
