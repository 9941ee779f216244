package settlement

import (
	"context"
	"time"

	"bloomfundr-settlement/internal/dto"
	mainmodel "bloomfundr-settlement/internal/model/main"
	ordermodel "bloomfundr-settlement/internal/model/order"

	"github.com/shopspring/decimal"
)

// Parties are the campaign and both recipients of an order. A nil field
// means the row does not exist.
type Parties struct {
	Campaign     *mainmodel.Campaign
	Florist      *mainmodel.Florist
	Organization *mainmodel.Organization
}

// Store is the persistence the processor needs.
type Store interface {
	// GetOrder returns nil, nil when the order does not exist.
	GetOrder(ctx context.Context, orderID string) (*ordermodel.Order, error)
	GetParties(ctx context.Context, campaignID string) (Parties, error)
	// MarkOrderPaid moves a pending or failed order to paid and reports
	// whether this call made the change.
	MarkOrderPaid(ctx context.Context, orderID string, paidAt time.Time, paymentReference string) (bool, error)
	CreatePayout(ctx context.Context, p *ordermodel.Payout) error
	// IncrementEarnings adds delta to the recipient counter in one statement.
	IncrementEarnings(ctx context.Context, recipientType, recipientID string, delta decimal.Decimal) error
}

// Notifier receives every finished settlement. Errors are logged only.
type Notifier interface {
	SettlementCompleted(ctx context.Context, res *dto.SettlementResult) error
}
