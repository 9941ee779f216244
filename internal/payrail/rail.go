// Package payrail moves payout money to connected recipient accounts.
package payrail

import (
	"context"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	Amount         decimal.Decimal
	Currency       string
	Destination    string // connected account id
	IdempotencyKey string
	TransferGroup  string
	Metadata       map[string]string
}

type TransferResult struct {
	TransferID string
}

// Rail executes one transfer. Implementations must honour ctx deadlines and
// treat a repeated IdempotencyKey as the same transfer.
type Rail interface {
	Name() string
	Transfer(ctx context.Context, req TransferRequest) (TransferResult, error)
}
