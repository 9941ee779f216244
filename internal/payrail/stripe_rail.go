package payrail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bloomfundr-settlement/internal/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeRail creates Stripe Connect transfers.
type StripeRail struct {
	api *client.API
}

func NewStripeRail(secretKey string) *StripeRail {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeRail{api: api}
}

// NewStripeRailWithClient is used when the backend is configured by the caller.
func NewStripeRailWithClient(api *client.API) *StripeRail {
	return &StripeRail{api: api}
}

func (r *StripeRail) Name() string { return "stripe" }

func (r *StripeRail) Transfer(ctx context.Context, req TransferRequest) (TransferResult, error) {
	amount := utils.ToMinorUnits(req.Amount)
	if amount <= 0 {
		return TransferResult{}, fmt.Errorf("transfer amount must be positive, got %s", req.Amount.String())
	}

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Destination: stripe.String(req.Destination),
	}
	if req.TransferGroup != "" {
		params.TransferGroup = stripe.String(req.TransferGroup)
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	tr, err := r.api.Transfers.New(params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.Msg != "" {
			return TransferResult{}, fmt.Errorf("stripe transfer: %s: %w", se.Msg, err)
		}
		return TransferResult{}, fmt.Errorf("stripe transfer: %w", err)
	}
	return TransferResult{TransferID: tr.ID}, nil
}
