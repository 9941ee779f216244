package dto

import "github.com/shopspring/decimal"

// RecipientAmount is a per-recipient money figure.
type RecipientAmount struct {
	RecipientType string          `json:"recipientType"`
	RecipientID   string          `json:"recipientId"`
	Amount        decimal.Decimal `json:"amount"`
}

// EarningsDrift is a recipient whose cached counter disagrees with the ledger.
type EarningsDrift struct {
	RecipientType string          `json:"recipientType"`
	RecipientID   string          `json:"recipientId"`
	Counter       decimal.Decimal `json:"counter"`
	Ledger        decimal.Decimal `json:"ledger"`
	Delta         decimal.Decimal `json:"delta"`
	Fixed         bool            `json:"fixed"`
	// Deferred drifts belong to a recipient paid within the grace window.
	Deferred bool `json:"deferred,omitempty"`
}

type ReconcileReport struct {
	Checked  int             `json:"checked"`
	Drifts   []EarningsDrift `json:"drifts"`
	Fixed    int             `json:"fixed"`
	Deferred int             `json:"deferred"`
}
