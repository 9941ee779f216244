package constant

// Business level codes (2xxx)

// Order codes
const (
	CodeOrderNotFound      = 2100 // order id does not resolve
	CodeOrderStatusInvalid = 2102 // order status does not allow the operation
	CodeOrderPaid          = 2105 // order already paid
	CodeOrderRefunded      = 2106 // order refunded, cannot be settled
)

// Campaign and recipient codes
const (
	CodeCampaignNotFound  = 2110 // campaign referenced by the order is missing
	CodeRecipientNotFound = 2111 // florist or organization referenced by the campaign is missing
)

// Payment codes
const (
	CodePaymentFailed     = 2300 // payment provider reported a failure
	CodePaymentEventError = 2306 // webhook event could not be interpreted
)

// Settlement codes
const (
	CodeSettlementFailed    = 2500 // settlement could not be completed
	CodeTransferFailed      = 2506 // payout transfer rejected by the rail
	CodeReconcileFailed     = 2507 // earnings reconciliation aborted
	CodeSettlementDuplicate = 2508 // settlement for this order already ran
)

// Notification codes
const (
	CodeNotifyFailed    = 2700 // confirmation could not be delivered
	CodeNotifySignError = 2702 // notification signature check failed
)
