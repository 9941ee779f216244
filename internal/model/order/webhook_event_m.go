package ordermodel

import "time"

// WebhookEvent stores provider webhook payloads so redeliveries of an
// already processed event are recognised.
type WebhookEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Provider        string     `gorm:"type:varchar(20);not null;uniqueIndex:ux_webhook_events_provider_event,priority:1" json:"provider"`
	ProviderEventID string     `gorm:"type:varchar(191);not null;uniqueIndex:ux_webhook_events_provider_event,priority:2" json:"providerEventId"`
	EventType       string     `gorm:"type:varchar(100);not null;index" json:"eventType"`
	OrderID         string     `gorm:"type:varchar(36);index" json:"orderId"`
	PayloadJSON     string     `gorm:"type:text;not null" json:"payloadJson"`
	SignatureValid  bool       `gorm:"default:false" json:"signatureValid"`
	ProcessedAt     *time.Time `gorm:"default:null" json:"processedAt,omitempty"`
	ProcessingError string     `gorm:"type:text" json:"processingError"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}

// Handled reports whether the event was processed without error.
func (e *WebhookEvent) Handled() bool {
	return e.ProcessedAt != nil && e.ProcessingError == ""
}
