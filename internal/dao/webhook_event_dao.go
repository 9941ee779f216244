package dao

import (
	"context"
	"fmt"
	"log"
	"time"

	ordermodel "bloomfundr-settlement/internal/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookEventDao struct {
	DB *gorm.DB
}

func NewWebhookEventDao(db *gorm.DB) *WebhookEventDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &WebhookEventDao{DB: db}
}

// CreateIfNotExists inserts ev unless (provider, provider_event_id) is
// already stored. It returns the stored row and whether this call created it.
func (r *WebhookEventDao) CreateIfNotExists(ctx context.Context, ev *ordermodel.WebhookEvent) (*ordermodel.WebhookEvent, bool, error) {
	tx := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(ev)
	if tx.Error != nil {
		return nil, false, fmt.Errorf("insert webhook event %s: %w", ev.ProviderEventID, tx.Error)
	}
	if tx.RowsAffected == 1 {
		return ev, true, nil
	}

	var existing ordermodel.WebhookEvent
	if err := r.DB.WithContext(ctx).
		Where("provider = ? AND provider_event_id = ?", ev.Provider, ev.ProviderEventID).
		First(&existing).Error; err != nil {
		return nil, false, fmt.Errorf("load webhook event %s: %w", ev.ProviderEventID, err)
	}
	return &existing, false, nil
}

// MarkProcessed stamps the event; a non-empty processingErr leaves it
// eligible for reprocessing on redelivery.
func (r *WebhookEventDao) MarkProcessed(ctx context.Context, id uint, orderID, processingErr string) error {
	err := r.DB.WithContext(ctx).Model(&ordermodel.WebhookEvent{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"processed_at":     time.Now().UTC(),
			"processing_error": processingErr,
			"order_id":         orderID,
		}).Error
	if err != nil {
		return fmt.Errorf("mark webhook event %d processed: %w", id, err)
	}
	return nil
}
