package dao

import (
	"context"
	"fmt"
	"log"
	"time"

	"bloomfundr-settlement/internal/dto"
	ordermodel "bloomfundr-settlement/internal/model/order"

	"gorm.io/gorm"
)

type PayoutDao struct {
	DB *gorm.DB
}

func NewPayoutDao(db *gorm.DB) *PayoutDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &PayoutDao{DB: db}
}

// Insert appends one payout row. The (order, recipient, reversal) unique
// index rejects a second settlement row for the same leg.
func (r *PayoutDao) Insert(ctx context.Context, p *ordermodel.Payout) error {
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("insert payout %d: %w", p.ID, err)
	}
	return nil
}

func (r *PayoutDao) ListByOrder(ctx context.Context, orderID string) ([]ordermodel.Payout, error) {
	var out []ordermodel.Payout
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).
		Order("recipient_type, is_reversal, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list payouts of order %s: %w", orderID, err)
	}
	return out, nil
}

// List is the filtered, paged admin view, newest first.
func (r *PayoutDao) List(ctx context.Context, q dto.PayoutQuery) ([]ordermodel.Payout, int64, error) {
	db := r.DB.WithContext(ctx).Model(&ordermodel.Payout{})
	if q.CampaignID != "" {
		db = db.Where("campaign_id = ?", q.CampaignID)
	}
	if q.RecipientType != "" {
		db = db.Where("recipient_type = ?", q.RecipientType)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count payouts: %w", err)
	}
	var out []ordermodel.Payout
	if err := db.Order("created_at DESC, id DESC").Limit(q.PageSize).Offset(q.Offset()).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("list payouts: %w", err)
	}
	return out, total, nil
}

// SumLedger totals pending and completed rows per recipient. Reversal rows
// carry negative amounts and net out on their own.
func (r *PayoutDao) SumLedger(ctx context.Context) ([]dto.RecipientAmount, error) {
	return r.sumLedger(r.DB.WithContext(ctx))
}

// SumLedgerSince is SumLedger limited to rows created at or after since.
func (r *PayoutDao) SumLedgerSince(ctx context.Context, since time.Time) ([]dto.RecipientAmount, error) {
	return r.sumLedger(r.DB.WithContext(ctx).Where("created_at >= ?", since))
}

func (r *PayoutDao) sumLedger(db *gorm.DB) ([]dto.RecipientAmount, error) {
	var out []dto.RecipientAmount
	err := db.Model(&ordermodel.Payout{}).
		Select("recipient_type, recipient_id, SUM(amount) AS amount").
		Where("status IN ?", []string{ordermodel.PayoutStatusPending, ordermodel.PayoutStatusCompleted}).
		Group("recipient_type, recipient_id").
		Order("recipient_type, recipient_id").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("sum payout ledger: %w", err)
	}
	return out, nil
}
