package dao

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	ordermodel "bloomfundr-settlement/internal/model/order"

	"gorm.io/gorm"
)

type OrderDao struct {
	DB *gorm.DB
}

func NewOrderDao(db *gorm.DB) *OrderDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &OrderDao{DB: db}
}

func (r *OrderDao) checkDB() error {
	if r == nil {
		return errors.New("OrderDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// GetByID returns nil, nil when the order does not exist.
func (r *OrderDao) GetByID(ctx context.Context, id string) (*ordermodel.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get order failed: %w", err)
	}

	var m ordermodel.Order
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order %s: %w", id, err)
	}
	return &m, nil
}

// MarkPaid moves a pending or failed order to paid. It reports false when
// another writer got there first or the order is in any other state.
func (r *OrderDao) MarkPaid(ctx context.Context, id string, paidAt time.Time, paymentRef string) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("mark paid failed: %w", err)
	}

	updates := map[string]interface{}{
		"payment_status": ordermodel.PaymentStatusPaid,
		"paid_at":        paidAt,
	}
	if paymentRef != "" {
		updates["stripe_payment_intent_id"] = paymentRef
	}
	tx := r.DB.WithContext(ctx).Model(&ordermodel.Order{}).
		Where("id = ? AND payment_status IN ?", id,
			[]string{ordermodel.PaymentStatusPending, ordermodel.PaymentStatusFailed}).
		Updates(updates)
	if tx.Error != nil {
		return false, fmt.Errorf("update order %s to paid: %w", id, tx.Error)
	}
	return tx.RowsAffected == 1, nil
}

// MarkFailed records a failed payment attempt on a still pending order.
func (r *OrderDao) MarkFailed(ctx context.Context, id string) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("mark failed failed: %w", err)
	}

	tx := r.DB.WithContext(ctx).Model(&ordermodel.Order{}).
		Where("id = ? AND payment_status = ?", id, ordermodel.PaymentStatusPending).
		Update("payment_status", ordermodel.PaymentStatusFailed)
	if tx.Error != nil {
		return false, fmt.Errorf("update order %s to failed: %w", id, tx.Error)
	}
	return tx.RowsAffected == 1, nil
}
