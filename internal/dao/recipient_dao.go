package dao

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bloomfundr-settlement/internal/dto"
	mainmodel "bloomfundr-settlement/internal/model/main"
	ordermodel "bloomfundr-settlement/internal/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecipientDao covers campaigns and the two recipient tables.
type RecipientDao struct {
	DB *gorm.DB
}

func NewRecipientDao(db *gorm.DB) *RecipientDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &RecipientDao{DB: db}
}

func (r *RecipientDao) GetCampaign(ctx context.Context, id string) (*mainmodel.Campaign, error) {
	var m mainmodel.Campaign
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query campaign %s: %w", id, err)
	}
	return &m, nil
}

func (r *RecipientDao) GetFlorist(ctx context.Context, id string) (*mainmodel.Florist, error) {
	var m mainmodel.Florist
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query florist %s: %w", id, err)
	}
	return &m, nil
}

func (r *RecipientDao) GetOrganization(ctx context.Context, id string) (*mainmodel.Organization, error) {
	var m mainmodel.Organization
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query organization %s: %w", id, err)
	}
	return &m, nil
}

func recipientModel(recipientType string) (interface{}, error) {
	switch recipientType {
	case ordermodel.RecipientFlorist:
		return &mainmodel.Florist{}, nil
	case ordermodel.RecipientOrganization:
		return &mainmodel.Organization{}, nil
	default:
		return nil, fmt.Errorf("unknown recipient type %q", recipientType)
	}
}

// IncrementEarnings adds delta to total_lifetime_earnings in a single
// UPDATE so concurrent orders for one recipient cannot lose an update.
func (r *RecipientDao) IncrementEarnings(ctx context.Context, recipientType, id string, delta decimal.Decimal) error {
	model, err := recipientModel(recipientType)
	if err != nil {
		return err
	}
	tx := r.DB.WithContext(ctx).Model(model).Where("id = ?", id).
		Update("total_lifetime_earnings", gorm.Expr("total_lifetime_earnings + ?", delta))
	if tx.Error != nil {
		return fmt.Errorf("increment %s %s earnings: %w", recipientType, id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("increment %s %s earnings: recipient not found", recipientType, id)
	}
	return nil
}

// ListEarnings returns every recipient's cached counter of one type.
func (r *RecipientDao) ListEarnings(ctx context.Context, recipientType string) ([]dto.RecipientAmount, error) {
	model, err := recipientModel(recipientType)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID     string
		Amount decimal.Decimal
	}
	if err := r.DB.WithContext(ctx).Model(model).
		Select("id, total_lifetime_earnings AS amount").
		Order("id").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s earnings: %w", recipientType, err)
	}
	out := make([]dto.RecipientAmount, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.RecipientAmount{RecipientType: recipientType, RecipientID: row.ID, Amount: row.Amount})
	}
	return out, nil
}
