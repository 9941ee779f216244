package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Florist receives the florist leg of a settlement.
type Florist struct {
	ID                    string          `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	BusinessName          string          `gorm:"column:business_name;type:varchar(120);not null" json:"businessName"`
	StripeAccountID       *string         `gorm:"column:stripe_account_id;type:varchar(64)" json:"stripeAccountId"`
	TotalLifetimeEarnings decimal.Decimal `gorm:"column:total_lifetime_earnings;type:decimal(14,2);not null;default:0" json:"totalLifetimeEarnings"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Florist) TableName() string {
	return "florists"
}

// Organization receives the organization leg of a settlement.
type Organization struct {
	ID                    string          `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name                  string          `gorm:"column:name;type:varchar(120);not null" json:"name"`
	StripeAccountID       *string         `gorm:"column:stripe_account_id;type:varchar(64)" json:"stripeAccountId"`
	TotalLifetimeEarnings decimal.Decimal `gorm:"column:total_lifetime_earnings;type:decimal(14,2);not null;default:0" json:"totalLifetimeEarnings"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Organization) TableName() string {
	return "organizations"
}
