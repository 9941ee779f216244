package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign holds the margin configuration a settlement splits by.
type Campaign struct {
	ID                        string          `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name                      string          `gorm:"column:name;type:varchar(120);not null" json:"name"`
	FloristID                 string          `gorm:"column:florist_id;type:varchar(36);not null;index" json:"floristId"`
	OrganizationID            string          `gorm:"column:organization_id;type:varchar(36);not null;index" json:"organizationId"`
	FloristMarginPercent      decimal.Decimal `gorm:"column:florist_margin_percent;type:decimal(5,2);not null;default:0" json:"floristMarginPercent"`
	OrganizationMarginPercent decimal.Decimal `gorm:"column:organization_margin_percent;type:decimal(5,2);not null;default:0" json:"organizationMarginPercent"`
	PlatformFeePercent        decimal.Decimal `gorm:"column:platform_fee_percent;type:decimal(5,2);not null;default:0" json:"platformFeePercent"`
	Status                    string          `gorm:"column:status;type:varchar(20);not null;default:draft" json:"status"`
	CreatedAt                 time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt                 time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
