package mainmodel

import "time"

type SysConfig struct {
	ConfigId    int       `gorm:"primaryKey;autoIncrement"`
	ConfigName  string    `gorm:"type:varchar(100)"`
	ConfigKey   string    `gorm:"type:varchar(100);uniqueIndex"`
	ConfigValue string    `gorm:"type:varchar(500)"`
	ConfigType  string    `gorm:"type:char(1);default:N"`
	CreateBy    string    `gorm:"type:varchar(64)"`
	CreateTime  time.Time `gorm:"autoCreateTime"`
	UpdateBy    string    `gorm:"type:varchar(64)"`
	UpdateTime  time.Time `gorm:"autoUpdateTime"`
	Remark      string    `gorm:"type:varchar(500)"`
}

func (SysConfig) TableName() string {
	return "sys_config"
}
