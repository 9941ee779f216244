package dal

import (
	"fmt"
	"log"
	"os"
	"time"

	"bloomfundr-settlement/internal/config"
	mainmodel "bloomfundr-settlement/internal/model/main"
	ordermodel "bloomfundr-settlement/internal/model/order"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	c := config.C.Mysql
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=UTC",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)

	level := logger.Warn
	if c.LogSQL {
		level = logger.Info
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Fatalf("connect db failed: %v", err)
	}
	sqlDB, _ := db.DB()
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(2 * time.Hour)

	if err := Migrate(db); err != nil {
		log.Fatalf("migrate db failed: %v", err)
	}
	DB = db
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&mainmodel.Campaign{},
		&mainmodel.Florist{},
		&mainmodel.Organization{},
		&mainmodel.SysConfig{},
		&ordermodel.Order{},
		&ordermodel.Payout{},
		&ordermodel.WebhookEvent{},
	)
}
