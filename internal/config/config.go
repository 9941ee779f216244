package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	LogSQL       bool   `mapstructure:"logSql"`
}
type RabbitCfg struct {
	URL           string `mapstructure:"url"`
	Exchange      string `mapstructure:"exchange"`
	PaymentQueue  string `mapstructure:"paymentQueue"`
	PrefetchCount int    `mapstructure:"prefetchCount"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type StripeCfg struct {
	SecretKey     string `mapstructure:"secretKey"`
	WebhookSecret string `mapstructure:"webhookSecret"`
	Currency      string `mapstructure:"currency"`
}
type SecurityCfg struct {
	InternalToken string `mapstructure:"internalToken"`
}

// SettlementCfg tunes the payout legs of a settlement run.
type SettlementCfg struct {
	TransferTimeoutSec int `mapstructure:"transferTimeoutSec"`
	// SimulatedMarksCompleted makes simulated completions record every
	// nonzero leg as completed, whether or not the recipient has an account.
	SimulatedMarksCompleted bool   `mapstructure:"simulatedMarksCompleted"`
	NotifyChatKey           string `mapstructure:"notifyChatKey"`
}

type ReconcileCfg struct {
	Enabled     bool `mapstructure:"enabled"`
	IntervalSec int  `mapstructure:"intervalSec"`
	Fix         bool `mapstructure:"fix"`
	// GraceSec is how long a recipient's newest payout must age before
	// fix mode touches that recipient's counter.
	GraceSec int `mapstructure:"graceSec"`
}

type ProjectCfg struct {
	Name string `mapstructure:"name"`
}

type SnowflakeCfg struct {
	NodeID int64 `mapstructure:"nodeId"`
}

type Root struct {
	Project    ProjectCfg    `mapstructure:"project"`
	Server     ServerCfg     `mapstructure:"server"`
	Mysql      MysqlCfg      `mapstructure:"mysql"`
	RabbitMQ   RabbitCfg     `mapstructure:"rabbitmq"`
	Redis      RedisCfg      `mapstructure:"redis"`
	Stripe     StripeCfg     `mapstructure:"stripe"`
	Security   SecurityCfg   `mapstructure:"security"`
	Settlement SettlementCfg `mapstructure:"settlement"`
	Reconcile  ReconcileCfg  `mapstructure:"reconcile"`
	Snowflake  SnowflakeCfg  `mapstructure:"snowflake"`
}

// TransferTimeout bounds a single outbound transfer call.
func (s SettlementCfg) TransferTimeout() time.Duration {
	return time.Duration(s.TransferTimeoutSec) * time.Second
}

func (r ReconcileCfg) Interval() time.Duration {
	return time.Duration(r.IntervalSec) * time.Second
}

func (r ReconcileCfg) Grace() time.Duration {
	return time.Duration(r.GraceSec) * time.Second
}

var ErrNoWebhookSecret = errors.New("stripe.webhookSecret is required")

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	c, err := Load("config/config." + *env + ".yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	C = c
}

// Load reads one yaml file and fills in defaults for anything left empty.
// The Stripe secrets may come from STRIPE_SECRET_KEY and
// STRIPE_WEBHOOK_SECRET instead of the file. A config without a webhook
// secret is rejected.
func Load(path string) (Root, error) {
	var c Root
	v := viper.New()
	v.SetConfigFile(path)
	_ = v.BindEnv("stripe.secretKey", "STRIPE_SECRET_KEY")
	_ = v.BindEnv("stripe.webhookSecret", "STRIPE_WEBHOOK_SECRET")
	if err := v.ReadInConfig(); err != nil {
		return c, fmt.Errorf("read config file: %w", err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&c)
	if strings.TrimSpace(c.Stripe.WebhookSecret) == "" {
		return c, ErrNoWebhookSecret
	}
	return c, nil
}

func applyDefaults(c *Root) {
	if strings.TrimSpace(c.Project.Name) == "" {
		c.Project.Name = "bloomfundr"
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		c.Server.Port = "8080"
	}
	if c.Mysql.Charset == "" {
		c.Mysql.Charset = "utf8mb4"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "bloomfundr_events"
	}
	if c.RabbitMQ.PaymentQueue == "" {
		c.RabbitMQ.PaymentQueue = "payment_completed"
	}
	if c.Stripe.Currency == "" {
		c.Stripe.Currency = "usd"
	}
	if c.Settlement.TransferTimeoutSec <= 0 {
		c.Settlement.TransferTimeoutSec = 10
	}
	if c.Settlement.NotifyChatKey == "" {
		c.Settlement.NotifyChatKey = "settlement.telegram.notify.group"
	}
	if c.Reconcile.IntervalSec <= 0 {
		c.Reconcile.IntervalSec = 3600
	}
	if c.Reconcile.GraceSec <= 0 {
		c.Reconcile.GraceSec = 300
	}
}
