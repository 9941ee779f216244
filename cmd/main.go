package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"bloomfundr-settlement/internal/callback"
	"bloomfundr-settlement/internal/config"
	"bloomfundr-settlement/internal/dal"
	"bloomfundr-settlement/internal/dao"
	"bloomfundr-settlement/internal/handler"
	"bloomfundr-settlement/internal/health"
	"bloomfundr-settlement/internal/idgen"
	"bloomfundr-settlement/internal/logger"
	"bloomfundr-settlement/internal/mq"
	"bloomfundr-settlement/internal/notify"
	"bloomfundr-settlement/internal/payrail"
	"bloomfundr-settlement/internal/router"
	"bloomfundr-settlement/internal/settlement"
	"bloomfundr-settlement/internal/system"
	"bloomfundr-settlement/internal/task"

	"github.com/gin-gonic/gin"
)

func main() {
	// load config env
	config.Init()
	cfg := config.C

	settleLog := logger.NewLogger("settlement")
	webhookLog := logger.NewLogger("webhook")
	mqLog := logger.NewLogger("mq")
	httpLog := logger.NewLogger("http")
	taskLog := logger.NewLogger("task")

	// init infra
	dal.InitDB()
	dal.InitRedis()
	defer dal.CloseRedis()
	if err := dal.InitRabbitMQ(); err != nil {
		log.Fatalf("rabbitmq init failed: %v", err)
	}
	defer dal.CloseRabbitMQ()

	// idgen
	idgen.Init(cfg.Snowflake.NodeID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cs := system.NewConfigSystem(dal.DB, dal.RedisClient)
	system.Config(ctx, cs, cfg.Settlement.NotifyChatKey)

	var rateStore health.RateStore = health.NewMemoryRateStore()
	if dal.RedisClient != nil {
		rateStore = health.RedisRateStore{Redis: dal.RedisClient}
	}
	tracker := health.NewRailTracker(rateStore, cfg.Project.Name)

	// Without a Stripe key live legs fail with no rail; only simulated
	// completions use the simulator.
	var rail payrail.Rail
	railName := "none"
	if cfg.Stripe.SecretKey != "" {
		rail = payrail.ObservedRail{Rail: payrail.NewStripeRail(cfg.Stripe.SecretKey), Observer: tracker}
		railName = rail.Name()
	} else {
		settleLog.Warn("[SETTLEMENT] stripe.secretKey not set, live transfers will fail")
	}

	channel := func() mq.Channel {
		// Keep a nil *amqp.Channel from turning into a non-nil interface.
		if ch := dal.GetChannel(); ch != nil {
			return ch
		}
		return nil
	}
	publisher := mq.NewAMQPPublisher(cfg.RabbitMQ.Exchange, channel, mqLog)
	notifier := notify.NewSettlementNotifier(publisher, notify.TelegramAlert(func() string { return system.BotChatID }), settleLog)

	orders := dao.NewOrderDao(dal.DB)
	payouts := dao.NewPayoutDao(dal.DB)
	recipients := dao.NewRecipientDao(dal.DB)
	events := dao.NewWebhookEventDao(dal.DB)

	processor := settlement.NewProcessor(dao.NewSettlementStore(dal.DB), rail, notifier, settleLog, settlement.Options{
		TransferTimeout:         cfg.Settlement.TransferTimeout(),
		Currency:                cfg.Stripe.Currency,
		SimulatedMarksCompleted: cfg.Settlement.SimulatedMarksCompleted,
	})

	var wg sync.WaitGroup

	// start consumers
	consumer := mq.NewPaymentConsumer(processor, channel, cfg.RabbitMQ.PaymentQueue, mqLog)
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Run(ctx, dal.ConsumePayments, 5*time.Second)
	}()

	reconciler := task.NewEarningsReconciler(payouts, recipients, cfg.Reconcile.Grace(), taskLog)
	tasks, err := task.NewManager(taskLog)
	if err != nil {
		log.Fatalf("task manager init failed: %v", err)
	}
	if cfg.Reconcile.Enabled {
		if err := tasks.Register(task.NewEarningsReconcileJob(reconciler, cfg.Reconcile.Interval(), cfg.Reconcile.Fix, taskLog)); err != nil {
			log.Fatalf("register reconcile job failed: %v", err)
		}
	}
	tasks.Start()
	defer tasks.Stop()

	// http server
	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	checks := map[string]handler.Check{
		"mysql": func(ctx context.Context) error {
			sqlDB, err := dal.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if dal.RedisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return dal.RedisClient.Ping(ctx).Err() }
	}
	r := router.Setup(router.Handlers{
		Payment: handler.NewPaymentHandler(processor, settleLog),
		Webhook: handler.NewWebhookHandler(cfg.Stripe.WebhookSecret, callback.NewPaymentCallback(processor, orders, events, webhookLog), webhookLog),
		Payout:  handler.NewPayoutHandler(orders, payouts, reconciler, httpLog),
		Health:  handler.NewHealthHandler(checks, tracker, railName),
	}, cfg.Security.InternalToken, httpLog)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("listening %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	wg.Wait()
}
