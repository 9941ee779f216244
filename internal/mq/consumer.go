package mq

import (
	"context"
	"encoding/json"
	"time"

	"bloomfundr-settlement/internal/dto"
	"bloomfundr-settlement/internal/settlement"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const maxRetry = 3

type Settler interface {
	Settle(ctx context.Context, req dto.SettleRequest) (*dto.SettlementResult, error)
}

// PaymentConsumer settles orders from the payment_completed queue.
// Delivery is at-least-once; the processor's paid guard makes redelivery
// harmless. Transient failures are republished up to maxRetry times.
type PaymentConsumer struct {
	settler Settler
	ch      func() Channel
	queue   string
	log     *logrus.Logger
}

func NewPaymentConsumer(settler Settler, ch func() Channel, queue string, log *logrus.Logger) *PaymentConsumer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentConsumer{settler: settler, ch: ch, queue: queue, log: log}
}

// Start handles deliveries until ctx is done or the channel closes.
func (c *PaymentConsumer) Start(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				c.log.Warn("[MQ] delivery channel closed")
				return
			}
			go c.Handle(ctx, d)
		}
	}
}

// Subscribe opens a fresh delivery channel on the current broker channel.
type Subscribe func() (<-chan amqp.Delivery, error)

// Run keeps a subscription alive across broker reconnects until ctx is done.
func (c *PaymentConsumer) Run(ctx context.Context, subscribe Subscribe, backoff time.Duration) {
	for ctx.Err() == nil {
		deliveries, err := subscribe()
		if err != nil {
			c.log.WithError(err).Warn("[MQ] subscribe failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			continue
		}
		c.log.WithField("queue", c.queue).Info("[MQ] consuming")
		c.Start(ctx, deliveries)
	}
}

func (c *PaymentConsumer) Handle(ctx context.Context, d amqp.Delivery) {
	var msg dto.PaymentCompletedMQ
	if err := json.Unmarshal(d.Body, &msg); err != nil || msg.OrderID == "" {
		c.log.WithError(err).Error("[MQ] bad payment_completed message, dropping")
		_ = d.Nack(false, false)
		return
	}
	log := c.log.WithFields(logrus.Fields{"order_id": msg.OrderID, "retry": msg.RetryCount})

	res, err := c.settler.Settle(ctx, dto.SettleRequest{
		OrderID:          msg.OrderID,
		PaymentReference: msg.PaymentReference,
		Mode:             dto.SettleModeLive,
		Source:           "mq",
	})
	if err == nil {
		log.WithField("already_settled", res.AlreadySettled).Info("[MQ] payment settled")
		_ = d.Ack(false)
		return
	}
	if settlement.IsFatal(err) {
		log.WithError(err).Error("[MQ] settlement rejected, dropping")
		_ = d.Nack(false, false)
		return
	}

	if msg.RetryCount >= maxRetry {
		log.WithError(err).Error("[MQ] max retry reached, dropping")
		_ = d.Nack(false, false)
		return
	}
	msg.RetryCount++
	if rerr := c.republish(msg); rerr != nil {
		// Could not hand the retry back to the broker; let it redeliver.
		log.WithError(rerr).Error("[MQ] republish failed, requeueing")
		_ = d.Nack(false, true)
		return
	}
	log.WithError(err).Warnf("[MQ] settlement failed, retry %d/%d queued", msg.RetryCount, maxRetry)
	_ = d.Ack(false)
}

func (c *PaymentConsumer) republish(msg dto.PaymentCompletedMQ) error {
	ch := c.ch()
	if ch == nil {
		return errNoChannel
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ch.Publish("", c.queue, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
}
