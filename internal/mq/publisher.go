package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Channel is the publishing half of *amqp.Channel.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var errNoChannel = errors.New("rabbitmq channel not initialized")

// AMQPPublisher publishes JSON events to a topic exchange. The channel is
// resolved per call so a reconnect is picked up.
type AMQPPublisher struct {
	exchange string
	channel  func() Channel
	log      *logrus.Logger
}

func NewAMQPPublisher(exchange string, channel func() Channel, log *logrus.Logger) *AMQPPublisher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AMQPPublisher{exchange: exchange, channel: channel, log: log}
}

func (p *AMQPPublisher) Publish(ctx context.Context, topic string, msg any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ch := p.channel()
	if ch == nil {
		return errNoChannel
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}
	err = ch.Publish(p.exchange, topic, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		p.log.WithError(err).WithField("topic", topic).Error("[MQ] publish failed")
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
