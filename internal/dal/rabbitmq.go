package dal

import (
	"fmt"
	"log"
	"sync"
	"time"

	"bloomfundr-settlement/internal/config"
	"bloomfundr-settlement/internal/event"

	"github.com/streadway/amqp"
)

var (
	mqConn    *amqp.Connection
	mqChannel *amqp.Channel

	mu sync.Mutex

	connClosedCh chan *amqp.Error
	chClosedCh   chan *amqp.Error

	reconnecting bool
)

// InitRabbitMQ dials the broker and declares the topology.
func InitRabbitMQ() error {
	return connect()
}

func connect() error {
	mu.Lock()
	defer mu.Unlock()

	if isConnAlive() && isChanAlive() {
		return nil
	}

	c := config.C.RabbitMQ
	conn, err := amqp.Dial(c.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	mqConn = conn
	connClosedCh = conn.NotifyClose(make(chan *amqp.Error, 1))

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		mqConn = nil
		connClosedCh = nil
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	mqChannel = ch
	chClosedCh = ch.NotifyClose(make(chan *amqp.Error, 1))

	if pc := c.PrefetchCount; pc > 0 {
		if err := ch.Qos(pc, 0, false); err != nil {
			log.Printf("[RabbitMQ] set qos failed: %v", err)
		}
	}
	if err := declareTopology(ch, c); err != nil {
		return err
	}

	log.Printf("[RabbitMQ] ready, exchange=%s queue=%s", c.Exchange, c.PaymentQueue)
	go watchClose()
	return nil
}

func declareTopology(ch *amqp.Channel, c config.RabbitCfg) error {
	if err := ch.ExchangeDeclare(c.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare %s: %w", c.Exchange, err)
	}
	if _, err := ch.QueueDeclare(c.PaymentQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare %s: %w", c.PaymentQueue, err)
	}
	if err := ch.QueueBind(c.PaymentQueue, event.TopicPaymentCompleted, c.Exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind %s: %w", c.PaymentQueue, err)
	}
	return nil
}

// watchClose reconnects after a broker-side close. A graceful Close closes
// the notify channels without an error and ends the watcher.
func watchClose() {
	select {
	case err, ok := <-connClosedCh:
		if !ok {
			return
		}
		log.Printf("[RabbitMQ] connection closed: %v", err)
	case err, ok := <-chClosedCh:
		if !ok {
			return
		}
		log.Printf("[RabbitMQ] channel closed: %v", err)
	}
	reconnect()
}

// reconnect blocks until the broker is reachable again.
func reconnect() {
	mu.Lock()
	if reconnecting {
		mu.Unlock()
		return
	}
	reconnecting = true
	mu.Unlock()

	defer func() {
		mu.Lock()
		reconnecting = false
		mu.Unlock()
	}()

	for {
		log.Println("[RabbitMQ] reconnecting...")
		err := connect()
		if err == nil {
			log.Println("[RabbitMQ] reconnected")
			return
		}
		log.Printf("[RabbitMQ] reconnect failed: %v", err)
		time.Sleep(5 * time.Second)
	}
}

func isConnAlive() bool {
	if mqConn == nil || connClosedCh == nil {
		return false
	}
	select {
	case <-connClosedCh:
		return false
	default:
		return true
	}
}

func isChanAlive() bool {
	if mqChannel == nil || chClosedCh == nil {
		return false
	}
	select {
	case <-chClosedCh:
		return false
	default:
		return true
	}
}

// GetChannel returns the live channel, reconnecting first if it was lost.
func GetChannel() *amqp.Channel {
	if !isChanAlive() {
		reconnect()
	}
	return mqChannel
}

// ConsumePayments subscribes to the payment queue with manual acks.
func ConsumePayments() (<-chan amqp.Delivery, error) {
	ch := GetChannel()
	if ch == nil {
		return nil, fmt.Errorf("rabbitmq channel not initialized")
	}
	deliveries, err := ch.Consume(config.C.RabbitMQ.PaymentQueue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", config.C.RabbitMQ.PaymentQueue, err)
	}
	return deliveries, nil
}

func CloseRabbitMQ() {
	mu.Lock()
	defer mu.Unlock()
	if mqChannel != nil {
		_ = mqChannel.Close()
	}
	if mqConn != nil {
		_ = mqConn.Close()
	}
}
