// Package service holds the ticket desk operations that sit between the
// presentation layer and the repositories, plus the side channels they
// feed: the RabbitMQ event publisher and the Redis browse cache.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/cinema-ticket-desk/internal/queue"
)

// defaultDialTimeout bounds connecting and the AMQP handshake.  Publishing
// runs inside purchase and removal requests.
const defaultDialTimeout = 2 * time.Second

// AMQPPublisher publishes ticket events to RabbitMQ.  A connection is
// opened per event; the desk publishes at human speed so pooling is not
// worth the reconnect handling.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration // zero means defaultDialTimeout
}

func (p *AMQPPublisher) dial() (*amqp.Connection, error) {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// Publish sends event to the named durable queue through the default
// exchange. Any error is logged and returned so the caller can choose to
// ignore it. Messages are marked as persistent.
func (p *AMQPPublisher) Publish(ctx context.Context, queue string, event q.TicketEvent) error {
	conn, err := p.dial()
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
