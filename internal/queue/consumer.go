package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ticketLogFile is the audit file written below the consumer's log dir.
const ticketLogFile = "tickets.log"

// StartTicketConsumer connects to RabbitMQ at url, declares the ticket
// queues (durable), and starts consuming messages. Each message is appended
// to <logDir>/tickets.log in a single-line, human-friendly format. The
// function runs a reconnect loop and never returns; processing errors are
// logged and the offending message is rejected so the desk keeps working.
func StartTicketConsumer(url, logDir string) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("ticket-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, logDir); err != nil {
			log.Printf("ticket-consumer: consume loop ended: %v; reconnecting", err)
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func consumeLoop(conn *amqp.Connection, logDir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("ticket-consumer: set QoS failed: %v", err)
	}

	purchased, err := declareAndConsume(ch, TicketPurchasedQueue)
	if err != nil {
		return err
	}
	removed, err := declareAndConsume(ch, TicketRemovedQueue)
	if err != nil {
		return err
	}

	for purchased != nil || removed != nil {
		var (
			d     amqp.Delivery
			ok    bool
			queue string
		)
		select {
		case d, ok = <-purchased:
			if !ok {
				purchased = nil
				continue
			}
			queue = TicketPurchasedQueue
		case d, ok = <-removed:
			if !ok {
				removed = nil
				continue
			}
			queue = TicketRemovedQueue
		}
		if err := handleMessage(logDir, queue, d.Body); err != nil {
			log.Printf("ticket-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func declareAndConsume(ch *amqp.Channel, name string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", name, err)
	}
	msgs, err := ch.Consume(name, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", name, err)
	}
	return msgs, nil
}

// handleMessage decodes a ticket event and appends one line for it to the
// audit log in logDir.
func handleMessage(logDir, queue string, body []byte) error {
	var ev TicketEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, ticketLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(queue, ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatLine(queue string, ev TicketEvent) string {
	action := "Ticket purchased"
	if queue == TicketRemovedQueue {
		action = "Ticket removed"
	}
	return fmt.Sprintf("[%s] %s | ticket_id=%d | screening_id=%d | cinema=%q | city=%q | movie=%q | time=%s | purchased=%s\n",
		ev.OccurredAt, action, ev.TicketID, ev.ScreeningID, ev.CinemaName, ev.City, ev.MovieTitle, ev.ShowTime, ev.TimePurchased)
}
