package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"agrivision-service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const ScanEventsQueue = "agrivision_scan_events"

// AMQPChannel is the subset of *amqp.Channel used for publishing.
type AMQPChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ScanPublisher announces every classification on a durable queue so other
// services can react to outbreaks.
type ScanPublisher struct {
	channel AMQPChannel

	mu                sync.Mutex
	declared          bool
	messagesPublished int64
	messagesFailed    int64
}

func NewScanPublisher(channel AMQPChannel) *ScanPublisher {
	return &ScanPublisher{channel: channel}
}

func (p *ScanPublisher) PublishScan(ctx context.Context, event models.ScanEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared {
		_, err := p.channel.QueueDeclare(
			ScanEventsQueue, // queue name
			true,            // durable
			false,           // delete when unused
			false,           // exclusive
			false,           // no-wait
			nil,             // arguments
		)
		if err != nil {
			p.messagesFailed++
			return fmt.Errorf("failed to declare queue: %w", err)
		}
		p.declared = true
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal scan event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",              // exchange
		ScanEventsQueue, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    event.ScanID,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish scan event: %w", err)
	}

	p.messagesPublished++
	slog.Info("scan event published", "queue", ScanEventsQueue, "scan_id", event.ScanID, "disease", event.Disease)
	return nil
}

// Stats returns published and failed message counts.
func (p *ScanPublisher) Stats() (published, failed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messagesPublished, p.messagesFailed
}
