// Package service holds outbound integrations driven by the booking
// engine, currently the RabbitMQ event publisher behind the Notifier
// contract.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ericfaux/gamehost-sub002/internal/booking"
)

// eventQueue is the durable queue notification workers consume from.
// Every lifecycle event lands here; the payload's kind field routes it.
const eventQueue = "reservation.events"

// EventPublisher publishes reservation lifecycle events to RabbitMQ.
// Each publish dials a fresh connection: event volume is low (one per
// booking mutation) and a short-lived connection never leaves the
// process holding a broken channel after a broker restart.  Errors are
// returned so the engine can log them; they never fail a booking.
type EventPublisher struct {
	url string
}

// NewEventPublisher returns a publisher for the given AMQP URL, or nil
// when the URL is empty so callers can leave the engine's Events nil.
func NewEventPublisher(url string) *EventPublisher {
	if url == "" {
		return nil
	}
	return &EventPublisher{url: url}
}

// Publish sends one event to the reservation.events queue.  Messages
// are persistent so they survive broker restarts.
func (p *EventPublisher) Publish(ctx context.Context, event booking.ReservationEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare keeps the publisher working on a fresh broker.
	if _, err := ch.QueueDeclare(
		eventQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",         // default exchange
		eventQueue, // routing key = queue name
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
