package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"octofit-backend/errs"
	"octofit-backend/log"
)

const (
	ChangesExchange = "changes"

	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ChangeEvent describes one committed mutation of a record.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
}

func (e *ChangeEvent) RoutingKey() string {
	return e.Collection + "." + e.Action
}

type Publisher interface {
	Publish(ctx context.Context, event *ChangeEvent) error
	Close() error
}

// Noop drops every event; used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, *ChangeEvent) error { return nil }
func (Noop) Close() error                                { return nil }

type AMQPPublisher struct {
	conn *amqp.Connection
}

// Dial connects to the broker, retrying with a doubling delay, and declares the changes exchange.
func Dial(url string) (*AMQPPublisher, error) {
	log.Logger.Info("Trying to connect to rabbitmq...")

	var conn *amqp.Connection
	t := time.Second
	for i := 0; i < 6; i++ {
		var err error
		conn, err = amqp.Dial(url)
		if err != nil {
			if i == 5 {
				return nil, err
			}
			log.Logger.Debug("rabbitmq dial failed", zap.Error(err), zap.Duration("retryIn", t))
			time.Sleep(t)
			t *= 2

			continue
		}

		break
	}
	log.Logger.Info("Connected to rabbitmq")

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		ChangesExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &AMQPPublisher{conn: conn}, nil
}

func (p *AMQPPublisher) Publish(_ context.Context, event *ChangeEvent) error {
	msg, err := NewPublishing(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrQueue, err.Error())
	}
	defer ch.Close()

	if err := ch.Publish(ChangesExchange, event.RoutingKey(), false, false, msg); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrQueue, err.Error())
	}

	return nil
}

func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}

func NewPublishing(event *ChangeEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    event.At,
		Type:         event.RoutingKey(),
		Body:         body,
	}, nil
}
