package accountevents

import (
	"context"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type amqpPublisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ publishes account events with the event type as routing key.
type RabbitMQ struct {
	log      logging.Logger
	channel  amqpPublisher
	exchange string
}

func NewRabbitMQ(log logging.Logger, channel amqpPublisher, exchange string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange}
}

func RoutingKey(eventType user.EventType) string {
	return "account." + string(eventType)
}

func (p *RabbitMQ) Publish(ctx context.Context, event user.Event) error {
	message := schema.AccountEvent{Type: string(event.Type), UserID: int64(event.UserID), At: event.At.UTC()}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	routingKey := RoutingKey(event.Type)
	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.At,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, p.log, err, logging.Entry("userID", event.UserID))
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", routingKey),
		logging.Entry("userID", event.UserID),
	)
	return nil
}
