package passwordchanged

import (
	"context"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	notifypasswordchanged "postboard/internal/core/services/notify_password_changed"
	"postboard/internal/rabbitmq"
	"postboard/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[notifypasswordchanged.Input, notifypasswordchanged.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[notifypasswordchanged.Input, notifypasswordchanged.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.handle(context.Background(), delivery)
		}
	}()
	return nil
}

// handle acknowledges every delivery. The notice is best effort and a
// redelivery would not make a missing account appear.
func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	defer c.ack(ctx, delivery)

	event := &schema.AccountEvent{}
	if err := event.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal account event.",
			logging.Entry("err", err),
			logging.Entry("body", string(delivery.Body)),
		)
		return
	}
	if user.EventType(event.Type) != user.EventPasswordChanged {
		c.log.Warning(ctx, "Unexpected account event type.", logging.Entry("type", event.Type))
		return
	}

	c.log.Info(ctx, "Got password changed event.", logging.Entry("userID", event.UserID))
	_, err := c.service.Run(ctx, notifypasswordchanged.Input{UserID: user.ID(event.UserID), At: event.At})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not notify about password change, service returned an error.",
			logging.Entry("userID", event.UserID),
			logging.Entry("err", err),
		)
	}
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
