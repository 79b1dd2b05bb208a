package consumers

import (
	"context"
	"postboard/internal/app/deps"
	"postboard/internal/app/services"
	dl "postboard/internal/core/domain/logging"
	passwordchanged "postboard/internal/rabbitmq/consumers/password_changed"
)

func initPasswordChangedConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordChangedQueue
	consumer := passwordchanged.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.NotifyPasswordChanged,
	)
	if err = consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownPasswordChangedConsumer := initPasswordChangedConsumer(deps, services)

	return func() {
		shutdownPasswordChangedConsumer()
	}
}
