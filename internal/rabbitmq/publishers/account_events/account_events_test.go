package accountevents

import (
	"context"
	"errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/rabbitmq/schema"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type publishing struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	published   []publishing
	returnError bool
}

func (f *fakeChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp091.Publishing,
) error {
	if f.returnError {
		return errors.New("channel is closed")
	}
	f.published = append(f.published, publishing{exchange: exchange, key: key, msg: msg})
	return nil
}

var NOW = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

func TestPublish(t *testing.T) {
	channel := &fakeChannel{}
	publisher := NewRabbitMQ(logging.NewFakeLogger(), channel, "account-events")

	err := publisher.Publish(context.Background(), user.NewPasswordChangedEvent(5, NOW))

	require.NoError(t, err)
	require.Len(t, channel.published, 1)
	p := channel.published[0]
	require.Equal(t, "account-events", p.exchange)
	require.Equal(t, "account.password_changed", p.key)
	require.Equal(t, "application/json", p.msg.ContentType)

	message := &schema.AccountEvent{}
	require.NoError(t, message.Unmarshal(p.msg.Body))
	require.Equal(t, int64(5), message.UserID)
	require.True(t, message.At.Equal(NOW))
}

func TestPublishError(t *testing.T) {
	log := logging.NewFakeLogger()
	publisher := NewRabbitMQ(log, &fakeChannel{returnError: true}, "account-events")

	err := publisher.Publish(context.Background(), user.NewPasswordChangedEvent(5, NOW))

	require.Error(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}
