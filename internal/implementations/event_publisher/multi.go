package eventpublisher

import (
	"context"
	"fmt"
	"postboard/internal/core/domain/user"
)

// Multi publishes to every publisher and reports the first failure.
type Multi struct {
	publishers []user.EventPublisher
}

func NewMulti(publishers ...user.EventPublisher) *Multi {
	return &Multi{publishers: publishers}
}

func (m *Multi) Publish(ctx context.Context, event user.Event) error {
	var firstErr error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("could not publish %s event: %w", event.Type, err)
		}
	}
	return firstErr
}
