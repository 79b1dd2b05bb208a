package eventpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/user"
	"time"

	"github.com/r3labs/sse/v2"
)

type ssePublisher interface {
	Publish(id string, event *sse.Event)
}

// SSE pushes account events to the stream named after the user ID.
type SSE struct {
	server ssePublisher
}

func NewSSE(server *sse.Server) *SSE {
	if server == nil {
		panic(e.NewNilArgumentError("server"))
	}
	return &SSE{server: server}
}

func (p *SSE) Publish(ctx context.Context, event user.Event) error {
	data, err := json.Marshal(sseEvent{Type: string(event.Type), At: event.At.UTC()})
	if err != nil {
		return err
	}
	p.server.Publish(StreamID(event.UserID), &sse.Event{
		Event: []byte(event.Type),
		Data:  data,
	})
	return nil
}

func StreamID(userID user.ID) string {
	return fmt.Sprintf("%d", userID)
}

type sseEvent struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}
