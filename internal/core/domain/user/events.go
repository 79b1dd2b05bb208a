package user

import (
	"context"
	"time"
)

type EventType string

const EventPasswordChanged = EventType("password_changed")

type Event struct {
	Type   EventType
	UserID ID
	At     time.Time
}

func NewPasswordChangedEvent(userID ID, at time.Time) Event {
	return Event{Type: EventPasswordChanged, UserID: userID, At: at}
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type PasswordChangedNoticeSender interface {
	SendPasswordChangedNotice(ctx context.Context, u User, at time.Time) error
}
