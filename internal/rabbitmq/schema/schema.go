package schema

import (
	"encoding/json"
	"errors"
	"time"
)

// AccountEvent is the AMQP message body of account events.
type AccountEvent struct {
	Type   string    `json:"type"`
	UserID int64     `json:"userId"`
	At     time.Time `json:"at"`
}

func (e *AccountEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func (e *AccountEvent) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, e); err != nil {
		return err
	}
	if e.Type == "" || e.UserID == 0 || e.At.IsZero() {
		return errors.New("account event is incomplete")
	}
	return nil
}
