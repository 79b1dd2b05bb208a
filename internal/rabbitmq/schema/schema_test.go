package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalRejectsIncompleteEvents(t *testing.T) {
	cases := []struct {
		id   string
		body string
	}{
		{id: "not json", body: "42"},
		{id: "empty", body: "{}"},
		{id: "no type", body: `{"userId":1,"at":"2020-06-06T15:30:30Z"}`},
		{id: "no user", body: `{"type":"password_changed","at":"2020-06-06T15:30:30Z"}`},
		{id: "no time", body: `{"type":"password_changed","userId":1}`},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			event := &AccountEvent{}
			require.Error(t, event.Unmarshal([]byte(testcase.body)))
		})
	}
}

func TestUnmarshal(t *testing.T) {
	event := &AccountEvent{}
	err := event.Unmarshal([]byte(`{"type":"password_changed","userId":7,"at":"2020-06-06T15:30:30Z"}`))
	require.NoError(t, err)
	require.Equal(t, "password_changed", event.Type)
	require.Equal(t, int64(7), event.UserID)
}
