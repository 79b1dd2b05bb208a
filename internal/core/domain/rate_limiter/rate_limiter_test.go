package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInterval(t *testing.T) {
	require.Equal(t, time.Minute, Minute.Duration())
	require.Equal(t, time.Hour, Hour.Duration())
	require.Equal(t, "3/hour", Limit{Value: 3, Interval: Hour}.String())
	require.Equal(t, "5/minute", Limit{Value: 5, Interval: Minute}.String())
}

func TestScope(t *testing.T) {
	require.Equal(t, "send-password-reset-code", Scope("send-password-reset-code::user@example.com"))
	require.Equal(t, "no-subject", Scope("no-subject"))
}
