package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// Interval is the length of a fixed counting window.
type Interval struct {
	value int
}

var (
	Minute = Interval{}
	Hour   = Interval{value: 1}
)

func (i Interval) Duration() time.Duration {
	if i == Hour {
		return time.Hour
	}
	return time.Minute
}

func (i Interval) String() string {
	if i == Hour {
		return "hour"
	}
	return "minute"
}

// Limit allows Value attempts per Interval.
type Limit struct {
	Value    uint16
	Interval Interval
}

func (l Limit) String() string {
	return fmt.Sprintf("%d/%s", l.Value, l.Interval)
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

// RateLimiter counts an attempt for key and reports whether it fits in limit.
type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}

// Keys are "<scope>::<subject>" where subject is usually an email.
const keySeparator = "::"

// Scope strips the subject from a rate limit key so that it can be logged.
func Scope(key string) string {
	scope, _, _ := strings.Cut(key, keySeparator)
	return scope
}
