package services

import "context"

// Service is a single application operation. Decorators such as rate
// limiting, captcha and authentication wrap a Service and return another.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
