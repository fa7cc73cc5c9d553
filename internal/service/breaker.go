package service

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// newBreaker returns a circuit breaker for an external collaborator. It trips
// after 3 consecutive failures, or a failure ratio above 20% once 10 requests
// have been seen, and tries again after 30 seconds. A definite "no such
// channel" answer and a caller cancellation do not count as failures.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	st := gobreaker.Settings{
		Name:     name,
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 3 {
				return true
			}
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) > 0.2
		},
		IsSuccessful: breakerSuccess,
	}
	return gobreaker.NewCircuitBreaker(st)
}

func breakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, ErrChannelNotFound) ||
		errors.Is(err, context.Canceled)
}
