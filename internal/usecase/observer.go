package usecase

import "time"

// MutationObserver receives the outcome of every lineup and seat mutation.
type MutationObserver interface {
	ObserveMutation(entity, operation, outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveMutation(string, string, string, time.Duration) {}

func observe(o MutationObserver, entity, operation string, started time.Time, err error) {
	o.ObserveMutation(entity, operation, outcomeOf(err), time.Since(started))
}
