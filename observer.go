package swapcell

import "time"

// Observer receives cell lifecycle events. Implementations must be safe
// for concurrent use; every method may be called from any goroutine
// touching the cell.
//
// Observers exist for instrumentation (see pkg/instrument for a Prometheus
// implementation). They run inline on the calling goroutine, so they should
// be cheap and must not call back into the cell.
type Observer interface {
	// ObserveAccess is called once per Access.
	ObserveAccess()

	// ObserveMutate is called once per Mutate with the time spent
	// cloning the working copy.
	ObserveMutate(cloneDuration time.Duration)

	// ObserveCommit is called once per guard commit, after the new
	// version is installed.
	ObserveCommit()

	// ObserveDiscard is called once per guard discard.
	ObserveDiscard()
}
