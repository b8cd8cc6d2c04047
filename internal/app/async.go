package app

import (
	"context"

	"snowland_hotels/internal/domain"
)

// Snapshot is the settled result of a repository call.
type Snapshot struct {
	Hotels domain.Collection
	Err    error
}

// Go starts call in the background. The returned channel yields exactly one
// Snapshot and is then closed.
func Go(ctx context.Context, call func(context.Context) (domain.Collection, error)) <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	go func() {
		defer close(ch)
		hs, err := call(ctx)
		ch <- Snapshot{Hotels: hs, Err: err}
	}()
	return ch
}
