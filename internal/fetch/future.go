package fetch

import "context"

// Future is the pending result of a fetch started with Client.Go.
type Future struct {
	done  chan struct{}
	value any
	err   error
}

// Go starts fetching path in the background and returns immediately.
// Cancelling ctx aborts the request.
func (c *Client) Go(ctx context.Context, path string) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = c.Fetch(ctx, path)
	}()
	return f
}

// Done is closed once the fetch has completed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the fetch completes or ctx is done.
// Giving up on ctx does not cancel the fetch itself.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
