package ticker

import (
	"context"
	"sync"
	"time"
)

// Ticker invokes fn once per period on its own goroutine until Stop is
// called or ctx ends. Stop is safe to call any number of times.
type Ticker struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func Start(ctx context.Context, period time.Duration, fn func()) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		tk := time.NewTicker(period)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				fn()
			}
		}
	}()
	return t
}

// Stop cancels the ticker and waits for the goroutine to exit.
func (t *Ticker) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the ticking goroutine has exited.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
