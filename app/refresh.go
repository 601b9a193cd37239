/* refresh.go
 * Contains the auto refresh timer used by the results and moderation views.
 * The timer must be cancelled when the consuming view goes away, otherwise it
 * keeps issuing network calls against a dead view; Close does this as part of
 * session teardown and StopAutoRefresh does it explicitly
 * Authors: Zachary Bower
 */

package app

import (
	"context"
	"time"
)

// StartAutoRefresh runs fn every interval until StopAutoRefresh or Close is
// called. Starting again replaces the previous timer. fn receives a context that
// is cancelled on stop so an in-flight refresh can bail out early
func (a *App) StartAutoRefresh(interval time.Duration, fn func(context.Context)) {
	a.StopAutoRefresh()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	a.mu.Lock()
	a.refreshCancel = cancel
	a.refreshDone = done
	a.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
}

// StopAutoRefresh cancels the running refresh timer, waiting for the refresh
// goroutine to exit. Calling it with no timer running is a no-op
func (a *App) StopAutoRefresh() {
	a.mu.Lock()
	cancel := a.refreshCancel
	done := a.refreshDone
	a.refreshCancel = nil
	a.refreshDone = nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
