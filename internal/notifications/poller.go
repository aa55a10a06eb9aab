package notifications

import (
	"context"
	"sync"
	"time"
)

// PollHandle owns one running unread-count poll. The owner that started
// the poll stops it on teardown; Stop is idempotent and returns only
// after the loop has exited.
type PollHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop cancels the poll and waits for the loop to exit.
func (h *PollHandle) Stop() {
	h.once.Do(func() {
		h.cancel()
		<-h.done
	})
}

// PollUnread starts a background unread-count refresh: one fetch
// immediately, then one per interval until the handle is stopped. Each
// successful fetch is delivered through onCount; failures are logged
// and otherwise swallowed so a stale count never breaks the screen.
func (s *Service) PollUnread(ctx context.Context, interval time.Duration, onCount func(count int)) *PollHandle {
	ctx, cancel := context.WithCancel(ctx)
	handle := &PollHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(handle.done)

		s.refreshCount(ctx, onCount)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logg.Debug(ctx, "unread poll stopped")
				return
			case <-ticker.C:
				s.refreshCount(ctx, onCount)
			}
		}
	}()

	return handle
}

func (s *Service) refreshCount(ctx context.Context, onCount func(count int)) {
	count, err := s.gw.UnreadCount(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logg.Error(ctx, "unread count refresh failed", err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}
	onCount(count)
}
