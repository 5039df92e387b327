package archive

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Background uploads invoices off the request path. Close waits for uploads
// already started, so shutdown does not cut one off mid-write.
type Background struct {
	archive Archive
	log     *zap.Logger
	timeout time.Duration

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func NewBackground(a Archive, log *zap.Logger, timeout time.Duration) *Background {
	if a == nil {
		a = Noop{}
	}
	return &Background{archive: a, log: log, timeout: timeout}
}

// Submit starts an upload and returns immediately. Failures are logged. A nil
// Background or one already closed ignores the call.
func (b *Background) Submit(sessionID uint, pdf []byte) {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		if err := b.archive.PutInvoice(ctx, sessionID, pdf); err != nil {
			b.log.Warn("invoice archive failed",
				zap.Uint("session_id", sessionID),
				zap.Error(err),
			)
		}
	}()
}

// Close stops accepting uploads and waits for the running ones.
func (b *Background) Close() {
	if b == nil {
		return
	}

	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.wg.Wait()
}
