package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docsbot/internal/store"
	"github.com/dgallion1/docsbot/internal/telegram"
)

// cleanupInterval paces TTL eviction for the doc and session stores.
const cleanupInterval = 5 * time.Minute

// Dispatcher fans incoming updates out to a bounded worker pool and
// runs periodic store cleanup.
type Dispatcher struct {
	bot      *Bot
	docs     *store.DocStore
	sessions *store.SessionStore
	queue    chan telegram.Update
	workers  int
	log      *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDispatcher(b *Bot, docs *store.DocStore, sessions *store.SessionStore, workers, queueSize int, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		bot:      b,
		docs:     docs,
		sessions: sessions,
		queue:    make(chan telegram.Update, queueSize),
		workers:  workers,
		log:      log,
	}
}

// Start launches the worker goroutines and the cleanup loop.
func (d *Dispatcher) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case up, ok := <-d.queue:
					if !ok {
						return
					}
					d.bot.HandleUpdate(workerCtx, up)
				}
			}
		}()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				d.docs.Cleanup()
				d.sessions.Cleanup()
			}
		}
	}()
}

// Enqueue hands one update to the pool without blocking the webhook;
// a full queue drops the update.
func (d *Dispatcher) Enqueue(up telegram.Update) bool {
	select {
	case d.queue <- up:
		return true
	default:
		d.log.Warn("update queue full, dropping update", "update_id", up.UpdateID)
		return false
	}
}

// Stop cancels the workers and waits for in-flight updates.
func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
}
