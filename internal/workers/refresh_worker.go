package workers

import (
	"context"
	"sync"
	"time"

	"fitplan_backend/internal/logger"
	"fitplan_backend/internal/repositories"
	"fitplan_backend/internal/watcher"
)

// RefreshWorker is the polling transport in front of the ready-plan watcher:
// on a fixed interval it re-fetches the items and hands them to the watcher
// for edge detection. A tick that fires while the previous refresh is still
// in flight is skipped — the same refresh is never run twice concurrently.
type RefreshWorker struct {
	itemRepo repositories.PurchaseItemRepository
	watcher  *watcher.ReadyPlanWatcher
	interval time.Duration

	mu sync.Mutex
}

func NewRefreshWorker(
	itemRepo repositories.PurchaseItemRepository,
	w *watcher.ReadyPlanWatcher,
	interval time.Duration,
) *RefreshWorker {
	return &RefreshWorker{
		itemRepo: itemRepo,
		watcher:  w,
		interval: interval,
	}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *RefreshWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// One refresh at startup so plans that became ready while the process
	// was down are caught immediately.
	w.RefreshOnce()

	for {
		select {
		case <-ctx.Done():
			logger.Info("refresh worker stopped")
			return
		case <-ticker.C:
			w.RefreshOnce()
		}
	}
}

// RefreshOnce runs a single fetch-and-diff cycle, skipping if one is already
// in flight.
func (w *RefreshWorker) RefreshOnce() {
	if !w.mu.TryLock() {
		logger.Debug("refresh already in flight, skipping tick")
		return
	}
	defer w.mu.Unlock()

	items, err := w.itemRepo.FindAll()
	if err != nil {
		logger.WorkerLog("refresh", "fetch items", err)
		return
	}

	emitted, err := w.watcher.Refresh(items)
	if err != nil {
		logger.WorkerLog("refresh", "diff snapshot", err)
		return
	}
	if emitted > 0 {
		logger.Info("ready-plan notifications emitted", "count", emitted)
	}
}
