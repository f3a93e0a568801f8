// Package watcher turns the level-triggered plan status into edge-triggered
// "your plan is ready" events. It diffs each refresh against a durable
// snapshot of the last-observed status per item, so a plan that became ready
// while the process was down is still caught, exactly once, on the next run.
package watcher

import (
	"fitplan_backend/internal/logger"
	"fitplan_backend/internal/models"
)

// Notifier delivers one ready-plan notice to the item's purchaser.
type Notifier interface {
	PlanReady(purchaserID string, item models.PurchaseItem) error
}

// ReadyPlanWatcher is the single writer of its snapshot. It carries no
// transport: callers feed it the current items however they obtained them.
type ReadyPlanWatcher struct {
	snapshots SnapshotStore
	notifier  Notifier

	last   map[string]models.PlanStatus
	loaded bool
}

func NewReadyPlanWatcher(snapshots SnapshotStore, notifier Notifier) *ReadyPlanWatcher {
	return &ReadyPlanWatcher{
		snapshots: snapshots,
		notifier:  notifier,
	}
}

// Refresh diffs the current items against the snapshot and notifies for every
// item that newly reached ready, including items never seen before. Items
// already ready on the prior observation are skipped. Returns how many
// notifications were emitted.
func (w *ReadyPlanWatcher) Refresh(items []models.PurchaseItem) (int, error) {
	if err := w.ensureLoaded(); err != nil {
		return 0, err
	}

	emitted := 0
	dirty := false

	for _, item := range items {
		prev, seen := w.last[item.ID]

		if item.PlanStatus == models.PlanStatusReady && prev != models.PlanStatusReady {
			if err := w.notifier.PlanReady(item.Purchase.PurchaserID, item); err != nil {
				// Leave the snapshot entry alone: an undelivered notice is
				// retried on the next refresh.
				logger.Warn("ready-plan notification failed",
					"item_id", item.ID, "error", err)
				continue
			}
			emitted++
		}

		if !seen || prev != item.PlanStatus {
			w.last[item.ID] = item.PlanStatus
			dirty = true
		}
	}

	if dirty {
		if err := w.snapshots.Save(w.last); err != nil {
			return emitted, err
		}
	}
	return emitted, nil
}

func (w *ReadyPlanWatcher) ensureLoaded() error {
	if w.loaded {
		return nil
	}

	snapshot, err := w.snapshots.Load()
	if err != nil {
		return err
	}
	if snapshot == nil {
		snapshot = map[string]models.PlanStatus{}
	}
	w.last = snapshot
	w.loaded = true
	return nil
}
