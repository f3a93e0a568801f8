package services

import (
	"fmt"
	"sync"
	"time"

	"fitplan_backend/internal/logger"
	"fitplan_backend/internal/models"
	"fitplan_backend/internal/repositories"
	"fitplan_backend/internal/services/dto"
	"fitplan_backend/pkg/apperrors"
)

type ActivationService interface {
	// Activate runs the batch activation. Single-item activation is a batch
	// of one.
	Activate(req *dto.ActivateRequest, activatedBy string) (*dto.ActivationResult, error)

	// OverridePlanStatus is the manual admin edit: it bypasses the
	// forward-only lifecycle on purpose and is always logged.
	OverridePlanStatus(itemID string, status models.PlanStatus, actor string) error
}

type activationService struct {
	itemRepo       repositories.PurchaseItemRepository
	activationRepo repositories.ActivationRepository
	notifications  NotificationService
}

func NewActivationService(
	itemRepo repositories.PurchaseItemRepository,
	activationRepo repositories.ActivationRepository,
	notifications NotificationService,
) ActivationService {
	return &activationService{
		itemRepo:       itemRepo,
		activationRepo: activationRepo,
		notifications:  notifications,
	}
}

// itemOutcome is the per-item unit-of-work result collected at the fan-in.
type itemOutcome struct {
	itemID   string
	err      error
	warnings []string
}

func (s *activationService) Activate(req *dto.ActivateRequest, activatedBy string) (*dto.ActivationResult, error) {
	// Precondition pass over the whole batch before any write: a single item
	// without a full, ordered validity window rejects the entire batch.
	var missingDates, badRanges []string
	for _, item := range req.Items {
		switch {
		case item.StartDate == nil || item.EndDate == nil:
			missingDates = append(missingDates, item.ItemID)
		case item.EndDate.Before(*item.StartDate):
			badRanges = append(badRanges, item.ItemID)
		}
	}
	if len(missingDates) > 0 {
		return nil, apperrors.ErrMissingDates(map[string][]string{"items": missingDates})
	}
	if len(badRanges) > 0 {
		return nil, apperrors.ErrInvalidDateRange(map[string][]string{"items": badRanges})
	}

	ids := make([]string, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ItemID
	}
	existing, err := s.itemRepo.FindByIDs(ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byID := make(map[string]models.PurchaseItem, len(existing))
	for _, item := range existing {
		byID[item.ID] = item
	}
	var unknown []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return nil, apperrors.ErrNotFound(repositories.ErrItemNotFound).
			WithDetails(map[string][]string{"items": unknown})
	}

	// Fan out: items are independent units of work, order does not matter.
	// The aggregate result is only built once every item has settled.
	outcomes := make(chan itemOutcome, len(req.Items))
	var wg sync.WaitGroup
	for _, reqItem := range req.Items {
		wg.Add(1)
		go func(reqItem dto.ActivateItemRequest) {
			defer wg.Done()
			outcomes <- s.activateOne(byID[reqItem.ItemID], *reqItem.StartDate, *reqItem.EndDate, activatedBy)
		}(reqItem)
	}
	wg.Wait()
	close(outcomes)

	result := &dto.ActivationResult{}
	for outcome := range outcomes {
		if outcome.err != nil {
			result.Failed = append(result.Failed, dto.FailedItem{
				ItemID: outcome.itemID,
				Reason: outcome.err.Error(),
			})
			continue
		}
		result.Activated++
		result.Warnings = append(result.Warnings, outcome.warnings...)
	}

	logger.Info("activation batch finished",
		"requested", len(req.Items),
		"activated", result.Activated,
		"failed", len(result.Failed),
		"activated_by", activatedBy,
	)
	return result, nil
}

// activateOne runs one item's activation: the primary status write, then the
// best-effort history append and customer notification. Secondary failures
// become warnings and never roll the primary effect back.
func (s *activationService) activateOne(item models.PurchaseItem, start, end time.Time, activatedBy string) itemOutcome {
	outcome := itemOutcome{itemID: item.ID}

	if err := s.itemRepo.ActivateItem(item.ID, start, end); err != nil {
		outcome.err = err
		return outcome
	}

	record := &models.ActivationRecord{
		ItemID:      item.ID,
		PlanType:    item.ProductType,
		ActivatedAt: time.Now(),
	}
	if activatedBy != "" {
		record.ActivatedBy = &activatedBy
	}
	if err := s.activationRepo.Create(record); err != nil {
		warning := fmt.Sprintf("item %s activated but history write failed: %v", item.ID, err)
		logger.Warn("activation history write failed", "item_id", item.ID, "error", err)
		outcome.warnings = append(outcome.warnings, warning)
	}

	if err := s.notifications.NotifyPlanActivated(&item, start, end); err != nil {
		warning := fmt.Sprintf("item %s activated but notification failed: %v", item.ID, err)
		logger.Warn("activation notification failed", "item_id", item.ID, "error", err)
		outcome.warnings = append(outcome.warnings, warning)
	}

	return outcome
}

func (s *activationService) OverridePlanStatus(itemID string, status models.PlanStatus, actor string) error {
	if !status.IsValid() {
		return apperrors.ErrInvalidStatus("activation", "Unknown plan status")
	}

	if err := s.itemRepo.SetPlanStatus(itemID, status); err != nil {
		if err == repositories.ErrItemNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	logger.Warn("plan status manually overridden",
		"item_id", itemID, "status", status, "actor", actor)
	return nil
}
