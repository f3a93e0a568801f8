package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"fitplan_backend/internal/logger"
	"fitplan_backend/internal/models"
	"fitplan_backend/internal/repositories"
	"fitplan_backend/internal/services/dto"
	"fitplan_backend/pkg/apperrors"
)

type FormService interface {
	// SubmitForm saves the onboarding answers for an item and marks its form
	// completed. Resubmission overwrites. When the response is saved but the
	// item-row update fails, the result carries a warning instead of failing:
	// user-entered data is never lost to secondary bookkeeping.
	SubmitForm(itemID string, req *dto.SubmitFormRequest) (*dto.SubmitFormResult, error)

	// SaveDraft stores a partial response without completing the form. A
	// draft does not satisfy the plan-preparation gate.
	SaveDraft(itemID string, req *dto.SubmitFormRequest) (*dto.SubmitFormResult, error)
}

type formService struct {
	formRepo repositories.FormResponseRepository
	itemRepo repositories.PurchaseItemRepository
}

func NewFormService(
	formRepo repositories.FormResponseRepository,
	itemRepo repositories.PurchaseItemRepository,
) FormService {
	return &formService{
		formRepo: formRepo,
		itemRepo: itemRepo,
	}
}

func (s *formService) SubmitForm(itemID string, req *dto.SubmitFormRequest) (*dto.SubmitFormResult, error) {
	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		if err == repositories.ErrItemNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid form answers: " + err.Error())
	}

	now := time.Now()
	response := &models.FormResponse{
		ItemID:      itemID,
		FormType:    models.ProductType(req.FormType),
		Answers:     datatypes.JSON(answers),
		IsDraft:     false,
		SubmittedAt: &now,
	}

	if err := s.formRepo.Upsert(response); err != nil {
		// The response itself could not be saved; this is the one hard
		// failure of the operation.
		return nil, apperrors.InternalError(err)
	}

	if err := s.itemRepo.MarkFormCompleted(itemID); err != nil {
		logger.Warn("form saved but item status update failed",
			"item_id", itemID, "error", err)
		return &dto.SubmitFormResult{
			Success: true,
			Warning: fmt.Sprintf("form saved, but the purchase item could not be updated: %v", err),
		}, nil
	}

	return &dto.SubmitFormResult{Success: true}, nil
}

func (s *formService) SaveDraft(itemID string, req *dto.SubmitFormRequest) (*dto.SubmitFormResult, error) {
	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		if err == repositories.ErrItemNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid form answers: " + err.Error())
	}

	response := &models.FormResponse{
		ItemID:   itemID,
		FormType: models.ProductType(req.FormType),
		Answers:  datatypes.JSON(answers),
		IsDraft:  true,
	}

	if err := s.formRepo.Upsert(response); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.itemRepo.MarkHasFormResponse(itemID); err != nil {
		logger.Warn("draft saved but item flag update failed",
			"item_id", itemID, "error", err)
		return &dto.SubmitFormResult{
			Success: true,
			Warning: fmt.Sprintf("draft saved, but the purchase item could not be updated: %v", err),
		}, nil
	}

	return &dto.SubmitFormResult{Success: true}, nil
}
