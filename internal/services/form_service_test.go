package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitplan_backend/internal/models"
	"fitplan_backend/internal/services/dto"
	"fitplan_backend/pkg/apperrors"
)

func mealForm(goal string) *dto.SubmitFormRequest {
	return &dto.SubmitFormRequest{
		FormType: "meal",
		Answers: map[string]interface{}{
			"goal":      goal,
			"allergies": []string{"nuts"},
		},
	}
}

func TestSubmitForm_SavesAnswersAndCompletesItem(t *testing.T) {
	t.Parallel()

	itemRepo := newFakeItemRepo(
		awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now()),
	)
	formRepo := newFakeFormRepo()
	svc := NewFormService(formRepo, itemRepo)

	result, err := svc.SubmitForm("a", mealForm("lose weight"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Warning)

	item := itemRepo.get("a")
	assert.Equal(t, models.FormStatusCompleted, item.FormStatus)
	assert.True(t, item.HasFormResponse)

	saved, err := formRepo.FindByItemID("a")
	require.NoError(t, err)
	assert.False(t, saved.IsDraft)
	require.NotNil(t, saved.SubmittedAt)

	var answers map[string]interface{}
	require.NoError(t, json.Unmarshal(saved.Answers, &answers))
	assert.Equal(t, "lose weight", answers["goal"])
}

func TestSubmitForm_ResubmissionOverwrites(t *testing.T) {
	t.Parallel()

	itemRepo := newFakeItemRepo(
		awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now()),
	)
	formRepo := newFakeFormRepo()
	svc := NewFormService(formRepo, itemRepo)

	_, err := svc.SubmitForm("a", mealForm("lose weight"))
	require.NoError(t, err)
	_, err = svc.SubmitForm("a", mealForm("gain muscle"))
	require.NoError(t, err)

	require.Len(t, formRepo.responses, 1, "resubmission never duplicates")
	saved, err := formRepo.FindByItemID("a")
	require.NoError(t, err)

	var answers map[string]interface{}
	require.NoError(t, json.Unmarshal(saved.Answers, &answers))
	assert.Equal(t, "gain muscle", answers["goal"])
}

func TestSubmitForm_UnknownItemIs404(t *testing.T) {
	t.Parallel()

	svc := NewFormService(newFakeFormRepo(), newFakeItemRepo())

	_, err := svc.SubmitForm("ghost", mealForm("anything"))
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestSubmitForm_UpsertFailureIsHardError(t *testing.T) {
	t.Parallel()

	itemRepo := newFakeItemRepo(
		awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now()),
	)
	formRepo := newFakeFormRepo()
	formRepo.upsertErr = errors.New("disk full")
	svc := NewFormService(formRepo, itemRepo)

	_, err := svc.SubmitForm("a", mealForm("lose weight"))
	require.Error(t, err)

	// The item was not marked completed.
	assert.NotEqual(t, models.FormStatusCompleted, itemRepo.get("a").FormStatus)
}

func TestSubmitForm_ItemUpdateFailureIsWarning(t *testing.T) {
	t.Parallel()

	itemRepo := newFakeItemRepo(
		awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now()),
	)
	itemRepo.markCompletedErr = errors.New("lock timeout")
	formRepo := newFakeFormRepo()
	svc := NewFormService(formRepo, itemRepo)

	result, err := svc.SubmitForm("a", mealForm("lose weight"))
	require.NoError(t, err, "the response was saved, so the operation succeeds")
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Warning)

	// The answers survived even though the item row did not update.
	_, err = formRepo.FindByItemID("a")
	assert.NoError(t, err)
}

func TestSaveDraft_DoesNotCompleteForm(t *testing.T) {
	t.Parallel()

	itemRepo := newFakeItemRepo(
		awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now()),
	)
	itemRepo.items["a"].FormStatus = models.FormStatusInProgress

	formRepo := newFakeFormRepo()
	svc := NewFormService(formRepo, itemRepo)

	result, err := svc.SaveDraft("a", mealForm("still deciding"))
	require.NoError(t, err)
	assert.True(t, result.Success)

	updated := itemRepo.get("a")
	assert.NotEqual(t, models.FormStatusCompleted, updated.FormStatus, "a draft never completes the form")
	assert.True(t, updated.HasFormResponse)

	saved, err := formRepo.FindByItemID("a")
	require.NoError(t, err)
	assert.True(t, saved.IsDraft)
	assert.Nil(t, saved.SubmittedAt)
}

func TestSaveDraft_ThenSubmitClearsDraft(t *testing.T) {
	t.Parallel()

	itemRepo := newFakeItemRepo(
		awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now()),
	)
	formRepo := newFakeFormRepo()
	svc := NewFormService(formRepo, itemRepo)

	_, err := svc.SaveDraft("a", mealForm("draft"))
	require.NoError(t, err)
	_, err = svc.SubmitForm("a", mealForm("final"))
	require.NoError(t, err)

	saved, err := formRepo.FindByItemID("a")
	require.NoError(t, err)
	assert.False(t, saved.IsDraft)
	assert.Equal(t, models.FormStatusCompleted, itemRepo.get("a").FormStatus)
}
