package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitplan_backend/internal/models"
)

var ErrFormResponseNotFound = errors.New("form response not found")

type FormResponseRepository interface {
	Upsert(response *models.FormResponse) error
	FindByItemID(itemID string) (*models.FormResponse, error)
}

type FormResponseRepositoryImpl struct {
	db *gorm.DB
}

func NewFormResponseRepository(db *gorm.DB) FormResponseRepository {
	return &FormResponseRepositoryImpl{db: db}
}

// Upsert overwrites any existing response for the item. Resubmission must
// never duplicate.
func (r *FormResponseRepositoryImpl) Upsert(response *models.FormResponse) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"form_type", "answers", "is_draft", "submitted_at", "updated_at"}),
	}).Create(response).Error
}

func (r *FormResponseRepositoryImpl) FindByItemID(itemID string) (*models.FormResponse, error) {
	var response models.FormResponse
	err := r.db.First(&response, "item_id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormResponseNotFound
		}
		return nil, err
	}
	return &response, nil
}
