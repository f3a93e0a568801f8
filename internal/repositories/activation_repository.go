package repositories

import (
	"time"

	"gorm.io/gorm"

	"fitplan_backend/internal/models"
)

// ActivationRepository is append-only: records are created and read, never
// updated or deleted.
type ActivationRepository interface {
	Create(record *models.ActivationRecord) error
	FindRecent(limit int) ([]models.ActivationRecord, error)
	CountActivatedSince(since time.Time) (int64, error)
}

type ActivationRepositoryImpl struct {
	db *gorm.DB
}

func NewActivationRepository(db *gorm.DB) ActivationRepository {
	return &ActivationRepositoryImpl{db: db}
}

func (r *ActivationRepositoryImpl) Create(record *models.ActivationRecord) error {
	if record.ActivatedAt.IsZero() {
		record.ActivatedAt = time.Now()
	}
	return r.db.Create(record).Error
}

func (r *ActivationRepositoryImpl) FindRecent(limit int) ([]models.ActivationRecord, error) {
	var records []models.ActivationRecord
	err := r.db.Order("activated_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

func (r *ActivationRepositoryImpl) CountActivatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ActivationRecord{}).
		Where("activated_at >= ?", since).
		Count(&count).Error
	return count, err
}
