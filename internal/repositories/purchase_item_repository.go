package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"fitplan_backend/internal/models"
)

var (
	ErrItemNotFound       = errors.New("purchase item not found")
	ErrItemNotActivatable = errors.New("purchase item is already active")
)

type PurchaseItemRepository interface {
	CreatePurchase(purchase *models.Purchase) error
	FindByID(id string) (*models.PurchaseItem, error)
	FindByIDs(ids []string) ([]models.PurchaseItem, error)
	FindByPlanStatus(status models.PlanStatus) ([]models.PurchaseItem, error)
	FindAll() ([]models.PurchaseItem, error)
	ActivateItem(itemID string, start, end time.Time) error
	SetPlanStatus(itemID string, status models.PlanStatus) error
	MarkFormCompleted(itemID string) error
	MarkHasFormResponse(itemID string) error
}

type PurchaseItemRepositoryImpl struct {
	db *gorm.DB
}

func NewPurchaseItemRepository(db *gorm.DB) PurchaseItemRepository {
	return &PurchaseItemRepositoryImpl{db: db}
}

// CreatePurchase seeds a purchase with its items, the shape the ingestion
// collaborator delivers them in.
func (r *PurchaseItemRepositoryImpl) CreatePurchase(purchase *models.Purchase) error {
	return r.db.Create(purchase).Error
}

func (r *PurchaseItemRepositoryImpl) FindByID(id string) (*models.PurchaseItem, error) {
	var item models.PurchaseItem
	err := r.db.Preload("Purchase").First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PurchaseItemRepositoryImpl) FindByIDs(ids []string) ([]models.PurchaseItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.PurchaseItem
	err := r.db.Preload("Purchase").Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *PurchaseItemRepositoryImpl) FindByPlanStatus(status models.PlanStatus) ([]models.PurchaseItem, error) {
	var items []models.PurchaseItem
	err := r.db.Preload("Purchase").
		Where("plan_status = ?", status).
		Order("created_at DESC, id").
		Find(&items).Error
	return items, err
}

// FindAll feeds the refresh worker: the watcher tracks every item's status,
// not only the ready ones.
func (r *PurchaseItemRepositoryImpl) FindAll() ([]models.PurchaseItem, error) {
	var items []models.PurchaseItem
	err := r.db.Preload("Purchase").Order("created_at DESC, id").Find(&items).Error
	return items, err
}

// ActivateItem is the primary activation effect: flip to active and persist
// the validity window. Guarded so an already-active item is never re-activated
// through the normal flow.
func (r *PurchaseItemRepositoryImpl) ActivateItem(itemID string, start, end time.Time) error {
	result := r.db.Model(&models.PurchaseItem{}).
		Where("id = ? AND plan_status <> ?", itemID, models.PlanStatusActive).
		Updates(map[string]interface{}{
			"plan_status": models.PlanStatusActive,
			"start_date":  start,
			"end_date":    end,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.PurchaseItem{}).Where("id = ?", itemID).Count(&count)
		if count > 0 {
			return ErrItemNotActivatable
		}
		return ErrItemNotFound
	}
	return nil
}

// SetPlanStatus writes a plan status directly. Manual admin override path;
// the lifecycle guard is deliberately absent here.
func (r *PurchaseItemRepositoryImpl) SetPlanStatus(itemID string, status models.PlanStatus) error {
	result := r.db.Model(&models.PurchaseItem{}).
		Where("id = ?", itemID).
		Update("plan_status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PurchaseItemRepositoryImpl) MarkFormCompleted(itemID string) error {
	result := r.db.Model(&models.PurchaseItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"form_status":       models.FormStatusCompleted,
			"has_form_response": true,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PurchaseItemRepositoryImpl) MarkHasFormResponse(itemID string) error {
	result := r.db.Model(&models.PurchaseItem{}).
		Where("id = ?", itemID).
		Update("has_form_response", true)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
