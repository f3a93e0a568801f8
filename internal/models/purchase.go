package models

import (
	"time"
)

// Purchase arrives pre-populated from the payment/ingestion collaborator.
// PurchaserName and PurchaserEmail are denormalized at ingestion time so the
// admin view and notifications never need a join against the auth system.
type Purchase struct {
	BaseModel
	PurchaserID    string `gorm:"not null;index" json:"purchaser_id"`
	PurchaserName  string `gorm:"not null" json:"purchaser_name"`
	PurchaserEmail string `json:"purchaser_email"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// PurchaseItem is one purchasable unit within a purchase. Its FormStatus and
// PlanStatus pair drives the whole activation workflow.
type PurchaseItem struct {
	BaseModel
	PurchaseID  string      `gorm:"not null;index" json:"purchase_id"`
	ProductID   string      `gorm:"not null" json:"product_id"`
	ProductName string      `gorm:"not null" json:"product_name"`
	ProductType ProductType `gorm:"not null" json:"product_type"`

	FormStatus      FormStatus `gorm:"default:'pending'" json:"form_status"`
	PlanStatus      PlanStatus `gorm:"default:'awaiting';index" json:"plan_status"`
	HasFormResponse bool       `gorm:"default:false" json:"has_form_response"`

	// Both must be set before the item may go active.
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
}

// HasValidityWindow reports whether the item carries a complete, ordered
// validity window. The activation precondition.
func (i *PurchaseItem) HasValidityWindow() bool {
	return i.StartDate != nil && i.EndDate != nil && !i.EndDate.Before(*i.StartDate)
}
