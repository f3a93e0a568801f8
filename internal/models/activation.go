package models

import (
	"time"
)

// ActivationRecord is the append-only audit trail: one row per successful
// activation of one item, bulk or single. Never updated, never deleted.
type ActivationRecord struct {
	BaseModel
	ItemID      string      `gorm:"not null;index" json:"item_id"`
	PlanType    ProductType `gorm:"not null" json:"plan_type"`
	ActivatedAt time.Time   `gorm:"not null;index" json:"activated_at"`
	ActivatedBy *string     `json:"activated_by,omitempty"`
}
