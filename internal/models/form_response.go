package models

import (
	"time"

	"gorm.io/datatypes"
)

// FormResponse holds the onboarding questionnaire answers for one item.
// ItemID is unique: resubmission overwrites, it never duplicates.
type FormResponse struct {
	BaseModel
	ItemID      string         `gorm:"not null;uniqueIndex" json:"item_id"`
	FormType    ProductType    `gorm:"not null" json:"form_type"`
	Answers     datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	IsDraft     bool           `gorm:"default:false" json:"is_draft"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
}
