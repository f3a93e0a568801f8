package models

// User is the minimal identity the lifecycle needs: addressing notifications
// and telling admin from customer. Registration and credentials live in the
// external auth system.
type User struct {
	BaseModel
	Email       string   `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string   `json:"display_name"`
	Role        UserRole `gorm:"default:'customer'" json:"role"`
}
