package dto

import (
	"time"

	"fitplan_backend/internal/models"
)

// ---------------- Requests ----------------

// ActivateRequest is the bulk activation body; a single activation is simply
// a batch of one.
type ActivateRequest struct {
	Items []ActivateItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Dates are pointers on purpose: their absence is a domain condition (the
// whole batch is rejected), not a binding failure.
type ActivateItemRequest struct {
	ItemID    string     `json:"item_id" validate:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type OverrideStatusRequest struct {
	PlanStatus models.PlanStatus `json:"plan_status" validate:"required,oneof=awaiting ready active"`
}

// ---------------- Criteria ----------------

type PendingItemsCriteria struct {
	Type     string `form:"type"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ---------------- Responses ----------------

type ActivationResult struct {
	Activated int          `json:"activated"`
	Failed    []FailedItem `json:"failed,omitempty"`
	Warnings  []string     `json:"warnings,omitempty"`
}

type FailedItem struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

type PendingItemResponse struct {
	ID              string             `json:"id"`
	PurchaseID      string             `json:"purchase_id"`
	ProductID       string             `json:"product_id"`
	ProductName     string             `json:"product_name"`
	ProductType     models.ProductType `json:"product_type"`
	FormStatus      models.FormStatus  `json:"form_status"`
	PlanStatus      models.PlanStatus  `json:"plan_status"`
	HasFormResponse bool               `json:"has_form_response"`
	StartDate       *time.Time         `json:"start_date"`
	EndDate         *time.Time         `json:"end_date"`
	PurchaserName   string             `json:"purchaser_name"`
	CreatedAt       time.Time          `json:"created_at"`
}

type PendingItemsPage struct {
	Items      []*PendingItemResponse `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalPages int                    `json:"total_pages"`
}

type PendingStats struct {
	TotalPending   int64                        `json:"total_pending"`
	ByType         map[models.ProductType]int64 `json:"by_type"`
	ActivatedToday int64                        `json:"activated_today"`
}

type ActivationRecordResponse struct {
	ID          string             `json:"id"`
	ItemID      string             `json:"item_id"`
	PlanType    models.ProductType `json:"plan_type"`
	ActivatedAt time.Time          `json:"activated_at"`
	ActivatedBy *string            `json:"activated_by,omitempty"`
}
