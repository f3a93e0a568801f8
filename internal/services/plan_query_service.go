package services

import (
	"sort"
	"strings"
	"time"

	"fitplan_backend/internal/models"
	"fitplan_backend/internal/repositories"
	"fitplan_backend/internal/services/dto"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PlanQueryService interface {
	ListPendingItems(criteria dto.PendingItemsCriteria) (*dto.PendingItemsPage, error)
	GetPendingStats() (*dto.PendingStats, error)
	GetActivationHistory(limit int) ([]*dto.ActivationRecordResponse, error)
}

type planQueryService struct {
	itemRepo       repositories.PurchaseItemRepository
	activationRepo repositories.ActivationRepository
}

func NewPlanQueryService(
	itemRepo repositories.PurchaseItemRepository,
	activationRepo repositories.ActivationRepository,
) PlanQueryService {
	return &planQueryService{
		itemRepo:       itemRepo,
		activationRepo: activationRepo,
	}
}

// ListPendingItems projects the awaiting items through type filter, free-text
// search, stable sort and pagination. A page past the end is an empty page,
// never an error.
func (s *planQueryService) ListPendingItems(criteria dto.PendingItemsCriteria) (*dto.PendingItemsPage, error) {
	items, err := s.itemRepo.FindByPlanStatus(models.PlanStatusAwaiting)
	if err != nil {
		return nil, err
	}

	filtered := filterItems(items, criteria.Type, criteria.Search)
	sortItems(filtered, criteria.SortBy, criteria.SortDir)

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	responses := make([]*dto.PendingItemResponse, 0, end-start)
	for _, item := range filtered[start:end] {
		responses = append(responses, buildPendingItemResponse(item))
	}

	return &dto.PendingItemsPage{
		Items:      responses,
		Total:      int64(total),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(int64(total), pageSize),
	}, nil
}

// GetPendingStats produces the admin dashboard counters. "Activated today"
// counts history records since local midnight.
func (s *planQueryService) GetPendingStats() (*dto.PendingStats, error) {
	items, err := s.itemRepo.FindByPlanStatus(models.PlanStatusAwaiting)
	if err != nil {
		return nil, err
	}

	byType := map[models.ProductType]int64{}
	for _, item := range items {
		byType[item.ProductType]++
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	activatedToday, err := s.activationRepo.CountActivatedSince(midnight)
	if err != nil {
		return nil, err
	}

	return &dto.PendingStats{
		TotalPending:   int64(len(items)),
		ByType:         byType,
		ActivatedToday: activatedToday,
	}, nil
}

func (s *planQueryService) GetActivationHistory(limit int) ([]*dto.ActivationRecordResponse, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	records, err := s.activationRepo.FindRecent(limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ActivationRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, &dto.ActivationRecordResponse{
			ID:          record.ID,
			ItemID:      record.ItemID,
			PlanType:    record.PlanType,
			ActivatedAt: record.ActivatedAt,
			ActivatedBy: record.ActivatedBy,
		})
	}
	return responses, nil
}

// ---------------- Helpers ----------------

// filterItems applies the type filter first, then the case-insensitive
// substring search over product name and purchaser name.
func filterItems(items []models.PurchaseItem, productType, search string) []models.PurchaseItem {
	filtered := make([]models.PurchaseItem, 0, len(items))

	for _, item := range items {
		if productType != "" && productType != "all" &&
			item.ProductType != models.ProductType(productType) {
			continue
		}
		filtered = append(filtered, item)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return filtered
	}

	matched := filtered[:0]
	for _, item := range filtered {
		if strings.Contains(strings.ToLower(item.ProductName), search) ||
			strings.Contains(strings.ToLower(item.Purchase.PurchaserName), search) {
			matched = append(matched, item)
		}
	}
	return matched
}

// sortItems orders the projection. SliceStable keeps otherwise-equal items in
// their incoming order so repeated renders never reshuffle.
func sortItems(items []models.PurchaseItem, sortBy, sortDir string) {
	desc := sortDir != "asc"

	var less func(a, b models.PurchaseItem) bool
	switch sortBy {
	case "title":
		less = func(a, b models.PurchaseItem) bool {
			an, bn := strings.ToLower(a.ProductName), strings.ToLower(b.ProductName)
			if an != bn {
				return an < bn
			}
			return a.ID < b.ID
		}
	default: // created_at
		less = func(a, b models.PurchaseItem) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func buildPendingItemResponse(item models.PurchaseItem) *dto.PendingItemResponse {
	return &dto.PendingItemResponse{
		ID:              item.ID,
		PurchaseID:      item.PurchaseID,
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		ProductType:     item.ProductType,
		FormStatus:      item.FormStatus,
		PlanStatus:      item.PlanStatus,
		HasFormResponse: item.HasFormResponse,
		StartDate:       item.StartDate,
		EndDate:         item.EndDate,
		PurchaserName:   item.Purchase.PurchaserName,
		CreatedAt:       item.CreatedAt,
	}
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
