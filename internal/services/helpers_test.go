package services

import (
	"sync"
	"time"

	"fitplan_backend/internal/models"
	"fitplan_backend/internal/repositories"
)

// fakeItemRepo is an in-memory PurchaseItemRepository with per-method error
// injection for the partial-failure paths.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*models.PurchaseItem

	activateErr      map[string]error
	markCompletedErr error
	markHasRespErr   error
}

func newFakeItemRepo(items ...models.PurchaseItem) *fakeItemRepo {
	r := &fakeItemRepo{
		items:       make(map[string]*models.PurchaseItem),
		activateErr: make(map[string]error),
	}
	for i := range items {
		item := items[i]
		r.items[item.ID] = &item
	}
	return r
}

func (r *fakeItemRepo) CreatePurchase(purchase *models.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range purchase.Items {
		item := purchase.Items[i]
		r.items[item.ID] = &item
	}
	return nil
}

func (r *fakeItemRepo) FindByID(id string) (*models.PurchaseItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) FindByIDs(ids []string) ([]models.PurchaseItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PurchaseItem
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindByPlanStatus(status models.PlanStatus) ([]models.PurchaseItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PurchaseItem
	for _, item := range r.items {
		if item.PlanStatus == status {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindAll() ([]models.PurchaseItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PurchaseItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeItemRepo) ActivateItem(itemID string, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.activateErr[itemID]; ok {
		return err
	}
	item, ok := r.items[itemID]
	if !ok {
		return repositories.ErrItemNotFound
	}
	if item.PlanStatus == models.PlanStatusActive {
		return repositories.ErrItemNotActivatable
	}
	item.PlanStatus = models.PlanStatusActive
	item.StartDate = &start
	item.EndDate = &end
	return nil
}

func (r *fakeItemRepo) SetPlanStatus(itemID string, status models.PlanStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return repositories.ErrItemNotFound
	}
	item.PlanStatus = status
	return nil
}

func (r *fakeItemRepo) MarkFormCompleted(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markCompletedErr != nil {
		return r.markCompletedErr
	}
	item, ok := r.items[itemID]
	if !ok {
		return repositories.ErrItemNotFound
	}
	item.FormStatus = models.FormStatusCompleted
	item.HasFormResponse = true
	return nil
}

func (r *fakeItemRepo) MarkHasFormResponse(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markHasRespErr != nil {
		return r.markHasRespErr
	}
	item, ok := r.items[itemID]
	if !ok {
		return repositories.ErrItemNotFound
	}
	item.HasFormResponse = true
	return nil
}

func (r *fakeItemRepo) get(id string) models.PurchaseItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.items[id]
}

// fakeActivationRepo collects history records in memory.
type fakeActivationRepo struct {
	mu        sync.Mutex
	records   []models.ActivationRecord
	createErr map[string]error
}

func newFakeActivationRepo() *fakeActivationRepo {
	return &fakeActivationRepo{createErr: make(map[string]error)}
}

func (r *fakeActivationRepo) Create(record *models.ActivationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.createErr[record.ItemID]; ok {
		return err
	}
	if record.ActivatedAt.IsZero() {
		record.ActivatedAt = time.Now()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeActivationRepo) FindRecent(limit int) ([]models.ActivationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ActivationRecord, len(r.records))
	copy(out, r.records)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeActivationRepo) CountActivatedSince(since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, record := range r.records {
		if !record.ActivatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeActivationRepo) recordedItemIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.records))
	for _, record := range r.records {
		ids = append(ids, record.ItemID)
	}
	return ids
}

// fakeFormRepo keys responses by item id, like the real upsert.
type fakeFormRepo struct {
	mu        sync.Mutex
	responses map[string]models.FormResponse
	upsertErr error
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{responses: make(map[string]models.FormResponse)}
}

func (r *fakeFormRepo) Upsert(response *models.FormResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.responses[response.ItemID] = *response
	return nil
}

func (r *fakeFormRepo) FindByItemID(itemID string) (*models.FormResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	response, ok := r.responses[itemID]
	if !ok {
		return nil, repositories.ErrFormResponseNotFound
	}
	return &response, nil
}

// fakeNotifications records activation notices; the embedded interface covers
// the methods the test never reaches.
type fakeNotifications struct {
	NotificationService

	mu       sync.Mutex
	notified []string
	failFor  map[string]error
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{failFor: make(map[string]error)}
}

func (n *fakeNotifications) NotifyPlanActivated(item *models.PurchaseItem, start, end time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err, ok := n.failFor[item.ID]; ok {
		return err
	}
	n.notified = append(n.notified, item.ID)
	return nil
}

func (n *fakeNotifications) notifiedItemIDs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.notified))
	copy(out, n.notified)
	return out
}

// awaitingItem builds a pending purchase item with its purchase preloaded.
func awaitingItem(id, productName string, productType models.ProductType, purchaserName string, createdAt time.Time) models.PurchaseItem {
	item := models.PurchaseItem{
		PurchaseID:  "purchase-" + id,
		ProductID:   "product-" + id,
		ProductName: productName,
		ProductType: productType,
		FormStatus:  models.FormStatusCompleted,
		PlanStatus:  models.PlanStatusAwaiting,
		Purchase: models.Purchase{
			PurchaserID:    "user-" + id,
			PurchaserName:  purchaserName,
			PurchaserEmail: purchaserName + "@example.com",
		},
	}
	item.ID = id
	item.CreatedAt = createdAt
	return item
}
