package services

import (
	"errors"
	"fmt"
	"time"

	"fitplan_backend/internal/email"
	"fitplan_backend/internal/models"
	"fitplan_backend/internal/notify"
	"fitplan_backend/internal/services/dto"
	"fitplan_backend/pkg/apperrors"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	// Log operations
	GetUserNotifications(userID string) (*dto.NotificationListResponse, error)
	GetUnreadCount(userID string) (int, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(userID, notificationID string) error
	ClearAll(userID string) error

	// Factory methods for lifecycle events
	PlanReady(purchaserID string, item models.PurchaseItem) error
	NotifyPlanActivated(item *models.PurchaseItem, start, end time.Time) error
}

type notificationService struct {
	center *notify.Center
	mailer email.Provider
}

func NewNotificationService(center *notify.Center, mailer email.Provider) NotificationService {
	return &notificationService{
		center: center,
		mailer: mailer,
	}
}

// ---------------- Log operations ----------------

func (s *notificationService) GetUserNotifications(userID string) (*dto.NotificationListResponse, error) {
	store := s.center.ForUser(userID)
	entries := store.List()

	return &dto.NotificationListResponse{
		Notifications: entries,
		Total:         len(entries),
		UnreadCount:   store.UnreadCount(),
	}, nil
}

func (s *notificationService) GetUnreadCount(userID string) (int, error) {
	return s.center.ForUser(userID).UnreadCount(), nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	if !s.center.ForUser(userID).MarkRead(notificationID) {
		return apperrors.ErrNotFound(ErrNotificationNotFound)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	s.center.ForUser(userID).MarkAllRead()
	return nil
}

func (s *notificationService) DeleteNotification(userID, notificationID string) error {
	if !s.center.ForUser(userID).Remove(notificationID) {
		return apperrors.ErrNotFound(ErrNotificationNotFound)
	}
	return nil
}

func (s *notificationService) ClearAll(userID string) error {
	s.center.ForUser(userID).ClearAll()
	return nil
}

// ---------------- Factory methods ----------------

// PlanReady records the "your plan is ready" notice the watcher emits once
// per ready transition. Dedup lives with the watcher, not here.
func (s *notificationService) PlanReady(purchaserID string, item models.PurchaseItem) error {
	s.center.ForUser(purchaserID).Add(notify.Notification{
		Type:     notify.TypeSuccess,
		Title:    "Your plan is ready",
		Message:  fmt.Sprintf("Your %s plan '%s' is ready to view", item.ProductType, item.ProductName),
		Link:     "/plans/" + item.ID,
		LinkText: "View plan",
	})
	return nil
}

// NotifyPlanActivated tells the purchaser their plan went active: an entry in
// their notification log plus a best-effort email. The returned error covers
// the email only; callers surface it as a warning, never a rollback.
func (s *notificationService) NotifyPlanActivated(item *models.PurchaseItem, start, end time.Time) error {
	s.center.ForUser(item.Purchase.PurchaserID).Add(notify.Notification{
		Type:  notify.TypeSuccess,
		Title: "Your plan is active",
		Message: fmt.Sprintf("Your %s plan '%s' is active from %s to %s",
			item.ProductType, item.ProductName,
			start.Format("2 Jan 2006"), end.Format("2 Jan 2006")),
		Link:     "/plans/" + item.ID,
		LinkText: "View plan",
	})

	if item.Purchase.PurchaserEmail == "" {
		return nil
	}
	if err := s.mailer.SendPlanActivated(
		item.Purchase.PurchaserEmail,
		item.Purchase.PurchaserName,
		item.ProductName,
		start, end,
	); err != nil {
		return fmt.Errorf("plan-activated email: %w", err)
	}
	return nil
}
