package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitplan_backend/internal/models"
	"fitplan_backend/internal/notify"
	"fitplan_backend/pkg/apperrors"
)

type fakeMailer struct {
	sent    []string
	sendErr error
}

func (m *fakeMailer) SendPlanActivated(to, name, planName string, start, end time.Time) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, to)
	return nil
}

func newNotificationFixture(t *testing.T) (NotificationService, *fakeMailer) {
	t.Helper()
	mailer := &fakeMailer{}
	return NewNotificationService(notify.NewCenter(t.TempDir()), mailer), mailer
}

func TestNotificationService_ReadLifecycle(t *testing.T) {
	t.Parallel()

	svc, _ := newNotificationFixture(t)
	item := awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now())

	require.NoError(t, svc.PlanReady("maria", item))
	require.NoError(t, svc.PlanReady("maria", item))

	list, err := svc.GetUserNotifications("maria")
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 2, list.UnreadCount)

	require.NoError(t, svc.MarkAsRead("maria", list.Notifications[0].ID))
	count, err := svc.GetUnreadCount("maria")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkAllAsRead("maria"))
	count, err = svc.GetUnreadCount("maria")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Another user's log is untouched.
	other, err := svc.GetUserNotifications("ivan")
	require.NoError(t, err)
	assert.Zero(t, other.Total)
}

func TestNotificationService_UnknownIDIs404(t *testing.T) {
	t.Parallel()

	svc, _ := newNotificationFixture(t)

	err := svc.MarkAsRead("maria", "no-such-id")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	err = svc.DeleteNotification("maria", "no-such-id")
	require.Error(t, err)
}

func TestNotificationService_DeleteAndClear(t *testing.T) {
	t.Parallel()

	svc, _ := newNotificationFixture(t)
	item := awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now())

	require.NoError(t, svc.PlanReady("maria", item))
	require.NoError(t, svc.PlanReady("maria", item))

	list, err := svc.GetUserNotifications("maria")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteNotification("maria", list.Notifications[0].ID))

	list, err = svc.GetUserNotifications("maria")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	require.NoError(t, svc.ClearAll("maria"))
	list, err = svc.GetUserNotifications("maria")
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestNotifyPlanActivated_AddsEntryAndSendsEmail(t *testing.T) {
	t.Parallel()

	svc, mailer := newNotificationFixture(t)
	item := awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now())
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.NotifyPlanActivated(&item, start, start.AddDate(0, 1, 0)))

	list, err := svc.GetUserNotifications(item.Purchase.PurchaserID)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, notify.TypeSuccess, list.Notifications[0].Type)
	assert.Contains(t, list.Notifications[0].Message, "Keto Meal Plan")
	assert.Equal(t, []string{item.Purchase.PurchaserEmail}, mailer.sent)
}

func TestNotifyPlanActivated_EmailFailureStillRecordsEntry(t *testing.T) {
	t.Parallel()

	svc, mailer := newNotificationFixture(t)
	mailer.sendErr = errors.New("smtp refused")
	item := awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now())
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	err := svc.NotifyPlanActivated(&item, start, start.AddDate(0, 1, 0))
	require.Error(t, err, "the email failure surfaces for the caller to warn about")

	// The in-app entry landed before the email attempt.
	list, listErr := svc.GetUserNotifications(item.Purchase.PurchaserID)
	require.NoError(t, listErr)
	assert.Equal(t, 1, list.Total)
}

func TestNotifyPlanActivated_NoEmailAddressSkipsSend(t *testing.T) {
	t.Parallel()

	svc, mailer := newNotificationFixture(t)
	item := awaitingItem("a", "Keto Meal Plan", models.ProductTypeMeal, "Maria", time.Now())
	item.Purchase.PurchaserEmail = ""
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.NotifyPlanActivated(&item, start, start.AddDate(0, 1, 0)))
	assert.Empty(t, mailer.sent)
}
