package dto

import (
	"fitplan_backend/internal/notify"
)

type NotificationListResponse struct {
	Notifications []notify.Notification `json:"notifications"`
	Total         int                   `json:"total"`
	UnreadCount   int                   `json:"unread_count"`
}
