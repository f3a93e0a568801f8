package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	PlanHandler         *PlanHandler
	FormHandler         *FormHandler
	NotificationHandler *NotificationHandler
}
