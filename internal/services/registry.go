package services

// ServiceContainer bundles every service for wiring in internal/app.
type ServiceContainer struct {
	ActivationService   ActivationService
	PlanQueryService    PlanQueryService
	FormService         FormService
	NotificationService NotificationService
}
