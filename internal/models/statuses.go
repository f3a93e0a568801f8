package models

type UserRole string
type ProductType string
type FormStatus string
type PlanStatus string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"

	ProductTypeMeal    ProductType = "meal"
	ProductTypeWorkout ProductType = "workout"
	ProductTypeCombo   ProductType = "combo"

	FormStatusNotStarted FormStatus = "not_started"
	FormStatusPending    FormStatus = "pending"
	FormStatusInProgress FormStatus = "in_progress"
	FormStatusCompleted  FormStatus = "completed"

	PlanStatusAwaiting PlanStatus = "awaiting"
	PlanStatusReady    PlanStatus = "ready"
	PlanStatusActive   PlanStatus = "active"
)

// planStatusRank orders the lifecycle awaiting -> ready -> active.
var planStatusRank = map[PlanStatus]int{
	PlanStatusAwaiting: 0,
	PlanStatusReady:    1,
	PlanStatusActive:   2,
}

// IsValid reports whether s is one of the known plan statuses.
func (s PlanStatus) IsValid() bool {
	_, ok := planStatusRank[s]
	return ok
}

// CanAdvanceTo reports whether moving from s to next goes forward along the
// lifecycle. Manual admin overrides bypass this check on purpose.
func (s PlanStatus) CanAdvanceTo(next PlanStatus) bool {
	from, ok := planStatusRank[s]
	if !ok {
		return false
	}
	to, ok := planStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeMeal, ProductTypeWorkout, ProductTypeCombo:
		return true
	}
	return false
}
