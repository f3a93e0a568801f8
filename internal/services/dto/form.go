package dto

type SubmitFormRequest struct {
	FormType string                 `json:"form_type" validate:"required,oneof=meal workout combo"`
	Answers  map[string]interface{} `json:"answers" validate:"required,min=1"`
}

// SubmitFormResult distinguishes full success from partial success: the
// response was saved but a downstream status update failed. User-entered data
// is never reported lost because of bookkeeping.
type SubmitFormResult struct {
	Success bool   `json:"success"`
	Warning string `json:"warning,omitempty"`
}
