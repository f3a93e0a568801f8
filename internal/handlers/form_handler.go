package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitplan_backend/internal/middleware"
	"fitplan_backend/internal/services"
	"fitplan_backend/internal/services/dto"
)

type FormHandler struct {
	*BaseHandler
	formService services.FormService
}

func NewFormHandler(base *BaseHandler, formService services.FormService) *FormHandler {
	return &FormHandler{
		BaseHandler: base,
		formService: formService,
	}
}

func (h *FormHandler) RegisterRoutes(r *gin.RouterGroup) {
	forms := r.Group("/forms")
	forms.Use(middleware.AuthMiddleware())
	{
		forms.POST("/:itemId", h.SubmitForm)
		forms.PUT("/:itemId/draft", h.SaveDraft)
	}
}

func (h *FormHandler) SubmitForm(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	itemID := c.Param("itemId")

	var req dto.SubmitFormRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.formService.SubmitForm(itemID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *FormHandler) SaveDraft(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	itemID := c.Param("itemId")

	var req dto.SubmitFormRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.formService.SaveDraft(itemID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
