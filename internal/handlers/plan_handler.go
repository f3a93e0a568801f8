package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitplan_backend/internal/middleware"
	"fitplan_backend/internal/models"
	"fitplan_backend/internal/services"
	"fitplan_backend/internal/services/dto"
)

// PlanHandler is the administrator surface: the pending-item view, the
// activation operation and the activation history feed.
type PlanHandler struct {
	*BaseHandler
	activationService services.ActivationService
	planQueryService  services.PlanQueryService
}

func NewPlanHandler(
	base *BaseHandler,
	activationService services.ActivationService,
	planQueryService services.PlanQueryService,
) *PlanHandler {
	return &PlanHandler{
		BaseHandler:       base,
		activationService: activationService,
		planQueryService:  planQueryService,
	}
}

func (h *PlanHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/plans")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPendingItems)
		admin.GET("/stats", h.GetPendingStats)
		admin.GET("/history", h.GetActivationHistory)
		admin.POST("/activate", h.Activate)
		admin.PATCH("/items/:itemId/status", h.OverrideStatus)
	}
}

func (h *PlanHandler) ListPendingItems(c *gin.Context) {
	var criteria dto.PendingItemsCriteria
	if !h.BindAndValidateQuery(c, &criteria) {
		return
	}

	page, err := h.planQueryService.ListPendingItems(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *PlanHandler) GetPendingStats(c *gin.Context) {
	stats, err := h.planQueryService.GetPendingStats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *PlanHandler) GetActivationHistory(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 20)

	history, err := h.planQueryService.GetActivationHistory(limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *PlanHandler) Activate(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ActivateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.activationService.Activate(&req, adminID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PlanHandler) OverrideStatus(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	itemID := c.Param("itemId")

	var req dto.OverrideStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.activationService.OverridePlanStatus(itemID, req.PlanStatus, adminID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan status updated"})
}
