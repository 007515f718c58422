package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/internal/workflow"
	"backend/pkg/apperror"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/dashboard", middleware.RequireAuth(), h.GetDashboard)
		api.GET("/audit-trail", middleware.RequireNonFaculty(), h.GetAuditTrail)
	}
}

// GetDashboard returns the actor's projections over the request set
// @Summary      Dashboard
// @Description  My requests, the queue waiting on the actor's office, and stat counters. acting_office switches the queue for Super Admins.
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        acting_office  query     string  false  "Super Admin override office"
// @Success      200            {object}  response.Response{data=service.DashboardResponse}
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, role := middleware.Actor(c)
	actor := workflow.ActingContext{
		RealRole:     role,
		ActingOffice: c.Query("acting_office"),
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, actor)
	if err != nil {
		status := apperror.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// GetAuditTrail returns the most recent approval entries across all requests
// @Summary      Audit trail
// @Description  Approver roles and Super Admins only; Faculty cannot read it.
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Max entries (default 50)"
// @Success      200    {object}  response.Response{data=[]service.ApprovalResponse}
// @Failure      403    {object}  response.Response
// @Router       /api/audit-trail [get]
func (h *DashboardHandler) GetAuditTrail(c *gin.Context) {
	// The service applies its own default when no limit is given.
	limit := 0
	if c.Query("limit") != "" {
		limit = pagination.Parse(c).Limit
	}

	entries, err := h.dashboardService.GetAuditTrail(c.Request.Context(), limit)
	if err != nil {
		status := apperror.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
