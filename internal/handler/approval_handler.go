package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/internal/workflow"
	"backend/pkg/apperror"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	verdictService service.VerdictService
}

func NewApprovalHandler(verdictService service.VerdictService) *ApprovalHandler {
	return &ApprovalHandler{verdictService: verdictService}
}

func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.PUT("/requests/:id/approve", h.Approve)
		api.PUT("/requests/:id/return", h.Return)
		api.PUT("/requests/:id/reject", h.Reject)
	}
}

// submit builds the handler for one verdict. All three endpoints share the
// same body and differ only in the verdict they carry.
func (h *ApprovalHandler) submit(verdict string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dto service.SubmitVerdictDTO
		if err := c.ShouldBindJSON(&dto); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
			return
		}

		userID, role := middleware.Actor(c)
		actor := workflow.ActingContext{
			RealRole:     role,
			ActingOffice: dto.ActingOffice,
		}

		request, err := h.verdictService.SubmitVerdict(c.Request.Context(), c.Param("id"), userID, actor, verdict, dto)
		if err != nil {
			status := apperror.HTTPStatus(err)
			c.JSON(status, response.Error(status, err.Error()))
			return
		}

		c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
	}
}

// Approve advances the request past the actor's office
// @Summary      Approve a request
// @Description  Body carries expected_office for the optimistic check, acting_office for the Super Admin override, and optional remarks.
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.SubmitVerdictDTO  true  "Verdict Payload"
// @Success      200      {object}  response.Response{data=service.TravelRequestResponse}
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/approve [put]
func (h *ApprovalHandler) Approve(c *gin.Context) { h.submit(workflow.VerdictApproved)(c) }

// Return sends the request back to the requester for revision
// @Summary      Return a request
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.SubmitVerdictDTO  true  "Verdict Payload"
// @Success      200      {object}  response.Response{data=service.TravelRequestResponse}
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/return [put]
func (h *ApprovalHandler) Return(c *gin.Context) { h.submit(workflow.VerdictReturned)(c) }

// Reject terminates the request
// @Summary      Reject a request
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.SubmitVerdictDTO  true  "Verdict Payload"
// @Success      200      {object}  response.Response{data=service.TravelRequestResponse}
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/reject [put]
func (h *ApprovalHandler) Reject(c *gin.Context) { h.submit(workflow.VerdictRejected)(c) }
