package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/apperror"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.POST("/requests", h.CreateRequest)
		api.GET("/requests", h.ListRequests)
		api.GET("/requests/:id", h.GetRequest)
		api.GET("/documents/mine", h.ListMyFiles)
	}
}

// CreateRequest submits a new travel request with optional attachments
// @Summary      Create a travel request
// @Description  Multipart form: request fields plus optional attachment files. Attachment failures are reported per file and do not abort the request.
// @Tags         requests
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        title            formData  string  true   "Title of activity"
// @Param        destination      formData  string  true   "Destination"
// @Param        purpose          formData  string  true   "Purpose / justification"
// @Param        start_date       formData  string  true   "Start date (YYYY-MM-DD)"
// @Param        end_date         formData  string  true   "End date (YYYY-MM-DD)"
// @Param        type             formData  string  true   "Academic, Research, or Administrative"
// @Param        budget_estimate  formData  string  true   "Budget estimate in PHP"
// @Param        attachments      formData  file    false  "Attachments (pdf, doc, docx)"
// @Success      201  {object}  response.Response{data=object}
// @Failure      400  {object}  response.Response
// @Router       /api/requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var dto service.CreateTravelRequestDTO
	if err := c.ShouldBind(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	var files []service.AttachmentUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["attachments"] {
			f, openErr := fh.Open()
			if openErr != nil {
				logrus.WithError(openErr).WithField("file", fh.Filename).Warn("failed to open uploaded file")
				continue
			}
			defer f.Close()
			files = append(files, service.AttachmentUpload{Name: fh.Filename, Content: f})
		}
	}

	userID, _ := middleware.Actor(c)
	request, attachments, err := h.requestService.CreateRequest(c.Request.Context(), userID, dto, files)
	if err != nil {
		status := apperror.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{
		"request":     request,
		"attachments": attachments,
	}))
}

// ListRequests returns a page of travel requests, newest first
// @Summary      List travel requests
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 20, max 100)"
// @Success      200  {object}  response.Response{data=[]service.TravelRequestResponse}
// @Router       /api/requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	p := pagination.Parse(c)
	requests, err := h.requestService.ListRequests(c.Request.Context(), p.Limit, p.Offset)
	if err != nil {
		status := apperror.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// GetRequest returns one request with its documents and approval history
// @Summary      Get a travel request
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.TravelRequestDetailResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	detail, err := h.requestService.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := apperror.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// ListMyFiles returns every document the actor uploaded across their requests
// @Summary      My files
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.DocumentResponse}
// @Router       /api/documents/mine [get]
func (h *RequestHandler) ListMyFiles(c *gin.Context) {
	userID, _ := middleware.Actor(c)

	docs, err := h.requestService.ListMyFiles(c.Request.Context(), userID)
	if err != nil {
		status := apperror.HTTPStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, docs))
}
