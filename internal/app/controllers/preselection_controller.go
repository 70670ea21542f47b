package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/app/services"
	"github.com/glon/summercourse/internal/middleware"
	"github.com/glon/summercourse/internal/pkg/helpers"
)

// PreselectionController handles course preselection endpoints
type PreselectionController struct {
	preselectionService *services.PreselectionService
}

// NewPreselectionController creates a new PreselectionController
func NewPreselectionController(preselectionService *services.PreselectionService) *PreselectionController {
	return &PreselectionController{
		preselectionService: preselectionService,
	}
}

// GetStatus returns the catalog and the caller's current preselection
// @Summary Get preselection status
// @Description Returns the course catalog together with the caller's current preselection
// @Tags preselection
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PreselectionStatusResponse} "Preselection status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /preselection [get]
func (c *PreselectionController) GetStatus(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	status, err := c.preselectionService.GetStatus(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(status))
}

// Create registers the caller's preselection
// @Summary Register a preselection
// @Description Registers a preselection of exactly two distinct courses
// @Tags preselection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PreselectionRequest true "Course IDs"
// @Success 201 {object} dto.APIResponse{data=dto.SelectionResponse} "Preselection registered"
// @Failure 400 {object} dto.ErrorResponse "Wrong course count or unknown courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Preselection already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /preselection [post]
func (c *PreselectionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.PreselectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	selection, err := c.preselectionService.Create(ctx, userID, req.CourseIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse(selection))
}

// Update replaces the caller's existing preselection
// @Summary Update a preselection
// @Description Replaces the courses of the caller's existing preselection
// @Tags preselection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PreselectionRequest true "Course IDs"
// @Success 200 {object} dto.APIResponse{data=dto.SelectionResponse} "Preselection updated"
// @Failure 400 {object} dto.ErrorResponse "Wrong course count or unknown courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No preselection to update"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /preselection [put]
func (c *PreselectionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.PreselectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	selection, err := c.preselectionService.Update(ctx, userID, req.CourseIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(selection))
}

// ListAll returns registered preselections for administrators
// @Summary List preselections
// @Description Returns registered preselections with student and course details, paginated
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Search over student name, ID card and email"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData} "Preselections"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/preselections [get]
func (c *PreselectionController) ListAll(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	search := ctx.Query("search")

	entries, pagination, err := c.preselectionService.ListAll(ctx, search, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaginatedResponse(entries, pagination))
}

// Delete removes a preselection administratively
// @Summary Delete a preselection
// @Description Removes a preselection and its course links
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Preselection ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Preselection deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid preselection ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Preselection not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/preselections/{id} [delete]
func (c *PreselectionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.preselectionService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(dto.MessageResponse{Message: "Preselección eliminada"}))
}

// unauthenticated rejects requests whose identity was not set by JWTAuth
func unauthenticated(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Autenticación requerida")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
