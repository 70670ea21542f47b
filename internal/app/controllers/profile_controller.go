package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/app/services"
	"github.com/glon/summercourse/internal/middleware"
	"github.com/glon/summercourse/internal/pkg/helpers"
)

// ProfileController handles profile endpoints
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// GetOwnProfile returns the caller's student profile
// @Summary Get own profile
// @Description Returns the authenticated student's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/profile [get]
func (c *ProfileController) GetOwnProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	profile, err := c.profileService.GetOwnProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(profile))
}

// UpdateOwnProfile applies a partial update to the caller's profile
// @Summary Update own profile
// @Description Applies a partial update to the authenticated student's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/profile [put]
func (c *ProfileController) UpdateOwnProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.profileService.UpdateOwnProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(profile))
}

// ListProfiles returns a page of user accounts for administrators
// @Summary List user profiles
// @Description Returns a paginated user listing, filterable by role and free-text search
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param role query string false "Filter by role" Enums(STUDENT, PROFESSOR, ADMIN)
// @Param search query string false "Search over email and name"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData} "Profiles"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/profiles [get]
func (c *ProfileController) ListProfiles(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	role := ctx.Query("role")
	search := ctx.Query("search")

	entries, pagination, err := c.profileService.ListProfiles(ctx, role, search, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaginatedResponse(entries, pagination))
}

// CreateUser creates a user account administratively
// @Summary Create a user
// @Description Creates a user with any role and an optional student record
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminCreateUserRequest true "User data"
// @Success 201 {object} dto.APIResponse{data=dto.AdminProfileEntry} "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email or ID card already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/profiles [post]
func (c *ProfileController) CreateUser(ctx *gin.Context) {
	var req dto.AdminCreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	entry, err := c.profileService.CreateUser(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse(entry))
}
