package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/app/services"
	"github.com/glon/summercourse/internal/middleware"
)

// VoteController handles satisfaction voting endpoints
type VoteController struct {
	voteService *services.VoteService
}

// NewVoteController creates a new VoteController
func NewVoteController(voteService *services.VoteService) *VoteController {
	return &VoteController{
		voteService: voteService,
	}
}

// GetCategories returns the voting categories with the caller's vote state
// @Summary Get voting categories
// @Description Returns the categories, their options and the caller's votes
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.VoteCategoriesResponse} "Voting categories"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /votes [get]
func (c *VoteController) GetCategories(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	categories, err := c.voteService.GetCategories(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(categories))
}

// Cast registers a vote
// @Summary Cast a vote
// @Description Registers a vote in a category. One vote per category per student
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VoteRequest true "Vote data"
// @Success 201 {object} dto.APIResponse{data=dto.VoteResponse} "Vote registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid category or option"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Already voted in this category"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /votes [post]
func (c *VoteController) Cast(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	vote, err := c.voteService.Cast(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse(vote))
}

// Change updates an existing vote
// @Summary Change a vote
// @Description Updates the caller's existing vote in a category
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VoteRequest true "Vote data"
// @Success 200 {object} dto.APIResponse{data=dto.VoteResponse} "Vote updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid category or option"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No vote in this category"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /votes [put]
func (c *VoteController) Change(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	vote, err := c.voteService.Change(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(vote))
}

// Statistics returns the voting analytics for administrators
// @Summary Voting statistics
// @Description Returns participation, distributions, recent votes, comments and trend
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.VoteStatisticsResponse} "Voting statistics"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/votes [get]
func (c *VoteController) Statistics(ctx *gin.Context) {
	stats, err := c.voteService.Statistics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(stats))
}

// Reset deletes every vote
// @Summary Delete all votes
// @Description Removes every vote and reports how many were deleted
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DeleteVotesResponse} "Votes deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/votes [delete]
func (c *VoteController) Reset(ctx *gin.Context) {
	deleted, err := c.voteService.Reset(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(dto.DeleteVotesResponse{Deleted: deleted}))
}
