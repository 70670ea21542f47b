package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/app/services"
	"github.com/glon/summercourse/internal/middleware"
	"github.com/glon/summercourse/internal/pkg/helpers"
)

// ReportController handles administrative reporting endpoints
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// Generate builds a report of the requested type
// @Summary Generate a report
// @Description Builds an overview, courses, students or preselections report, optionally restricted to a date range
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param type query string true "Report type" Enums(overview, courses, students, preselections)
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Report"
// @Failure 400 {object} dto.ErrorResponse "Invalid report type or date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/reports [get]
func (c *ReportController) Generate(ctx *gin.Context) {
	reportType := ctx.DefaultQuery("type", services.ReportOverview)

	start, end, hasRange, err := helpers.ParseDateRange(ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Rango de fechas inválido").
			WithDetails("Dates must use the YYYY-MM-DD format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var report *dto.ReportResponse
	if hasRange {
		report, err = c.reportService.Generate(ctx, reportType, &start, &end)
	} else {
		report, err = c.reportService.Generate(ctx, reportType, nil, nil)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(report))
}

// DashboardStats returns the dashboard figures for any signed-in user
// @Summary Dashboard statistics
// @Description Returns totals, role distribution, recent activity and popular courses
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse} "Dashboard statistics"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats [get]
func (c *ReportController) DashboardStats(ctx *gin.Context) {
	stats, err := c.reportService.DashboardStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(stats))
}
