package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
)

type ReportHandler struct {
	BaseHandler
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// DepartmentChart returns student counts grouped by department
// @Summary Department chart data
// @Tags charts
// @Produce json
// @Success 200 {array} services.ChartItem
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /charts/chart-data [get]
func (h *ReportHandler) DepartmentChart(c *gin.Context) {
	items, err := h.service.StudentsByDepartment(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// CourseChart returns student counts grouped by course
// @Summary Course chart data
// @Tags charts
// @Produce json
// @Success 200 {array} services.ChartItem
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /charts/courseChart [get]
func (h *ReportHandler) CourseChart(c *gin.Context) {
	items, err := h.service.StudentsByCourse(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// AgeChart returns student counts grouped by age
// @Summary Age chart data
// @Tags charts
// @Produce json
// @Success 200 {array} services.ChartItem
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /charts/ageChart [get]
func (h *ReportHandler) AgeChart(c *gin.Context) {
	items, err := h.service.StudentsByAge(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
