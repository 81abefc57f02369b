package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

const (
	maxImportFileSize = 10 << 20 // 10 MiB
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ImportExportHandler struct {
	BaseHandler
	service services.ImportExportService
}

func NewImportExportHandler(service services.ImportExportService, logger utils.Logger) *ImportExportHandler {
	return &ImportExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// PreviewImport validates an uploaded spreadsheet without persisting
// @Summary Preview a student import
// @Description Parse an XLSX upload and return every row annotated with its validation errors
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "XLSX file"
// @Success 200 {object} services.ImportPreviewResponse
// @Failure 400 {object} ErrorResponse "Missing, oversized or empty file"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/import/preview [post]
func (h *ImportExportHandler) PreviewImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "File upload is required",
			Details: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxImportFileSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "File exceeds the 10MB upload limit",
		})
		return
	}

	h.LogRequest(c, "Previewing import", "filename", fileHeader.Filename, "size", fileHeader.Size)

	file, err := fileHeader.Open()
	if err != nil {
		h.LogError(c, err, "Failed to open uploaded file")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.LogError(c, err, "Failed to read uploaded file")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to read uploaded file",
		})
		return
	}

	preview, err := h.service.Preview(c.Request.Context(), data)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// ImportStudents persists previously previewed rows
// @Summary Import students
// @Description Bulk insert rows the caller validated via preview; duplicates and per-row failures are reported, not fatal
// @Tags students
// @Accept json
// @Produce json
// @Param request body validator.ImportStudentsRequest true "Rows to import"
// @Success 200 {object} services.ImportSummary
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/import [post]
func (h *ImportExportHandler) ImportStudents(c *gin.Context) {
	var req validator.ImportStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if len(req.Students) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "No rows to import",
		})
		return
	}

	h.LogRequest(c, "Importing students", "rows", len(req.Students))

	summary, err := h.service.Import(c.Request.Context(), req.Students)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportStudents renders matching students as an XLSX download
// @Summary Export students
// @Description Download matching students as an XLSX file; filters AND-combine, "all" means no filter
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param search query string false "Free-text search"
// @Param status query string false "Status filter"
// @Param course query string false "Course filter"
// @Param department query string false "Department filter"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse "No matching records"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/export [get]
func (h *ImportExportHandler) ExportStudents(c *gin.Context) {
	filters := services.ExportFilters{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Course:     c.Query("course"),
		Department: c.Query("department"),
	}

	h.LogRequest(c, "Exporting students",
		"status", filters.Status, "course", filters.Course, "department", filters.Department)

	result, err := h.service.Export(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, xlsxContentType, result.Data)
}
