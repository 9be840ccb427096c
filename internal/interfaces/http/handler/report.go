package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/orderdesk/backend/internal/application/report"
	"github.com/orderdesk/backend/internal/domain/ordering"
	"github.com/orderdesk/backend/internal/infrastructure/config"
	"github.com/orderdesk/backend/internal/infrastructure/export"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles order report API endpoints
type ReportHandler struct {
	BaseHandler
	service *reportapp.Service
	writer  *export.XLSXWriter
	cfg     config.ReportConfig
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.Service, writer *export.XLSXWriter, cfg config.ReportConfig, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{
		service: service,
		writer:  writer,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterRoutes registers report routes on the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/orders", middleware.RequirePermission("report:read"), h.GetOrderReport)
		reports.GET("/orders/export", middleware.RequirePermission("report:export"), h.ExportOrderReport)
	}
}

// OrderReportRequest defines the query parameters for the order report
type OrderReportRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1"`
}

// dateRange resolves the requested window. With no dates given the
// report covers the default trailing window.
func (h *ReportHandler) dateRange(req OrderReportRequest) (ordering.DateRange, error) {
	if req.StartDate == "" && req.EndDate == "" {
		return ordering.LastNDays(h.cfg.DefaultRangeDays, time.Now()), nil
	}

	var start, end *time.Time
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return ordering.DateRange{}, fmt.Errorf("invalid start_date: %w", err)
		}
		start = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return ordering.DateRange{}, fmt.Errorf("invalid end_date: %w", err)
		}
		end = &t
	}
	return ordering.NewDateRange(start, end), nil
}

// GetOrderReport returns the aggregated summary and one page of detail
// lines for the requested date range.
// GET /api/v1/reports/orders?start_date=2026-03-01&end_date=2026-03-31&page=1&page_size=10
func (h *ReportHandler) GetOrderReport(c *gin.Context) {
	var req OrderReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	dateRange, err := h.dateRange(req)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = h.cfg.PageSize
	}
	if pageSize > h.cfg.MaxPageSize {
		pageSize = h.cfg.MaxPageSize
	}

	result, err := h.service.GetOrderReport(c.Request.Context(), dateRange, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to build order report", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, result.Total, page, pageSize)
}

// ExportOrderReport streams the order report as a spreadsheet download.
// GET /api/v1/reports/orders/export?start_date=2026-03-01&end_date=2026-03-31&layout=grouped
func (h *ReportHandler) ExportOrderReport(c *gin.Context) {
	var req OrderReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	dateRange, err := h.dateRange(req)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	layout, err := reportapp.ParseLayout(c.Query("layout"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	sheet, err := h.service.ExportOrderReport(c.Request.Context(), dateRange, layout)
	if err != nil {
		h.logger.Error("Failed to build order report export", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	data, err := h.writer.Write(sheet)
	if err != nil {
		h.logger.Error("Failed to serialize order report workbook", zap.Error(err))
		h.InternalError(c, "Failed to generate spreadsheet")
		return
	}

	if userID, err := getUserID(c); err == nil {
		h.logger.Info("Order report exported",
			zap.String("user_id", userID.String()),
			zap.String("layout", string(layout)),
			zap.Int("bytes", len(data)),
		)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.cfg.ExportFilename))
	c.Data(200, xlsxContentType, data)
}
