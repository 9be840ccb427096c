package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/orderdesk/backend/internal/application/report"
	"github.com/orderdesk/backend/internal/domain/ordering"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/auth"
	"github.com/orderdesk/backend/internal/infrastructure/config"
	"github.com/orderdesk/backend/internal/infrastructure/export"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) FindByDateRange(ctx context.Context, dateRange ordering.DateRange) ([]ordering.Order, error) {
	args := m.Called(ctx, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *mockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

var _ ordering.OrderRepository = (*mockOrderRepository)(nil)

// reportOrder builds a fully preloaded order the way the repository
// returns them
func reportOrder(t *testing.T, orderNo, customer, state, date string, products ...string) ordering.Order {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	order, err := ordering.NewOrder(orderNo, uuid.New(), day)
	require.NoError(t, err)
	order.Customer = ordering.Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       customer,
		Email:      customer + "@example.com",
		State:      state,
	}

	for _, name := range products {
		price := decimal.RequireFromString("10.00")
		require.NoError(t, order.AddItem(uuid.New(), 1, price))
		order.Items[len(order.Items)-1].Product = ordering.Product{
			BaseEntity: shared.NewBaseEntity(),
			Name:       name,
			Price:      price,
		}
	}
	return *order
}

func newReportRouter(repo ordering.OrderRepository, permissions ...string) *gin.Engine {
	cfg := config.ReportConfig{
		DefaultRangeDays: 30,
		PageSize:         10,
		MaxPageSize:      100,
		ExportFilename:   "order_report.xlsx",
	}
	h := NewReportHandler(reportapp.NewService(repo, nil), export.NewXLSXWriter(), cfg, nil)

	if permissions == nil {
		permissions = []string{"report:read", "report:export"}
	}
	claims := &auth.Claims{
		UserID:      uuid.New().String(),
		Username:    "tester",
		Permissions: permissions,
	}

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Next()
	})
	h.RegisterRoutes(api)
	return router
}

func doReportGet(router *gin.Engine, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReportHandler_GetOrderReport(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("FindByDateRange", mock.Anything, mock.Anything).Return([]ordering.Order{
		reportOrder(t, "ORD-1001", "Aina", "Selangor", "2026-03-01", "Laptop"),
		reportOrder(t, "ORD-1002", "Ben", "", "2026-03-02", "Mouse"),
	}, nil)

	router := newReportRouter(repo)
	rec := doReportGet(router, "/api/v1/reports/orders?start_date=2026-03-01&end_date=2026-03-31")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Summary struct {
				TotalOrders     int    `json:"total_orders"`
				TotalRevenue    string `json:"total_revenue"`
				TopProductNames string `json:"top_product_names"`
			} `json:"summary"`
			Items []map[string]interface{} `json:"items"`
		} `json:"data"`
		Meta struct {
			Total    int64 `json:"total"`
			Page     int   `json:"page"`
			PageSize int   `json:"page_size"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Data.Summary.TotalOrders)
	assert.Equal(t, "RM 20.00", body.Data.Summary.TotalRevenue)
	assert.Len(t, body.Data.Items, 2)
	assert.Equal(t, int64(2), body.Meta.Total)
	assert.Equal(t, 1, body.Meta.Page)
	assert.Equal(t, 10, body.Meta.PageSize)
}

func TestReportHandler_GetOrderReport_InvalidDate(t *testing.T) {
	repo := new(mockOrderRepository)
	router := newReportRouter(repo)

	rec := doReportGet(router, "/api/v1/reports/orders?start_date=03-01-2026")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_BAD_REQUEST")
	repo.AssertNotCalled(t, "FindByDateRange")
}

func TestReportHandler_GetOrderReport_DefaultRange(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("FindByDateRange", mock.Anything, mock.MatchedBy(func(r ordering.DateRange) bool {
		return r.Start != nil && r.End != nil
	})).Return([]ordering.Order{}, nil)

	router := newReportRouter(repo)
	rec := doReportGet(router, "/api/v1/reports/orders")

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestReportHandler_GetOrderReport_PageSizeClamped(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("FindByDateRange", mock.Anything, mock.Anything).Return([]ordering.Order{}, nil)

	router := newReportRouter(repo)
	rec := doReportGet(router, "/api/v1/reports/orders?page_size=5000")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Meta struct {
			PageSize int `json:"page_size"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 100, body.Meta.PageSize)
}

func TestReportHandler_GetOrderReport_RepositoryError(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("FindByDateRange", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	router := newReportRouter(repo)
	rec := doReportGet(router, "/api/v1/reports/orders")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_INTERNAL")
}

func TestReportHandler_ExportOrderReport(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("FindByDateRange", mock.Anything, mock.Anything).Return([]ordering.Order{
		reportOrder(t, "ORD-1001", "Aina", "Selangor", "2026-03-01", "Laptop", "Mouse"),
	}, nil)

	router := newReportRouter(repo)
	rec := doReportGet(router, "/api/v1/reports/orders/export?start_date=2026-03-01&end_date=2026-03-31")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="order_report.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	a1, err := f.GetCellValue(reportapp.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "A. Summary Section", a1)

	b4, err := f.GetCellValue(reportapp.SheetName, "B4")
	require.NoError(t, err)
	assert.Equal(t, "1", b4)
}

func TestReportHandler_ExportOrderReport_LayoutVariants(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("FindByDateRange", mock.Anything, mock.Anything).Return([]ordering.Order{
		reportOrder(t, "ORD-1001", "Aina", "Selangor", "2026-03-01", "Laptop"),
	}, nil)

	router := newReportRouter(repo)

	for _, layout := range []string{"", "grouped", "merged", "flat"} {
		rec := doReportGet(router, "/api/v1/reports/orders/export?layout="+layout)
		assert.Equal(t, http.StatusOK, rec.Code, "layout %q", layout)
	}
}

func TestReportHandler_ExportOrderReport_InvalidLayout(t *testing.T) {
	repo := new(mockOrderRepository)
	router := newReportRouter(repo)

	rec := doReportGet(router, "/api/v1/reports/orders/export?layout=sideways")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_INVALID_INPUT")
	repo.AssertNotCalled(t, "FindByDateRange")
}

func TestReportHandler_GetOrderReport_MissingPermission(t *testing.T) {
	repo := new(mockOrderRepository)
	router := newReportRouter(repo, "inventory:read")

	rec := doReportGet(router, "/api/v1/reports/orders")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_FORBIDDEN")
	repo.AssertNotCalled(t, "FindByDateRange")
}

func TestReportHandler_ExportOrderReport_RepositoryError(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("FindByDateRange", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	router := newReportRouter(repo)
	rec := doReportGet(router, "/api/v1/reports/orders/export")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
