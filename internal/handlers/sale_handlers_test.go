package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"retail_backend/internal/models"
	"retail_backend/internal/services"
)

// stubSaleService returns canned results per method.
type stubSaleService struct {
	saleResult   *services.OperationResult
	saleErr      error
	returnResult *services.OperationResult
	returnErr    error
}

func (s *stubSaleService) CreateSale(int64, int64, services.CreateSaleRequest) (*services.OperationResult, error) {
	return s.saleResult, s.saleErr
}

func (s *stubSaleService) CreateReturn(int64, int64, services.CreateReturnRequest) (*services.OperationResult, error) {
	return s.returnResult, s.returnErr
}

func (s *stubSaleService) ListOpenSales(int64, string) ([]models.Operation, error) {
	return nil, nil
}

func (s *stubSaleService) SaleLines(int64, int64) ([]models.SaleLineStatus, error) {
	return nil, nil
}

func newSaleRouter(svc services.SaleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("employeeID", int64(1))
		c.Set("storeID", int64(10))
	})
	handler := NewSaleHandler(svc)
	engine.POST("/sales", handler.CreateSale)
	engine.POST("/returns", handler.CreateReturn)
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

const saleBody = `{"items":[{"product_id":7,"quantity":2}]}`
const returnBody = `{"original_operation_id":1,"items":[{"product_id":7,"quantity":1}]}`

func TestCreateSaleHandlerSuccess(t *testing.T) {
	engine := newSaleRouter(&stubSaleService{
		saleResult: &services.OperationResult{OperationID: 42, TotalRevenue: 300},
	})

	recorder := postJSON(engine, "/sales", saleBody)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"check_id":42`)
	assert.Contains(t, recorder.Body.String(), `"total":300`)
}

func TestCreateSaleHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		want     int
		wantCode string
	}{
		{"no shift", services.ErrShiftRequired, http.StatusBadRequest, "SHIFT_REQUIRED"},
		{"expired shift", services.ErrShiftExpired, http.StatusBadRequest, "SHIFT_EXPIRED"},
		{"validation", services.ErrValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"insufficient stock", &services.InsufficientStockError{ProductID: 7, Requested: 3, Available: 2}, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"storage failure", assert.AnError, http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newSaleRouter(&stubSaleService{saleErr: tc.err})
			recorder := postJSON(engine, "/sales", saleBody)
			assert.Equal(t, tc.want, recorder.Code)
			if tc.wantCode != "" {
				assert.Contains(t, recorder.Body.String(), tc.wantCode)
			}
		})
	}
}

func TestCreateSaleHandlerRejectsBadPayload(t *testing.T) {
	engine := newSaleRouter(&stubSaleService{})
	recorder := postJSON(engine, "/sales", `{"items":`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateReturnHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown sale", services.ErrOperationNotFound, http.StatusNotFound},
		{"over limit", services.ErrReturnExceedsRemaining, http.StatusBadRequest},
		{"no shift", services.ErrShiftRequired, http.StatusBadRequest},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newSaleRouter(&stubSaleService{returnErr: tc.err})
			recorder := postJSON(engine, "/returns", returnBody)
			assert.Equal(t, tc.want, recorder.Code)
		})
	}
}

func TestCreateReturnHandlerSuccess(t *testing.T) {
	engine := newSaleRouter(&stubSaleService{
		returnResult: &services.OperationResult{OperationID: 43, TotalRevenue: 100},
	})

	recorder := postJSON(engine, "/returns", returnBody)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"return_id":43`)
}
