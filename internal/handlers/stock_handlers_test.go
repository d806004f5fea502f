package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"retail_backend/internal/models"
	"retail_backend/internal/services"
)

type stubStockService struct {
	receiveErr    error
	distributeErr error
}

func (s *stubStockService) Receive(services.ReceiveStockRequest) error { return s.receiveErr }

func (s *stubStockService) Distribute(services.DistributeRequest) error { return s.distributeErr }

func (s *stubStockService) StoreStock(int64) ([]models.StockEntry, error) { return nil, nil }

func (s *stubStockService) WarehouseStock(int64) ([]models.StockEntry, error) { return nil, nil }

func newStockRouter(svc services.StockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewStockHandler(svc)
	engine.POST("/receipts", handler.ReceiveStock)
	engine.POST("/distributions", handler.DistributeStock)
	return engine
}

const distributeBody = `{"from_warehouse_id":1,"to_store_id":10,"product_id":7,"quantity":5}`

func TestDistributeStockHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		want     int
		wantCode string
	}{
		{"insufficient stock", &services.InsufficientStockError{ProductID: 7, Requested: 5, Available: 3}, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"validation", services.ErrValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"storage failure", assert.AnError, http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newStockRouter(&stubStockService{distributeErr: tc.err})
			recorder := postJSON(engine, "/distributions", distributeBody)
			assert.Equal(t, tc.want, recorder.Code)
			if tc.wantCode != "" {
				assert.Contains(t, recorder.Body.String(), tc.wantCode)
			}
		})
	}
}

func TestReceiveStockHandlerSuccess(t *testing.T) {
	engine := newStockRouter(&stubStockService{})
	recorder := postJSON(engine, "/receipts", `{"store_id":10,"product_id":7,"quantity":5}`)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ok":true`)
}
