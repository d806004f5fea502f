package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"retail_backend/internal/config"
	"retail_backend/internal/models"
)

func newTestReportService() (*reportService, *fakeOperationRepo, *fakeShiftRepo, *fakeEmployeeRepo, *fakeLocationRepo) {
	ops := newFakeOperationRepo()
	shifts := newFakeShiftRepo()
	employees := newFakeEmployeeRepo()
	locations := newFakeLocationRepo()
	svc := &reportService{
		operationRepo: ops,
		shiftRepo:     shifts,
		employeeRepo:  employees,
		locationRepo:  locations,
		cfg:           config.BusinessConfig{MoneyDecimals: 2, PercentDecimals: 1},
	}
	return svc, ops, shifts, employees, locations
}

func seedOperation(ops *fakeOperationRepo, opType string, shiftID int64, revenue, cost float64) {
	op := models.Operation{
		Type:         opType,
		ShiftID:      shiftID,
		EmployeeID:   1,
		StoreID:      10,
		TotalRevenue: revenue,
		TotalCost:    cost,
		TotalProfit:  revenue - cost,
	}
	ops.CreateOperation(nil, &op)
}

func TestSummaryNetsReturnsAgainstSales(t *testing.T) {
	svc, ops, _, _, _ := newTestReportService()
	seedOperation(ops, models.OperationTypeSale, 1, 1000, 600)
	seedOperation(ops, models.OperationTypeReturn, 1, 100, 60)

	summary, err := svc.Summary(models.ReportFilters{})
	assert.NoError(t, err)
	assert.Equal(t, 900.0, summary.TotalRevenue)
	assert.Equal(t, 540.0, summary.TotalCost)
	assert.Equal(t, 360.0, summary.TotalProfit)
	assert.Equal(t, 40.0, summary.MarginPercent)
	assert.Equal(t, 1000.0, summary.TotalRevenueSales)
	assert.Equal(t, 100.0, summary.TotalRevenueReturns)
}

func TestSummaryZeroRevenueHasZeroMargin(t *testing.T) {
	svc, _, _, _, _ := newTestReportService()

	summary, err := svc.Summary(models.ReportFilters{})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0.0, summary.MarginPercent)
}

func TestSummaryMarginRounding(t *testing.T) {
	svc, ops, _, _, _ := newTestReportService()
	// 100/300 = 33.333...% rounds to one decimal.
	seedOperation(ops, models.OperationTypeSale, 1, 300, 200)

	summary, err := svc.Summary(models.ReportFilters{})
	assert.NoError(t, err)
	assert.Equal(t, 33.3, summary.MarginPercent)
}

func TestSummaryRejectsBadDates(t *testing.T) {
	svc, _, _, _, _ := newTestReportService()

	_, err := svc.Summary(models.ReportFilters{DateFrom: "03-02-2026"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.SalesReport(models.ReportFilters{DateTo: "yesterday"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShiftReportTotalsAndNames(t *testing.T) {
	svc, ops, shifts, employees, locations := newTestReportService()

	employees.Create(nil, &models.Employee{Login: "aibek", FullName: "Aibek S.", Role: models.RoleSeller})
	locations.CreateStore(nil, &models.Store{Name: "Central", IsActive: true})

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	shift := models.Shift{EmployeeID: 1, StoreID: 1, ShiftStart: start, Status: models.ShiftStatusOpen}
	shifts.Create(nil, &shift)

	seedOperation(ops, models.OperationTypeSale, shift.ID, 500, 300)
	seedOperation(ops, models.OperationTypeReturn, shift.ID, 50, 30)
	// A different shift's operation stays out of the report.
	seedOperation(ops, models.OperationTypeSale, 999, 777, 111)

	report, err := svc.ShiftReport(shift.ID)
	assert.NoError(t, err)
	assert.Equal(t, shift.ID, report.ShiftID)
	assert.Equal(t, "Aibek S.", report.SellerName)
	assert.Equal(t, "Central", report.StoreName)
	assert.Equal(t, 450.0, report.TotalRevenue)
	assert.Equal(t, 270.0, report.TotalCost)
	assert.Equal(t, 180.0, report.TotalProfit)
	assert.Len(t, report.Operations, 2)
}

func TestShiftReportUnknownShift(t *testing.T) {
	svc, _, _, _, _ := newTestReportService()

	_, err := svc.ShiftReport(42)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}
