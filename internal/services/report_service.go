package services

import (
	"errors"
	"fmt"
	"time"

	"retail_backend/internal/config"
	"retail_backend/internal/models"
	"retail_backend/internal/repositories"
	"retail_backend/pkg/utils"
)

// ReportService aggregates operations. Returns are first-class negative
// operations: every net figure is sale totals minus return totals.
type ReportService interface {
	Summary(filters models.ReportFilters) (*models.SummaryReport, error)
	SalesReport(filters models.ReportFilters) ([]models.Operation, error)
	ShiftReport(shiftID int64) (*models.ShiftReport, error)
}

type reportService struct {
	operationRepo repositories.OperationRepository
	shiftRepo     repositories.ShiftRepository
	employeeRepo  repositories.EmployeeRepository
	locationRepo  repositories.LocationRepository
	cfg           config.BusinessConfig
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	or repositories.OperationRepository,
	sr repositories.ShiftRepository,
	er repositories.EmployeeRepository,
	lr repositories.LocationRepository,
	cfg config.BusinessConfig,
) ReportService {
	return &reportService{
		operationRepo: or,
		shiftRepo:     sr,
		employeeRepo:  er,
		locationRepo:  lr,
		cfg:           cfg,
	}
}

// validateFilters checks the optional date bounds are YYYY-MM-DD.
func validateFilters(filters models.ReportFilters) error {
	for _, d := range []string{filters.DateFrom, filters.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, d)
		}
	}
	return nil
}

func (s *reportService) Summary(filters models.ReportFilters) (*models.SummaryReport, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}
	sales, err := s.operationRepo.SumByTypeAndDateRange(models.OperationTypeSale, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}
	returns, err := s.operationRepo.SumByTypeAndDateRange(models.OperationTypeReturn, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to sum returns: %w", err)
	}

	revenue := sales.Revenue - returns.Revenue
	cost := sales.Cost - returns.Cost
	profit := sales.Profit - returns.Profit

	var margin float64
	if revenue != 0 {
		margin = profit / revenue * 100
	}

	return &models.SummaryReport{
		TotalRevenue:        utils.RoundTo(revenue, s.cfg.MoneyDecimals),
		TotalCost:           utils.RoundTo(cost, s.cfg.MoneyDecimals),
		TotalProfit:         utils.RoundTo(profit, s.cfg.MoneyDecimals),
		MarginPercent:       utils.RoundTo(margin, s.cfg.PercentDecimals),
		TotalRevenueSales:   utils.RoundTo(sales.Revenue, s.cfg.MoneyDecimals),
		TotalRevenueReturns: utils.RoundTo(returns.Revenue, s.cfg.MoneyDecimals),
	}, nil
}

func (s *reportService) SalesReport(filters models.ReportFilters) ([]models.Operation, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}
	ops, err := s.operationRepo.ListByDateRange(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	for i := range ops {
		ops[i].TotalRevenue = utils.RoundTo(ops[i].TotalRevenue, s.cfg.MoneyDecimals)
		ops[i].TotalCost = utils.RoundTo(ops[i].TotalCost, s.cfg.MoneyDecimals)
		ops[i].TotalProfit = utils.RoundTo(ops[i].TotalProfit, s.cfg.MoneyDecimals)
	}
	return ops, nil
}

func (s *reportService) ShiftReport(shiftID int64) (*models.ShiftReport, error) {
	shift, err := s.shiftRepo.GetByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to fetch shift: %w", err)
	}

	report := &models.ShiftReport{
		ShiftID:    shift.ID,
		ShiftStart: shift.ShiftStart,
		ShiftEnd:   shift.ShiftEnd,
	}

	if employee, err := s.employeeRepo.GetByID(shift.EmployeeID); err == nil {
		report.SellerName = employee.FullName
	}
	if store, err := s.locationRepo.GetStoreByID(shift.StoreID); err == nil {
		report.StoreName = store.Name
	}

	sales, err := s.operationRepo.SumByShiftAndType(shiftID, models.OperationTypeSale)
	if err != nil {
		return nil, fmt.Errorf("failed to sum shift sales: %w", err)
	}
	returns, err := s.operationRepo.SumByShiftAndType(shiftID, models.OperationTypeReturn)
	if err != nil {
		return nil, fmt.Errorf("failed to sum shift returns: %w", err)
	}
	report.TotalRevenue = utils.RoundTo(sales.Revenue-returns.Revenue, s.cfg.MoneyDecimals)
	report.TotalCost = utils.RoundTo(sales.Cost-returns.Cost, s.cfg.MoneyDecimals)
	report.TotalProfit = utils.RoundTo(sales.Profit-returns.Profit, s.cfg.MoneyDecimals)

	ops, err := s.operationRepo.ListByShift(shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift operations: %w", err)
	}
	for i := range ops {
		ops[i].TotalRevenue = utils.RoundTo(ops[i].TotalRevenue, s.cfg.MoneyDecimals)
		ops[i].TotalCost = utils.RoundTo(ops[i].TotalCost, s.cfg.MoneyDecimals)
		ops[i].TotalProfit = utils.RoundTo(ops[i].TotalProfit, s.cfg.MoneyDecimals)
	}
	report.Operations = ops

	return report, nil
}
