package models

import "time"

// OperationTotals is one side (sales or returns) of an aggregation.
type OperationTotals struct {
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// SummaryReport nets returns against sales over a date range.
type SummaryReport struct {
	TotalRevenue        float64 `json:"total_revenue"`
	TotalCost           float64 `json:"total_cost"`
	TotalProfit         float64 `json:"total_profit"`
	MarginPercent       float64 `json:"margin_percent"`
	TotalRevenueSales   float64 `json:"total_revenue_sales"`
	TotalRevenueReturns float64 `json:"total_revenue_returns"`
}

// ShiftReport summarizes one shift: header data plus its ordered operations
// with returns netted against sales.
type ShiftReport struct {
	ShiftID      int64       `json:"shift_id"`
	SellerName   string      `json:"seller_name"`
	StoreName    string      `json:"store_name"`
	ShiftStart   time.Time   `json:"shift_start"`
	ShiftEnd     *time.Time  `json:"shift_end,omitempty"`
	TotalRevenue float64     `json:"total_revenue"`
	TotalCost    float64     `json:"total_cost"`
	TotalProfit  float64     `json:"total_profit"`
	Operations   []Operation `json:"operations"`
}

// ReportFilters bound a report query. Zero-value strings mean unbounded;
// dates are inclusive and formatted YYYY-MM-DD.
type ReportFilters struct {
	DateFrom string
	DateTo   string
}
