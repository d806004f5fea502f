package models

import "time"

// Shift statuses.
const (
	ShiftStatusOpen   = "open"
	ShiftStatusClosed = "closed"
)

// Shift is a bounded work session for one seller at one store. At most one
// open shift exists per (employee, store) pair at any time.
type Shift struct {
	ID         int64      `json:"id" db:"id_shift"`
	EmployeeID int64      `json:"employee_id" db:"employee_id"`
	StoreID    int64      `json:"store_id" db:"store_id"`
	ShiftStart time.Time  `json:"shift_start" db:"shift_start"`
	ShiftEnd   *time.Time `json:"shift_end,omitempty" db:"shift_end"` // nil while open
	Status     string     `json:"status" db:"status"`
}

// Elapsed returns the whole seconds since shift start at the given instant.
func (s *Shift) Elapsed(now time.Time) int64 {
	return int64(now.Sub(s.ShiftStart).Seconds())
}
