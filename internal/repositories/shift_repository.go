package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"retail_backend/internal/models"

	"github.com/lib/pq"
)

// ShiftRepository defines the interface for shift-related database operations.
type ShiftRepository interface {
	Create(executor SQLExecutor, shift *models.Shift) (int64, error)
	GetByID(id int64) (*models.Shift, error)
	// GetOpenShift returns the most recent open shift for the
	// (employee, store) pair, or ErrNotFound.
	GetOpenShift(executor SQLExecutor, employeeID, storeID int64) (*models.Shift, error)
	// Close stamps shift_end and flips status to closed. Returns ErrNotFound
	// when the shift does not exist or is already closed.
	Close(executor SQLExecutor, shiftID int64, end time.Time) error
}

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new instance of ShiftRepository.
func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(executor SQLExecutor, shift *models.Shift) (int64, error) {
	query := `INSERT INTO shifts (employee_id, store_id, shift_start, status)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id_shift`
	if shift.ShiftStart.IsZero() {
		shift.ShiftStart = time.Now()
	}
	if shift.Status == "" {
		shift.Status = models.ShiftStatusOpen
	}
	err := executor.QueryRow(query, shift.EmployeeID, shift.StoreID, shift.ShiftStart, shift.Status).Scan(&shift.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: shift already open for employee %d at store %d", ErrDuplicateKey, shift.EmployeeID, shift.StoreID)
		}
		return 0, fmt.Errorf("%w: creating shift: %v", ErrDatabaseError, err)
	}
	return shift.ID, nil
}

func (r *shiftRepository) GetByID(id int64) (*models.Shift, error) {
	shift := &models.Shift{}
	query := `SELECT id_shift, employee_id, store_id, shift_start, shift_end, status FROM shifts WHERE id_shift = $1`
	var end sql.NullTime
	err := r.db.QueryRow(query, id).Scan(&shift.ID, &shift.EmployeeID, &shift.StoreID, &shift.ShiftStart, &end, &shift.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting shift by ID %d: %v", ErrDatabaseError, id, err)
	}
	if end.Valid {
		t := end.Time
		shift.ShiftEnd = &t
	}
	return shift, nil
}

func (r *shiftRepository) GetOpenShift(executor SQLExecutor, employeeID, storeID int64) (*models.Shift, error) {
	shift := &models.Shift{}
	query := `SELECT id_shift, employee_id, store_id, shift_start, status
	          FROM shifts
	          WHERE employee_id = $1 AND store_id = $2 AND shift_end IS NULL
	          ORDER BY shift_start DESC
	          LIMIT 1`
	err := executor.QueryRow(query, employeeID, storeID).Scan(
		&shift.ID, &shift.EmployeeID, &shift.StoreID, &shift.ShiftStart, &shift.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting open shift for employee %d store %d: %v", ErrDatabaseError, employeeID, storeID, err)
	}
	return shift, nil
}

func (r *shiftRepository) Close(executor SQLExecutor, shiftID int64, end time.Time) error {
	query := `UPDATE shifts SET shift_end = $1, status = $2 WHERE id_shift = $3 AND shift_end IS NULL`
	result, err := executor.Exec(query, end, models.ShiftStatusClosed, shiftID)
	if err != nil {
		return fmt.Errorf("%w: closing shift ID %d: %v", ErrDatabaseError, shiftID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
