package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"retail_backend/internal/models"
	"retail_backend/internal/repositories"
)

var (
	ErrShiftRequired = errors.New("no open shift")
	ErrShiftExpired  = errors.New("shift closed after exceeding the configured duration")
	ErrShiftNotFound = errors.New("shift not found or already closed")
)

// CurrentShiftResult is the outcome of a current-shift lookup. When the open
// shift exceeded its duration it is closed on the spot: Shift is nil,
// AutoClosed is true and ClosedShiftID routes the caller to the shift report.
type CurrentShiftResult struct {
	Shift         *models.Shift
	AutoClosed    bool
	ClosedShiftID int64
	WorkHours     int
	WorkMinutes   int
}

// ShiftService tracks seller work sessions. A shift is expired once its
// elapsed whole seconds reach the configured duration (boundary inclusive);
// the expiry check runs on every read path that touches shift state, so an
// expired shift can never accept a sale or a return.
type ShiftService interface {
	OpenShift(employeeID, storeID int64) (shift *models.Shift, alreadyOpen bool, err error)
	CurrentShift(employeeID, storeID int64) (*CurrentShiftResult, error)
	CloseShift(shiftID, employeeID, storeID int64) error
	// RequireLiveShift returns the open, non-expired shift for the pair.
	// ErrShiftRequired when none is open; ErrShiftExpired when the open shift
	// crossed the boundary (it is closed before the error is returned).
	RequireLiveShift(employeeID, storeID int64) (*models.Shift, error)
	GetShift(shiftID int64) (*models.Shift, error)
}

type shiftService struct {
	shiftRepo repositories.ShiftRepository
	db        *sql.DB
	duration  time.Duration
	now       func() time.Time
}

// NewShiftService creates a new instance of ShiftService.
func NewShiftService(shiftRepo repositories.ShiftRepository, db *sql.DB, duration time.Duration) ShiftService {
	return &shiftService{
		shiftRepo: shiftRepo,
		db:        db,
		duration:  duration,
		now:       time.Now,
	}
}

func (s *shiftService) OpenShift(employeeID, storeID int64) (*models.Shift, bool, error) {
	existing, err := s.shiftRepo.GetOpenShift(s.db, employeeID, storeID)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up open shift: %w", err)
	}

	shift := &models.Shift{
		EmployeeID: employeeID,
		StoreID:    storeID,
		ShiftStart: s.now(),
		Status:     models.ShiftStatusOpen,
	}
	if _, err := s.shiftRepo.Create(s.db, shift); err != nil {
		// A concurrent open won the unique index; use that shift.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			existing, lookupErr := s.shiftRepo.GetOpenShift(s.db, employeeID, storeID)
			if lookupErr != nil {
				return nil, false, fmt.Errorf("failed to look up open shift: %w", lookupErr)
			}
			return existing, true, nil
		}
		return nil, false, fmt.Errorf("failed to open shift: %w", err)
	}
	return shift, false, nil
}

func (s *shiftService) CurrentShift(employeeID, storeID int64) (*CurrentShiftResult, error) {
	shift, err := s.shiftRepo.GetOpenShift(s.db, employeeID, storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &CurrentShiftResult{}, nil
		}
		return nil, fmt.Errorf("failed to look up open shift: %w", err)
	}

	elapsed := shift.Elapsed(s.now())
	if s.expired(elapsed) {
		if err := s.shiftRepo.Close(s.db, shift.ID, s.now()); err != nil {
			return nil, fmt.Errorf("failed to auto-close expired shift %d: %w", shift.ID, err)
		}
		return &CurrentShiftResult{AutoClosed: true, ClosedShiftID: shift.ID}, nil
	}

	return &CurrentShiftResult{
		Shift:       shift,
		WorkHours:   int(elapsed / 3600),
		WorkMinutes: int((elapsed % 3600) / 60),
	}, nil
}

func (s *shiftService) CloseShift(shiftID, employeeID, storeID int64) error {
	shift, err := s.shiftRepo.GetByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("failed to fetch shift for close: %w", err)
	}
	// Only the owning seller at the same store may close a shift.
	if shift.EmployeeID != employeeID || shift.StoreID != storeID || shift.ShiftEnd != nil {
		return ErrShiftNotFound
	}
	if err := s.shiftRepo.Close(s.db, shiftID, s.now()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("failed to close shift %d: %w", shiftID, err)
	}
	return nil
}

func (s *shiftService) RequireLiveShift(employeeID, storeID int64) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetOpenShift(s.db, employeeID, storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftRequired
		}
		return nil, fmt.Errorf("failed to look up open shift: %w", err)
	}
	if s.expired(shift.Elapsed(s.now())) {
		if err := s.shiftRepo.Close(s.db, shift.ID, s.now()); err != nil {
			return nil, fmt.Errorf("failed to auto-close expired shift %d: %w", shift.ID, err)
		}
		return nil, ErrShiftExpired
	}
	return shift, nil
}

func (s *shiftService) GetShift(shiftID int64) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to fetch shift: %w", err)
	}
	return shift, nil
}

// expired treats elapsed == duration as expired (boundary inclusive).
func (s *shiftService) expired(elapsedSec int64) bool {
	return elapsedSec >= int64(s.duration.Seconds())
}
