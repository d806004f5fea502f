package services

import (
	"errors"
	"fmt"

	"retail_backend/internal/models"
	"retail_backend/internal/repositories"
	"retail_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- DTOs ---

// LoginRequest DTO.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse DTO.
type AuthResponse struct {
	Employee     *models.Employee `json:"employee"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---

// AuthService authenticates employees. A seller login opens their shift for
// the day (idempotent: a still-open shift is reused); a seller logout closes
// it.
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	Refresh(refreshToken string) (*AuthResponse, error)
	GetProfile(employeeID int64) (*models.Employee, error)
	Logout(employeeID int64) error
}

type authService struct {
	employeeRepo repositories.EmployeeRepository
	shifts       ShiftService
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(employeeRepo repositories.EmployeeRepository, shifts ShiftService) AuthService {
	return &authService{employeeRepo: employeeRepo, shifts: shifts}
}

func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	employee, err := s.employeeRepo.GetByLogin(req.Login)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if !employee.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Sellers get a shift on login so transactional work can start right away.
	if employee.Role == models.RoleSeller && employee.StoreID != nil {
		if _, _, err := s.shifts.OpenShift(employee.ID, *employee.StoreID); err != nil {
			return nil, fmt.Errorf("failed to open shift on login: %w", err)
		}
	}

	return s.tokensFor(employee)
}

func (s *authService) Refresh(refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	employee, err := s.employeeRepo.GetByID(claims.EmployeeID)
	if err != nil || !employee.IsActive {
		return nil, ErrInvalidCredentials
	}
	return s.tokensFor(employee)
}

func (s *authService) GetProfile(employeeID int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch employee profile: %w", err)
	}
	return employee, nil
}

func (s *authService) Logout(employeeID int64) error {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to fetch employee for logout: %w", err)
	}
	if employee.Role != models.RoleSeller || employee.StoreID == nil {
		return nil
	}
	result, err := s.shifts.CurrentShift(employeeID, *employee.StoreID)
	if err != nil {
		return fmt.Errorf("failed to look up shift on logout: %w", err)
	}
	if result.Shift == nil {
		return nil
	}
	return s.shifts.CloseShift(result.Shift.ID, employeeID, *employee.StoreID)
}

func (s *authService) tokensFor(employee *models.Employee) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(employee.ID, employee.Login, employee.Role, employee.StoreID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(employee.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{
		Employee:     employee,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
