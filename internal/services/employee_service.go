package services

import (
	"errors"
	"fmt"
	"strings"

	"retail_backend/internal/models"
	"retail_backend/internal/repositories"
	"retail_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrLoginTaken = errors.New("login already taken")

const minPasswordLength = 6

// --- DTOs ---

// CreateEmployeeRequest DTO.
type CreateEmployeeRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role"`
	StoreID  *int64 `json:"store_id"`
}

// UpdateEmployeeRequest DTO.
type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role"`
	StoreID  *int64 `json:"store_id"`
	Active   *bool  `json:"active"`
}

// --- EmployeeService Interface ---

// EmployeeService is admin-facing employee management. Employees are
// soft-deleted only.
type EmployeeService interface {
	Create(req CreateEmployeeRequest) (*models.Employee, error)
	GetByID(id int64) (*models.Employee, error)
	List() ([]models.Employee, error)
	Update(id int64, req UpdateEmployeeRequest) (*models.Employee, error)
	Delete(id int64) error
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	db           repositories.SQLExecutor
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(employeeRepo repositories.EmployeeRepository, db repositories.SQLExecutor) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo, db: db}
}

func (s *employeeService) Create(req CreateEmployeeRequest) (*models.Employee, error) {
	login := strings.TrimSpace(req.Login)
	fullName := strings.TrimSpace(req.FullName)
	if utils.IsEmpty(login) || utils.IsEmpty(fullName) {
		return nil, fmt.Errorf("%w: login and full name are required", ErrValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, minPasswordLength) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	role := req.Role
	if role == "" {
		role = models.RoleSeller
	}
	if role != models.RoleAdmin && role != models.RoleSeller {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := models.Employee{
		Login:        login,
		PasswordHash: string(hashedPasswordBytes),
		FullName:     fullName,
		Role:         role,
		StoreID:      req.StoreID,
		IsActive:     true,
	}
	if _, err := s.employeeRepo.Create(s.db, &employee); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrLoginTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return &employee, nil
}

func (s *employeeService) GetByID(id int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}
	return employee, nil
}

func (s *employeeService) List() ([]models.Employee, error) {
	employees, err := s.employeeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *employeeService) Update(id int64, req UpdateEmployeeRequest) (*models.Employee, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = models.RoleSeller
	}

	employee, err := s.employeeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch employee for update: %w", err)
	}
	employee.FullName = fullName
	employee.Role = role
	employee.StoreID = req.StoreID
	if req.Active != nil {
		employee.IsActive = *req.Active
	}

	if err := s.employeeRepo.Update(s.db, employee); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

func (s *employeeService) Delete(id int64) error {
	if err := s.employeeRepo.SoftDelete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	return nil
}
