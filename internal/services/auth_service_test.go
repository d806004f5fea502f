package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"retail_backend/internal/models"
	"retail_backend/pkg/utils"
)

func init() {
	utils.ConfigureJWT("test-secret", 15*time.Minute, 24*time.Hour)
}

func seedEmployee(t *testing.T, repo *fakeEmployeeRepo, login, password, role string, storeID *int64) *models.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	employee := models.Employee{
		Login:        login,
		PasswordHash: string(hash),
		FullName:     "Test " + login,
		Role:         role,
		StoreID:      storeID,
		IsActive:     true,
	}
	_, err = repo.Create(nil, &employee)
	assert.NoError(t, err)
	return &employee
}

func newTestAuthService() (*authService, *fakeEmployeeRepo, *fakeShiftRepo) {
	employees := newFakeEmployeeRepo()
	shiftRepo := newFakeShiftRepo()
	shifts := newTestShiftService(shiftRepo, 8*time.Hour, time.Now())
	return &authService{employeeRepo: employees, shifts: shifts}, employees, shiftRepo
}

func TestLoginSellerOpensShift(t *testing.T) {
	svc, employees, shiftRepo := newTestAuthService()
	storeID := int64(10)
	seedEmployee(t, employees, "aibek", "secret123", models.RoleSeller, &storeID)

	resp, err := svc.Login(LoginRequest{Login: "aibek", Password: "secret123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "aibek", resp.Employee.Login)

	shift, err := shiftRepo.GetOpenShift(nil, resp.Employee.ID, storeID)
	assert.NoError(t, err)
	assert.Nil(t, shift.ShiftEnd)

	// A second login reuses the open shift instead of stacking a new one.
	_, err = svc.Login(LoginRequest{Login: "aibek", Password: "secret123"})
	assert.NoError(t, err)
	count := 0
	for _, s := range shiftRepo.shifts {
		if s.ShiftEnd == nil {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestLoginAdminOpensNoShift(t *testing.T) {
	svc, employees, shiftRepo := newTestAuthService()
	seedEmployee(t, employees, "boss", "secret123", models.RoleAdmin, nil)

	_, err := svc.Login(LoginRequest{Login: "boss", Password: "secret123"})
	assert.NoError(t, err)
	assert.Empty(t, shiftRepo.shifts)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, employees, _ := newTestAuthService()
	employee := seedEmployee(t, employees, "aibek", "secret123", models.RoleAdmin, nil)

	_, err := svc.Login(LoginRequest{Login: "aibek", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(LoginRequest{Login: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Deactivated accounts cannot log in.
	employees.employees[employee.ID].IsActive = false
	_, err = svc.Login(LoginRequest{Login: "aibek", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc, employees, _ := newTestAuthService()
	seedEmployee(t, employees, "aibek", "secret123", models.RoleAdmin, nil)

	resp, err := svc.Login(LoginRequest{Login: "aibek", Password: "secret123"})
	assert.NoError(t, err)

	refreshed, err := svc.Refresh(resp.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutClosesSellerShift(t *testing.T) {
	svc, employees, shiftRepo := newTestAuthService()
	storeID := int64(10)
	seller := seedEmployee(t, employees, "aibek", "secret123", models.RoleSeller, &storeID)

	_, err := svc.Login(LoginRequest{Login: "aibek", Password: "secret123"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(seller.ID))
	_, err = shiftRepo.GetOpenShift(nil, seller.ID, storeID)
	assert.Error(t, err)

	// Logout with no open shift is a no-op.
	assert.NoError(t, svc.Logout(seller.ID))
}
