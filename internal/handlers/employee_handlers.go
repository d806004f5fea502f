package handlers

import (
	"errors"
	"net/http"

	"retail_backend/internal/services"
	"retail_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler holds the employee service.
type EmployeeHandler struct {
	employeeService services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(es services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es}
}

// CreateEmployee registers a new employee account.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req services.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	employee, err := h.employeeService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoginTaken):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Login already taken.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.LogError(err, "CreateEmployee: Error from employeeService.Create")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// GetEmployee fetches a single employee.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
		} else {
			utils.LogError(err, "GetEmployee: Error from employeeService.GetByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, employee)
}

// GetEmployees lists all employees.
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	employees, err := h.employeeService.List()
	if err != nil {
		utils.LogError(err, "GetEmployees: Error from employeeService.List")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employees.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// UpdateEmployee updates profile, role, store binding or active flag.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	employee, err := h.employeeService.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.LogError(err, "UpdateEmployee: Error from employeeService.Update")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee deactivates an employee account.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.employeeService.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteEmployee: Error from employeeService.Delete")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to deactivate employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
