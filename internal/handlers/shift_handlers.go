package handlers

import (
	"errors"
	"net/http"

	"retail_backend/internal/services"
	"retail_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ShiftHandler holds the shift service.
type ShiftHandler struct {
	shiftService services.ShiftService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(ss services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: ss}
}

// OpenShift opens a shift for the seller, or returns the one already open.
func (h *ShiftHandler) OpenShift(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}
	storeID, ok := currentStoreID(c)
	if !ok {
		return
	}

	shift, alreadyOpen, err := h.shiftService.OpenShift(employeeID, storeID)
	if err != nil {
		utils.LogError(err, "OpenShift: Error from shiftService.OpenShift")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to open shift.", "Internal error"))
		return
	}
	status := http.StatusCreated
	if alreadyOpen {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"shift": shift, "already_open": alreadyOpen})
}

// CurrentShift reports the seller's open shift with worked time. An expired
// shift is closed on the spot and reported as closed.
func (h *ShiftHandler) CurrentShift(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}
	storeID, ok := currentStoreID(c)
	if !ok {
		return
	}

	result, err := h.shiftService.CurrentShift(employeeID, storeID)
	if err != nil {
		utils.LogError(err, "CurrentShift: Error from shiftService.CurrentShift")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch current shift.", "Internal error"))
		return
	}
	if result.AutoClosed {
		c.JSON(http.StatusOK, gin.H{"shift": nil, "closed": true, "shift_id": result.ClosedShiftID})
		return
	}
	if result.Shift == nil {
		c.JSON(http.StatusOK, gin.H{"shift": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"shift":        result.Shift,
		"work_hours":   result.WorkHours,
		"work_minutes": result.WorkMinutes,
	})
}

// CloseShift closes the seller's own shift.
func (h *ShiftHandler) CloseShift(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}
	storeID, ok := currentStoreID(c)
	if !ok {
		return
	}
	shiftID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.shiftService.CloseShift(shiftID, employeeID, storeID); err != nil {
		if errors.Is(err, services.ErrShiftNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found or already closed.", err.Error()))
		} else {
			utils.LogError(err, "CloseShift: Error from shiftService.CloseShift")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to close shift.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "shift_id": shiftID})
}
