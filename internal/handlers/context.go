package handlers

import (
	"net/http"

	"retail_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// currentEmployeeID reads the authenticated employee id set by the auth
// middleware. Responds 401 and returns false when it is missing.
func currentEmployeeID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("employeeID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", "employee id missing from context"))
		return 0, false
	}
	id, ok := v.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", "employee id has unexpected type"))
		return 0, false
	}
	return id, true
}

// currentStoreID reads the store binding of the authenticated seller.
// Responds 403 and returns false when the account has no store.
func currentStoreID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("storeID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Account is not assigned to a store.", "store id missing from context"))
		return 0, false
	}
	id, ok := v.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Account is not assigned to a store.", "store id has unexpected type"))
		return 0, false
	}
	return id, true
}

// pathID parses the named int64 path parameter. Responds 400 and returns
// false on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+" path parameter.", err.Error()))
		return 0, false
	}
	return id, true
}
