package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/services"
	"github.com/restodesk/backoffice/utils"
)

var (
	ErrDuplicateCustomer = errors.New("a customer with this email or phone already exists")
	ErrDuplicateTable    = errors.New("a table with this number already exists")
	ErrDuplicateEmployee = errors.New("an employee with this email already exists")
	ErrInvalidRole       = errors.New("invalid employee role")
)

// respondServiceError maps order-service failures onto HTTP statuses:
// missing rows -> 404, precondition/validation -> 400, bad enum value -> 422.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrInvalidStatus):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, services.ErrTableWithoutCustomer),
		errors.Is(err, services.ErrInvalidQuantity):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
