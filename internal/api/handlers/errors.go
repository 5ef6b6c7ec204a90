package handlers

import (
	"errors"
	"net/http"

	"geothermal-load/internal/api/models"
	"geothermal-load/internal/load"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to their codes; anything else gets status and code.
func respondError(c *gin.Context, status int, code string, err error) {
	switch {
	case errors.Is(err, load.ErrInvalidLoadInput):
		status, code = http.StatusBadRequest, "INVALID_LOAD_INPUT"
	case errors.Is(err, load.ErrIncompatibleOperand):
		status, code = http.StatusUnprocessableEntity, "INCOMPATIBLE_OPERAND"
	case errors.Is(err, load.ErrInvalidParameter):
		status, code = http.StatusBadRequest, "INVALID_PARAMETER"
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
