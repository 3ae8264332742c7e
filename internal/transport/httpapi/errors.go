package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusFor сопоставляет доменную ошибку HTTP-статусу.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrForeignKeyViolation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUniqueViolation):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// messageFor скрывает детали внутренних ошибок от клиента.
func messageFor(err error, status int) string {
	switch status {
	case http.StatusInternalServerError:
		return "internal error"
	case http.StatusServiceUnavailable:
		return domain.ErrStoreUnavailable.Error()
	case http.StatusBadRequest:
		return "referenced record does not exist"
	case http.StatusConflict:
		return "record already exists"
	default:
		return err.Error()
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, errorBody{Error: messageFor(err, status)})
}

func writeNotFound(c *gin.Context, entity domain.Entity) {
	c.JSON(http.StatusNotFound, errorBody{Error: string(entity) + " not found"})
}
