package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Коды ошибок в теле ответа. Статусы HTTP отображают ту же семантику:
// 400 invalid_argument, 404 not_found, 409 conflict, 412 failed_precondition,
// 500 internal.
const (
	codeInvalidArgument    = "invalid_argument"
	codeNotFound           = "not_found"
	codeConflict           = "conflict"
	codeFailedPrecondition = "failed_precondition"
	codeInternal           = "internal"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeError(c *gin.Context, err error) {
	status, code, message := mapError(err)
	c.AbortWithStatusJSON(status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeErrorMessage(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// mapError переводит доменную ошибку в HTTP-статус и код. Внутренние
// ошибки не раскрывают деталей клиенту.
func mapError(err error) (int, string, string) {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest, codeInvalidArgument, err.Error()
	case domain.IsNotFound(err):
		return http.StatusNotFound, codeNotFound, err.Error()
	case domain.IsInsufficientStock(err):
		return http.StatusPreconditionFailed, codeFailedPrecondition, err.Error()
	case domain.IsIdempotencyConflict(err):
		return http.StatusConflict, codeConflict, err.Error()
	default:
		return http.StatusInternalServerError, codeInternal, "internal server error"
	}
}
