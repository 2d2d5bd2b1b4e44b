package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func ConflictResponse(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// FromError traduz a taxonomia de erros para a resposta HTTP.
// Detalhes de PersistenceError ficam só no log.
func FromError(c *gin.Context, err error) {
	var (
		ve *ValidationError
		ce *ConflictError
		ne *NotFoundError
		be BusinessError
	)

	switch {
	case errors.As(err, &ve):
		BadRequest(c, "invalid_"+ve.Field, ve.Error())
	case errors.As(err, &ce):
		ConflictResponse(c, ce.Field+"_already_exists", ce.Error())
	case errors.As(err, &ne):
		NotFound(c, ne.Entity+"_not_found", ne.Error())
	case errors.As(err, &be):
		BadRequest(c, be.Code, be.Message())
	default:
		slog.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		Internal(c, "internal_error", "Erro inesperado. Tente novamente.")
	}
}
