package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-board-api/internal/response"
)

var errCodeStatus = map[string]int{
	response.ErrCodeNotFound:      http.StatusNotFound,
	response.ErrCodeAlreadyExists: http.StatusConflict,
	response.ErrCodeValidation:    http.StatusBadRequest,
	response.ErrCodeUnauthorized:  http.StatusUnauthorized,
	response.ErrCodeForbidden:     http.StatusForbidden,
}

// handleServiceError translates a service layer error into the HTTP
// response. AppErrors carry their own code; a bare
// gorm.ErrRecordNotFound that leaked through a repository becomes 404;
// anything else is a 500.
func handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		zap.L().Error("Unhandled service error", zap.Error(err))
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
		return
	}

	zap.L().Warn("Service error",
		zap.String("code", appErr.Code),
		zap.String("message", appErr.Message),
		zap.String("details", appErr.Details),
	)

	status, ok := errCodeStatus[appErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	response.SendError(c, status, appErr.Code, appErr.Message)
}
