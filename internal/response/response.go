package response

import "github.com/gin-gonic/gin"

// Error codes shared between the service and handler layers
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// AppError is the error type carried from the service layer up to the
// HTTP and bot boundaries, where the code decides the user-facing shape
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// ErrorBody is the error payload inside an ErrorResponse
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for failed requests
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// SuccessResponse is the envelope for successful requests
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// SendError writes an error envelope and the given status code
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// SendSuccess writes a success envelope with the given status code
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Data: data})
}
