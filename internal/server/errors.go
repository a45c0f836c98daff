package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	biztypedomain "github.com/haixin886/recharge-hub-system-sub001/internal/biztype/domain"
	orderdomain "github.com/haixin886/recharge-hub-system-sub001/internal/order/domain"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
	userdomain "github.com/haixin886/recharge-hub-system-sub001/internal/user/domain"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not_found")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

// ValidationError rejects one request field with a stable code.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Code + ": " + e.Message }

func newValidationError(field, code, message string) error {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func invalidRequestError() error {
	return newValidationError("body", "invalid_request", "request body could not be parsed")
}

// AbortWithError maps a domain error to its HTTP response.
func AbortWithError(c *gin.Context, err error) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validation})
		return
	}

	status := statusFor(err)
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": err.Error()}})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound),
		errors.Is(err, orderdomain.ErrOrderNotFound),
		errors.Is(err, userdomain.ErrUserNotFound),
		errors.Is(err, biztypedomain.ErrBusinessTypeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, statsdomain.ErrLedgerUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, userdomain.ErrUsernameTaken),
		errors.Is(err, biztypedomain.ErrCodeTaken),
		errors.Is(err, orderdomain.ErrStatusRegression):
		return http.StatusConflict
	case errors.Is(err, statsdomain.ErrInvalidRange),
		errors.Is(err, statsdomain.ErrInvalidAgent),
		errors.Is(err, orderdomain.ErrInvalidUser),
		errors.Is(err, orderdomain.ErrInvalidProduct),
		errors.Is(err, orderdomain.ErrInvalidPhone),
		errors.Is(err, orderdomain.ErrInvalidAmount),
		errors.Is(err, orderdomain.ErrInvalidPaymentMethod),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, userdomain.ErrInvalidUsername),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidRole),
		errors.Is(err, userdomain.ErrInvalidBalance),
		errors.Is(err, biztypedomain.ErrInvalidCode),
		errors.Is(err, biztypedomain.ErrInvalidName),
		errors.Is(err, biztypedomain.ErrInvalidFaceValue),
		errors.Is(err, biztypedomain.ErrInvalidPrice):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
