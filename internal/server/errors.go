package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/retailhub/pos-api/internal/catalog/domain"
	purchasedomain "github.com/retailhub/pos-api/internal/purchase/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Detail  string            `json:"detail,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

// ErrorHandlingMiddleware maps handler errors to JSON responses. In a
// hardened deployment server faults collapse to a generic message; with
// debug on the underlying error text is included.
func ErrorHandlingMiddleware(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		if debug && status >= http.StatusInternalServerError {
			payload.Detail = lastErr.Err.Error()
		}
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(err),
					Code:    code,
					Message: code,
				},
			},
		}
	}

	if isNotFoundError(err) {
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidSkip),
		errors.Is(err, catalogdomain.ErrInvalidLimit):
		return true
	case isPurchaseValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, purchasedomain.ErrProductNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if err == nil {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(err error) string {
	switch {
	case errors.Is(err, purchasedomain.ErrEmptyItems):
		return "items"
	case errors.Is(err, purchasedomain.ErrInvalidQuantity):
		return "quantity"
	case errors.Is(err, purchasedomain.ErrInvalidPrice):
		return "PRD_PRICE"
	case errors.Is(err, purchasedomain.ErrInvalidProductCode):
		return "PRD_CODE"
	case errors.Is(err, purchasedomain.ErrInvalidProductName):
		return "PRD_NAME"
	case errors.Is(err, purchasedomain.ErrInvalidTaxCode):
		return "TAX_CD"
	case errors.Is(err, purchasedomain.ErrInvalidEmployeeCode):
		return "EMP_CD"
	case errors.Is(err, purchasedomain.ErrInvalidStoreCode):
		return "STORE_CD"
	case errors.Is(err, purchasedomain.ErrInvalidTerminalCode):
		return "POS_NO"
	case errors.Is(err, catalogdomain.ErrInvalidSkip):
		return "skip"
	case errors.Is(err, catalogdomain.ErrInvalidLimit):
		return "limit"
	default:
		return "request"
	}
}

func isPurchaseValidationError(err error) bool {
	switch {
	case errors.Is(err, purchasedomain.ErrEmptyItems),
		errors.Is(err, purchasedomain.ErrInvalidQuantity),
		errors.Is(err, purchasedomain.ErrInvalidPrice),
		errors.Is(err, purchasedomain.ErrInvalidProductCode),
		errors.Is(err, purchasedomain.ErrInvalidProductName),
		errors.Is(err, purchasedomain.ErrInvalidTaxCode),
		errors.Is(err, purchasedomain.ErrInvalidEmployeeCode),
		errors.Is(err, purchasedomain.ErrInvalidStoreCode),
		errors.Is(err, purchasedomain.ErrInvalidTerminalCode):
		return true
	default:
		return false
	}
}

// classifyErrorForLog labels request errors for the access log.
func classifyErrorForLog(err error) (string, string) {
	switch {
	case asValidationErrors(err) != nil, isValidationError(err):
		return "validation_error", validationErrorCode(err)
	case isNotFoundError(err):
		return "not_found", validationErrorCode(err)
	default:
		return "internal_error", "internal_error"
	}
}
