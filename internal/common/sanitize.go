package common

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// SanitizeText trims surrounding whitespace and escapes HTML metacharacters.
// All form input passes through here before validation or persistence.
func SanitizeText(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// CoerceInt extracts an integer from a decoded JSON value, defaulting to 0
// for missing, null or unparseable input. Invalid values fail item
// validation downstream instead of aborting the decode.
func CoerceInt(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case string:
		if parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return parsed
		}
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

// CoerceFloat extracts a float from a decoded JSON value, defaulting to 0.
func CoerceFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

// CoerceString extracts a string from a decoded JSON value, defaulting to
// the empty string.
func CoerceString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidatePositiveInt64 validates positive integer identifiers.
func ValidatePositiveInt64(value int64, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	return nil
}

// ErrorResponse is the standardized error body for the JSON endpoints
// (cart, products, health). The submission endpoint keeps its own
// plain-text vocabulary.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response.
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendClientError sends a client error response.
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendValidationError sends a validation error response for one field.
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{field: message}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendServerError sends a server error response.
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response.
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}
