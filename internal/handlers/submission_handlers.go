package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"farmfresh/internal/models"
	"farmfresh/internal/services"
)

// Legacy response vocabulary. The storefront page detects success by
// substring match on these strings, and clears its cart only when the
// order-placed phrase appears, so the wording is a wire contract.
const (
	textOrderPlaced   = "Success: Your order (ID: %d) has been placed successfully! We'll contact you shortly to confirm."
	textInquirySent   = "Success: Your inquiry has been sent successfully! We'll get back to you soon."
	textMessageSent   = "Success: Your message has been sent successfully!"
	textInvalidMethod = "Error: Invalid request method. Please send a POST request."
	textMalformedForm = "Error: Malformed form data."
	errorPrefix       = "Error: "
	serverErrorPrefix = "Server Error: "
)

// SubmissionHandlers handles the storefront's form post endpoint.
type SubmissionHandlers struct {
	submissions services.SubmissionServiceInterface
	carts       services.CartServiceInterface
}

func NewSubmissionHandlers(submissions services.SubmissionServiceInterface, carts services.CartServiceInterface) *SubmissionHandlers {
	return &SubmissionHandlers{submissions: submissions, carts: carts}
}

// renderText maps a structured result onto the legacy plain-text phrases.
func renderText(result *models.SubmissionResult) string {
	switch result.Status {
	case models.SubmissionOrderPlaced:
		return fmt.Sprintf(textOrderPlaced, result.OrderID)
	case models.SubmissionInquirySent:
		return textInquirySent
	case models.SubmissionAccepted:
		return textMessageSent
	case models.SubmissionRejected:
		return errorPrefix + result.Message
	default:
		return serverErrorPrefix + result.Message
	}
}

func statusCode(result *models.SubmissionResult) int {
	switch result.Status {
	case models.SubmissionRejected:
		return http.StatusBadRequest
	case models.SubmissionFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

// HandleSubmission accepts one POST of the delivery form. The route is
// registered for every method so that non-POST requests get the legacy
// terminal error text instead of a bare 405.
//
// Responses are text/plain by default; clients that ask for JSON via the
// Accept header get the structured result with the same message.
func (h *SubmissionHandlers) HandleSubmission(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.String(http.StatusMethodNotAllowed, textInvalidMethod)
	}

	var req models.SubmissionRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, textMalformedForm)
	}

	ctx := c.Request().Context()
	result := h.submissions.Process(ctx, &req)

	// The cart clears only on a confirmed order, never for inquiries or
	// the fallback acknowledgment.
	if result.Status == models.SubmissionOrderPlaced {
		if cookie, err := c.Cookie(cartSessionCookie); err == nil && cookie.Value != "" {
			if err := h.carts.Clear(ctx, cookie.Value); err != nil {
				log.Printf("WARN: clear cart for session %s after order %d: %v", cookie.Value, result.OrderID, err)
			}
		}
	}

	code := statusCode(result)
	if wantsJSON(c) {
		return c.JSON(code, map[string]interface{}{
			"status":   result.Status,
			"message":  renderText(result),
			"order_id": result.OrderID,
		})
	}
	return c.String(code, renderText(result))
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
