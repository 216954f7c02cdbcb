package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"farmfresh/internal/common"
	"farmfresh/internal/models"
	"farmfresh/internal/repositories"
)

// SubmissionServiceInterface processes one posted submission end to end:
// sanitize, validate, branch on the submission type, persist. Process
// always returns a result; failures are carried in the result's status and
// message, never as a partial success.
type SubmissionServiceInterface interface {
	Process(ctx context.Context, req *models.SubmissionRequest) *models.SubmissionResult
}

type submissionService struct {
	repo repositories.SubmissionRepository
}

func NewSubmissionService(repo repositories.SubmissionRepository) SubmissionServiceInterface {
	return &submissionService{repo: repo}
}

// Process validates and persists a submission. Required fields are checked
// before any database interaction; the order branch is a single
// all-or-nothing transaction; an unrecognized submission type writes
// nothing and is acknowledged as a soft success so unexpected client
// payloads never surface a hard error to the end user.
func (s *submissionService) Process(ctx context.Context, req *models.SubmissionRequest) *models.SubmissionResult {
	fullName := common.SanitizeText(req.FullName)
	phoneNumber := common.SanitizeText(req.PhoneNumber)
	email := common.SanitizeText(req.Email)
	deliveryArea := common.SanitizeText(req.DeliveryArea)
	message := common.SanitizeText(req.Message)
	deliveryDateTime := common.SanitizeText(req.DeliveryDateTime)
	submissionType := common.SanitizeText(req.SubmissionType)

	if fullName == "" || phoneNumber == "" || deliveryArea == "" || deliveryDateTime == "" {
		return &models.SubmissionResult{
			Status:  models.SubmissionRejected,
			Message: "Missing required fields: fullName, phoneNumber, deliveryArea, or deliveryDateTime.",
		}
	}

	switch submissionType {
	case models.SubmissionTypeOrder:
		return s.processOrder(ctx, req.CartData, &models.Order{
			FullName:         fullName,
			PhoneNumber:      phoneNumber,
			Email:            email,
			DeliveryArea:     deliveryArea,
			DeliveryDateTime: deliveryDateTime,
			Notes:            message,
		})

	case models.SubmissionTypeInquiry:
		inquiryProductID := common.SanitizeText(req.InquiryProductID)
		if inquiryProductID == "" {
			inquiryProductID = "N/A"
		}
		return s.processInquiry(ctx, &models.Inquiry{
			FullName:         fullName,
			PhoneNumber:      phoneNumber,
			Email:            email,
			DeliveryArea:     deliveryArea,
			InquiryProductID: inquiryProductID,
			Message:          message,
		})

	default:
		// Soft-success fallback: nothing persisted, logged for operator
		// visibility. Whether this masks broken clients is an open
		// question inherited from the storefront's original behavior.
		log.Printf("WARN: unknown submission_type %q from %q, acknowledging without persisting", submissionType, fullName)
		return &models.SubmissionResult{Status: models.SubmissionAccepted}
	}
}

// decodeCartEntries decodes the posted cart_data. Field values are coerced
// with safe defaults (missing or unparseable numerics become 0) so that a
// malformed entry fails item validation with a descriptive message rather
// than a bare decode error; only structurally invalid JSON fails the
// decode itself.
func decodeCartEntries(cartData string) ([]models.OrderItem, error) {
	if cartData == "" {
		cartData = "[]"
	}
	var raw []map[string]interface{}
	if err := json.Unmarshal([]byte(cartData), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in cart_data: %w", err)
	}

	items := make([]models.OrderItem, 0, len(raw))
	for _, entry := range raw {
		item := models.OrderItem{
			ProductID:    common.CoerceInt(entry["id"]),
			ProductName:  common.SanitizeText(common.CoerceString(entry["name"])),
			Quantity:     int(common.CoerceInt(entry["quantity"])),
			PricePerUnit: common.CoerceFloat(entry["price"]),
		}
		if item.ProductID <= 0 || item.Quantity <= 0 || item.PricePerUnit < 0 {
			encoded, _ := json.Marshal(entry)
			return nil, fmt.Errorf("invalid cart item data: %s", encoded)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *submissionService) processOrder(ctx context.Context, cartData string, order *models.Order) *models.SubmissionResult {
	items, err := decodeCartEntries(cartData)
	if err != nil {
		return &models.SubmissionResult{Status: models.SubmissionFailed, Message: err.Error()}
	}

	orderID, err := s.repo.CreateOrder(ctx, order, items)
	if err != nil {
		return &models.SubmissionResult{Status: models.SubmissionFailed, Message: err.Error()}
	}
	return &models.SubmissionResult{Status: models.SubmissionOrderPlaced, OrderID: orderID}
}

func (s *submissionService) processInquiry(ctx context.Context, inquiry *models.Inquiry) *models.SubmissionResult {
	if err := s.repo.CreateInquiry(ctx, inquiry); err != nil {
		return &models.SubmissionResult{Status: models.SubmissionFailed, Message: err.Error()}
	}
	return &models.SubmissionResult{Status: models.SubmissionInquirySent}
}
