package models

// SubmissionType discriminates the processing path of a form post.
// Anything other than the two known values takes the soft-success
// fallback: nothing is written and the caller still gets a generic
// acknowledgment.
const (
	SubmissionTypeOrder   = "order"
	SubmissionTypeInquiry = "inquiry"
)

// SubmissionRequest carries the raw form fields of one POST. Every field
// is untrusted text until the submission service has sanitized it.
type SubmissionRequest struct {
	FullName         string `form:"fullName" json:"fullName"`
	PhoneNumber      string `form:"phoneNumber" json:"phoneNumber"`
	Email            string `form:"email" json:"email"`
	DeliveryArea     string `form:"deliveryArea" json:"deliveryArea"`
	Message          string `form:"message" json:"message"`
	DeliveryDateTime string `form:"deliveryDateTime" json:"deliveryDateTime"`
	SubmissionType   string `form:"submission_type" json:"submission_type"`
	CartData         string `form:"cart_data" json:"cart_data"`
	InquiryProductID string `form:"inquiry_product_id" json:"inquiry_product_id"`
}

// SubmissionStatus classifies the outcome of a submission.
type SubmissionStatus string

const (
	// SubmissionOrderPlaced means the order header and all its items were
	// committed in one transaction.
	SubmissionOrderPlaced SubmissionStatus = "order_placed"
	// SubmissionInquirySent means the inquiry row was committed.
	SubmissionInquirySent SubmissionStatus = "inquiry_sent"
	// SubmissionAccepted is the soft-success fallback for unrecognized
	// submission types: acknowledged, nothing persisted.
	SubmissionAccepted SubmissionStatus = "accepted"
	// SubmissionRejected means the request failed validation before any
	// database interaction.
	SubmissionRejected SubmissionStatus = "rejected"
	// SubmissionFailed means processing aborted after validation; any open
	// transaction was rolled back.
	SubmissionFailed SubmissionStatus = "failed"
)

// Succeeded reports whether the caller should treat the submission as
// accepted.
func (s SubmissionStatus) Succeeded() bool {
	switch s {
	case SubmissionOrderPlaced, SubmissionInquirySent, SubmissionAccepted:
		return true
	}
	return false
}

// SubmissionResult is the structured outcome of one submission. The
// handler renders it to the legacy plain-text vocabulary (or JSON);
// Message holds the failure cause for rejected/failed results and is empty
// on success.
type SubmissionResult struct {
	Status  SubmissionStatus `json:"status"`
	Message string           `json:"message,omitempty"`
	OrderID int64            `json:"order_id,omitempty"`
}
