package http

import (
	"encoding/json"
	"time"
)

// Error is the uniform error envelope of the API.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned in the envelope.
const (
	CodeValidation       = "VALIDATION"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeTransitionDenied = "TRANSITION_DENIED"
	CodeConcurrency      = "CONCURRENCY_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeExternalService  = "EXTERNAL_SERVICE"
	CodeBookingNotSaved  = "BOOKING_NOT_SAVED"
	CodeInternal         = "INTERNAL"
)

// ChangeStatusRequest is the body of POST /api/v1/orders/:id/status.
// ReturnConditions maps line IDs to "resellable" or "not_resellable" and is
// only meaningful when Status is "returned".
type ChangeStatusRequest struct {
	Status           string            `json:"status"`
	ReturnConditions map[string]string `json:"returnConditions,omitempty"`
}

// ChangeStatusResponse reports the status after the change.
type ChangeStatusResponse struct {
	Status string `json:"status"`
}

// ContactPatchRequest carries optional contact field changes; absent fields
// stay untouched.
type ContactPatchRequest struct {
	CustomerName    *string `json:"customerName,omitempty"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	ShippingAddress *string `json:"shippingAddress,omitempty"`
	City            *string `json:"city,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// LineSpecRequest describes one desired order line. A line without an ID is
// inserted; existing lines absent from the set are removed.
type LineSpecRequest struct {
	ID        *string `json:"id,omitempty"`
	VariantID string  `json:"variantId"`
	Qty       int     `json:"qty"`
	UnitPrice int64   `json:"unitPrice"`
}

// SubmitEditRequest is the body of POST /api/v1/orders/:id/edits.
// Lines being absent (null) leaves the line set untouched.
type SubmitEditRequest struct {
	ExpectedEditVersion int                 `json:"expectedEditVersion"`
	Reason              string              `json:"reason"`
	Contact             ContactPatchRequest `json:"contact"`
	ShippingAmount      *int64              `json:"shippingAmount,omitempty"`
	DiscountTotal       *int64              `json:"discountTotal,omitempty"`
	PromoName           *string             `json:"promoName,omitempty"`
	Lines               []LineSpecRequest   `json:"lines,omitempty"`
	TimeZone            string              `json:"timeZone,omitempty"`
}

// SubmitEditResponse reports recomputed totals and the new version token.
type SubmitEditResponse struct {
	Subtotal       int64 `json:"subtotal"`
	ShippingAmount int64 `json:"shippingAmount"`
	DiscountTotal  int64 `json:"discountTotal"`
	Total          int64 `json:"total"`
	NewEditVersion int   `json:"newEditVersion"`
	CNBooked       bool  `json:"cnBooked"`
}

// BookCourierResponse reports the booking outcome.
type BookCourierResponse struct {
	TrackingNumber string `json:"trackingNumber"`
	CollectAmount  int64  `json:"collectAmount"`
	AlreadyBooked  bool   `json:"alreadyBooked"`
}

// OrderLineView is one line of the order view.
type OrderLineView struct {
	ID              string `json:"id"`
	VariantID       string `json:"variantId"`
	Qty             int    `json:"qty"`
	UnitPrice       int64  `json:"unitPrice"`
	LineTotal       int64  `json:"lineTotal"`
	ReturnCondition string `json:"returnCondition,omitempty"`
}

// OrderView is the response of GET /api/v1/orders/:id.
type OrderView struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	EditVersion int    `json:"editVersion"`

	CourierType    string     `json:"courierType"`
	TrackingNumber *string    `json:"trackingNumber,omitempty"`
	BookedAt       *time.Time `json:"bookedAt,omitempty"`

	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	ShippingAddress string `json:"shippingAddress"`
	City            string `json:"city"`
	Notes           string `json:"notes,omitempty"`

	ShippingAmount int64  `json:"shippingAmount"`
	DiscountTotal  int64  `json:"discountTotal"`
	PromoName      string `json:"promoName,omitempty"`

	Lines []OrderLineView `json:"lines"`

	Subtotal int64 `json:"subtotal"`
	Total    int64 `json:"total"`
}

// EditRecordView is one row of GET /api/v1/orders/:id/edits, newest first.
type EditRecordView struct {
	ID             string          `json:"id"`
	Reason         string          `json:"reason"`
	Diff           json.RawMessage `json:"diff"`
	ActorTimeZone  string          `json:"actorTimeZone,omitempty"`
	ActorUserAgent string          `json:"actorUserAgent,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}
