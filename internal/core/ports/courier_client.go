package ports

import (
	"context"

	"afalstore/internal/core/domain/model/courier"
)

// BookingRequest is the payload sent to a courier partner to book a shipment.
type BookingRequest struct {
	ConsigneeName       string
	ConsigneePhone      string
	ConsigneeAddress    string
	DestinationCityCode string
	ReferenceNumber     string
	CollectAmount       int64
	ProductType         string

	// IdempotencyKey is minted per booking attempt chain by the caller so the
	// partner can de-duplicate network retries.
	IdempotencyKey string
}

// BookingConfirmation is a successful booking response.
type BookingConfirmation struct {
	TrackingNumber string
}

// CourierClient is the contract with one courier partner's booking API.
// Each implementation serves exactly one integration type.
type CourierClient interface {
	// Type returns the integration this client talks to.
	Type() courier.Type

	// Book books a shipment. Transport failures and partner-side rejections
	// both surface as errors; the caller must treat a timed-out call as
	// "effect unknown", never as failed.
	Book(ctx context.Context, request BookingRequest) (BookingConfirmation, error)
}
