// Package courierapi is the HTTP client for courier partner booking APIs.
// One Client instance serves exactly one integration type.
package courierapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"afalstore/internal/core/domain/model/courier"
	"afalstore/internal/core/ports"
)

const clientTimeout = 15 * time.Second

// ErrBookingRejected is returned when the partner refuses the booking with a
// 4xx response.
var ErrBookingRejected = errors.New("courier rejected booking")

// ErrCourierUnavailable is returned on 5xx responses and carries the same
// warning as a transport timeout: the effect on the partner side is unknown.
var ErrCourierUnavailable = errors.New("courier unavailable")

// Client books shipments with one courier partner over HTTP.
type Client struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	courierType courier.Type
}

// NewClient creates a booking client for one courier integration.
func NewClient(courierType courier.Type, baseURL, apiKey string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: clientTimeout,
		},
		baseURL:     baseURL,
		apiKey:      apiKey,
		courierType: courierType,
	}
}

// Type returns the integration this client talks to.
func (c *Client) Type() courier.Type {
	return c.courierType
}

type bookingRequest struct {
	ConsigneeName    string `json:"consigneeName"`
	ConsigneePhone   string `json:"consigneePhone"`
	ConsigneeAddress string `json:"consigneeAddress"`
	CityCode         string `json:"cityCode"`
	ReferenceNumber  string `json:"referenceNumber"`
	CollectAmount    int64  `json:"collectAmount"`
	ProductType      string `json:"productType"`
}

type bookingResponse struct {
	TrackingNumber string `json:"trackingNumber"`
	Message        string `json:"message"`
}

// Book books a shipment.
// POST /api/v1/bookings
func (c *Client) Book(ctx context.Context, request ports.BookingRequest) (ports.BookingConfirmation, error) {
	endpoint, err := url.JoinPath(c.baseURL, "api", "v1", "bookings")
	if err != nil {
		return ports.BookingConfirmation{}, err
	}

	raw, err := json.Marshal(bookingRequest{
		ConsigneeName:    request.ConsigneeName,
		ConsigneePhone:   request.ConsigneePhone,
		ConsigneeAddress: request.ConsigneeAddress,
		CityCode:         request.DestinationCityCode,
		ReferenceNumber:  request.ReferenceNumber,
		CollectAmount:    request.CollectAmount,
		ProductType:      request.ProductType,
	})
	if err != nil {
		return ports.BookingConfirmation{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return ports.BookingConfirmation{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Idempotency-Key", request.IdempotencyKey)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return ports.BookingConfirmation{}, err
	}

	var bookResp bookingResponse
	switch {
	case resp.StatusCode < 300:
		if err = json.NewDecoder(resp.Body).Decode(&bookResp); err != nil {
			return ports.BookingConfirmation{}, err
		}
		if bookResp.TrackingNumber == "" {
			return ports.BookingConfirmation{}, fmt.Errorf("%w: empty tracking number", ErrBookingRejected)
		}
		return ports.BookingConfirmation{TrackingNumber: bookResp.TrackingNumber}, nil

	case resp.StatusCode < 500:
		message := fmt.Sprintf("status %d", resp.StatusCode)
		if err = json.NewDecoder(resp.Body).Decode(&bookResp); err == nil && bookResp.Message != "" {
			message = bookResp.Message
		}
		return ports.BookingConfirmation{}, fmt.Errorf("%w: %s", ErrBookingRejected, message)

	default:
		return ports.BookingConfirmation{}, fmt.Errorf("%w: status %d", ErrCourierUnavailable, resp.StatusCode)
	}
}
