// Package ledgerapi is the HTTP client for the external inventory ledger
// service. The ledger owns all stock arithmetic; this client only transports
// requests and never retries on its own.
package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/core/ports"
)

const clientTimeout = 10 * time.Second

// ErrLedgerRejected is returned when the ledger refuses an operation with a
// 4xx response.
var ErrLedgerRejected = errors.New("ledger rejected operation")

// ErrLedgerUnavailable is returned on 5xx responses. After a transport
// timeout the effect is unknown; callers must treat both as "not confirmed",
// never as "did not happen".
var ErrLedgerUnavailable = errors.New("ledger unavailable")

// Client talks to the inventory ledger over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a ledger client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: clientTimeout,
		},
		baseURL: baseURL,
	}
}

type releaseReservationRequest struct {
	OrderID string `json:"orderId"`
}

type adjustmentLine struct {
	LineID    string `json:"lineId"`
	VariantID string `json:"variantId"`
	Qty       int    `json:"qty"`
	Condition string `json:"condition,omitempty"`
}

type stockAdjustmentRequest struct {
	OrderID     string           `json:"orderId"`
	FromStatus  string           `json:"fromStatus"`
	ToStatus    string           `json:"toStatus"`
	ReturnLines []adjustmentLine `json:"returnLines,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// ReleaseReservation releases the checkout reservation for an order.
// POST /api/v1/reservations/release
func (c *Client) ReleaseReservation(ctx context.Context, orderID kernel.UUID, idempotencyKey string) error {
	body := releaseReservationRequest{OrderID: orderID.String()}
	return c.post(ctx, "/api/v1/reservations/release", idempotencyKey, body)
}

// AdjustForStatusChange applies the inventory consequence of a status change
// in a single atomic ledger operation.
// POST /api/v1/adjustments/status-change
func (c *Client) AdjustForStatusChange(ctx context.Context, adjustment ports.StockAdjustment) error {
	body := stockAdjustmentRequest{
		OrderID:    adjustment.OrderID.String(),
		FromStatus: adjustment.From.String(),
		ToStatus:   adjustment.To.String(),
	}
	for _, line := range adjustment.ReturnLines {
		body.ReturnLines = append(body.ReturnLines, adjustmentLine{
			LineID:    line.LineID.String(),
			VariantID: line.VariantID.String(),
			Qty:       line.Qty,
			Condition: conditionName(line.Condition),
		})
	}

	return c.post(ctx, "/api/v1/adjustments/status-change", adjustment.IdempotencyKey, body)
}

func (c *Client) post(ctx context.Context, path, idempotencyKey string, body any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode < 500:
		return fmt.Errorf("%w: %s", ErrLedgerRejected, readErrorMessage(resp))
	default:
		return fmt.Errorf("%w: status %d", ErrLedgerUnavailable, resp.StatusCode)
	}
}

func readErrorMessage(resp *http.Response) string {
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Message == "" {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	return errResp.Message
}

func conditionName(condition order.ReturnCondition) string {
	if condition == order.ConditionUnset {
		return ""
	}
	return condition.String()
}
