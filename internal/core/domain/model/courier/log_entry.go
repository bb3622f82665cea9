package courier

import (
	"errors"
	"time"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/pkg/errs"
)

// ErrLogEntryIsNotConstructed is returned when a LogEntry was not created
// through the NewLogEntry factory method.
var ErrLogEntryIsNotConstructed = errors.New("LogEntry must be created via NewLogEntry constructor")

// LogEntry is the append-only audit record of one courier API attempt.
// An entry is written for every attempt, success or failure, so the partial
// failure window between a successful booking and the local save is always
// reconstructible from the log.
type LogEntry struct {
	id          kernel.UUID
	courierType Type
	orderID     kernel.UUID
	endpoint    string
	request     string
	response    string
	success     bool
	errorText   string
	createdAt   time.Time

	isConstructed bool
}

// NewLogEntry creates an audit entry for a courier API attempt.
func NewLogEntry(
	id kernel.UUID,
	courierType Type,
	orderID kernel.UUID,
	endpoint string,
	request string,
	response string,
	success bool,
	errorText string,
	createdAt time.Time,
) (*LogEntry, error) {
	entry := &LogEntry{
		request:       request,
		response:      response,
		success:       success,
		errorText:     errorText,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := courierType.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if endpoint == "" {
		return nil, errs.NewValueIsRequiredError("endpoint")
	}

	entry.id = id
	entry.courierType = courierType
	entry.orderID = orderID
	entry.endpoint = endpoint
	return entry, nil
}

// Validate ensures the LogEntry was built via its constructor.
func (e *LogEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrLogEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *LogEntry) ID() kernel.UUID { return e.id }

// CourierType returns the integration that was called.
func (e *LogEntry) CourierType() Type { return e.courierType }

// OrderID returns the order the attempt belonged to.
func (e *LogEntry) OrderID() kernel.UUID { return e.orderID }

// Endpoint returns the called endpoint path.
func (e *LogEntry) Endpoint() string { return e.endpoint }

// Request returns the serialized request payload.
func (e *LogEntry) Request() string { return e.request }

// Response returns the serialized response payload, empty on transport errors.
func (e *LogEntry) Response() string { return e.response }

// Success reports whether the attempt succeeded.
func (e *LogEntry) Success() bool { return e.success }

// ErrorText returns the error message of a failed attempt, empty on success.
func (e *LogEntry) ErrorText() string { return e.errorText }

// CreatedAt returns when the attempt was made.
func (e *LogEntry) CreatedAt() time.Time { return e.createdAt }
