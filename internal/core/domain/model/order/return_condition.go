package order

// ReturnCondition classifies the physical condition of a returned line,
// informing restock-vs-scrap disposition inside the ledger service.
type ReturnCondition int

const (
	// ConditionUnset means no condition was captured for the line.
	ConditionUnset ReturnCondition = iota

	// Resellable means the item can go back into sellable stock.
	Resellable

	// NotResellable means the item must be scrapped or set aside.
	NotResellable
)

// ParseReturnCondition maps a raw flag to a ReturnCondition.
// Unrecognized or empty flags pass through as ConditionUnset rather than
// failing the request.
func ParseReturnCondition(s string) ReturnCondition {
	switch s {
	case "resellable":
		return Resellable
	case "not_resellable":
		return NotResellable
	default:
		return ConditionUnset
	}
}

// String returns the wire name of the condition.
func (c ReturnCondition) String() string {
	switch c {
	case Resellable:
		return "resellable"
	case NotResellable:
		return "not_resellable"
	default:
		return "unset"
	}
}
