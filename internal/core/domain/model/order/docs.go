// Package order contains the order aggregate and its lifecycle model.
//
// An order is created by checkout in pending status and thereafter mutated
// only through three paths: the status dispatcher (status field), the edit
// coordinator (every other mutable field) and the booking guard (tracking
// number and booking timestamp). The aggregate enforces the structural
// invariants — at least one line, non-negative amounts, strictly increasing
// edit version, financial lock once booked — while transition legality
// between statuses lives in services.TransitionValidator.
package order
