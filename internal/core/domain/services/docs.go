// Package services contains stateless domain services for the order core.
// TransitionValidator holds the one authoritative status-transition rule
// table; keeping it here, out of the aggregate, prevents the rule drift the
// legacy system suffered from carrying two near-duplicate copies.
package services
