// Package courier models the courier partner side of the order lifecycle:
// integration types, city mappings and the append-only API audit log.
package courier
