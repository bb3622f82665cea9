// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"afalstore/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EditRecordRepoFactory provides access to the edit record repository within a transaction.
	EditRecordRepoFactory interface {
		EditRecordRepository() ports.EditRecordRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// EditUoW manages transactions spanning the order aggregate and its
	// append-only edit records.
	EditUoW interface {
		TxManager
		OrderRepoFactory
		EditRecordRepoFactory
	}

	// EditUoWFactory creates new edit unit of work instances.
	EditUoWFactory interface {
		Create() EditUoW
	}
)
