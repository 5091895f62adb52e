// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parceltrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	CommentRepoFactory interface {
		CommentRepository() ports.CommentRepository
	}

	AddressBookRepoFactory interface {
		AddressBookRepository() ports.AddressBookRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// CommentUoW reads the shipment a comment belongs to and appends the comment.
	CommentUoW interface {
		TxManager
		ShipmentRepoFactory
		CommentRepoFactory
	}

	CommentUoWFactory interface {
		Create() CommentUoW
	}

	AddressBookUoW interface {
		TxManager
		AddressBookRepoFactory
	}

	AddressBookUoWFactory interface {
		Create() AddressBookUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}
)
