package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for customers.
//
// Lookups return shared.ErrNotFound when no record matches. Uniqueness of
// CPF and email is guaranteed atomically by the storage layer (unique
// indexes); the service's pre-checks exist only for fast, specific error
// messages, so Create must translate a constraint violation into the same
// conflict error the pre-check would have produced.
type Repository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByCPF finds a customer by CPF
	FindByCPF(ctx context.Context, cpf string) (*Customer, error)

	// FindByEmail finds a customer by email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindByExternalID finds a customer by its identity provider account id
	FindByExternalID(ctx context.Context, externalID string) (*Customer, error)

	// FindActive returns all active customers ordered by name ascending
	FindActive(ctx context.Context) ([]Customer, error)

	// Create persists a fully constructed customer. A concurrent uniqueness
	// violation on cpf or email surfaces as a conflict error.
	Create(ctx context.Context, c *Customer) error

	// Update overwrites the full record keyed by id, returning
	// shared.ErrNotFound when the id no longer exists.
	Update(ctx context.Context, c *Customer) error
}
