package ports

import (
	"context"

	"userstore/domain/user"
)

// UserRepository defines the interface for user persistence.
// This is a port in hexagonal architecture - the handlers don't know about the implementation
type UserRepository interface {
	// List retrieves every user in the table, in store-delivered order
	List(ctx context.Context) ([]user.User, error)

	// Create persists a new user and returns it with its generated ID
	Create(ctx context.Context, req user.CreateUserRequest) (*user.User, error)

	// GetByID retrieves a single user by primary key
	GetByID(ctx context.Context, id string) (*user.User, error)

	// Update mutates only the fields present in the request.
	// An empty request is a no-op and returns nil without touching the store.
	Update(ctx context.Context, id string, req user.UpdateUserRequest) error

	// Delete removes the row for the given ID
	Delete(ctx context.Context, id string) error
}
