package scylla

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"userstore/application/ports"
	"userstore/domain/user"
	apperrors "userstore/pkg/errors"
)

// UserRepository is the ScyllaDB-backed implementation of
// ports.UserRepository. It owns statement construction and row
// materialization; handlers only see domain types and the error taxonomy.
type UserRepository struct {
	session    *gocql.Session
	statements Statements
	timeout    time.Duration
	logger     *zap.Logger
}

var _ ports.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a user repository on the shared session.
func NewUserRepository(session *gocql.Session, statements Statements, timeout time.Duration, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		session:    session,
		statements: statements,
		timeout:    timeout,
		logger:     logger,
	}
}

// List retrieves every user, streaming rows from the store one at a time
// rather than materializing the result set driver-side.
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	iter := r.session.Query(r.statements.SelectAll()).WithContext(ctx).Iter()
	users, err := scanUsers(iter)
	if err != nil {
		return nil, r.storeFault("list users", err)
	}
	return users, nil
}

// Create persists a new user under a freshly generated identifier and
// returns the stored record.
func (r *UserRepository) Create(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	u := &user.User{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Email: req.Email,
	}

	err := r.session.Query(r.statements.Insert(), u.ID, u.Name, u.Email).
		WithContext(ctx).
		Exec()
	if err != nil {
		return nil, r.storeFault("create user", err)
	}

	r.logger.Debug("user created", zap.String("id", u.ID))
	return u, nil
}

// GetByID retrieves a single user. An empty result is reported as
// not-found, never as a store fault or a zero-valued user.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	iter := r.session.Query(r.statements.SelectByID(), id).WithContext(ctx).Iter()
	u, err := scanUser(iter)
	if err != nil {
		return nil, r.storeFault("get user", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user")
	}
	return u, nil
}

// Update mutates only the fields present in req. An empty payload is a
// defined no-op: the store is never contacted and the call succeeds.
// Row existence is not checked; the store treats the write as an upsert
// and does not report affected rows.
func (r *UserRepository) Update(ctx context.Context, id string, req user.UpdateUserRequest) error {
	stmt, values, ok := r.statements.Update(id, req)
	if !ok {
		r.logger.Debug("empty update payload, skipping store call", zap.String("id", id))
		return nil
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	if err := r.session.Query(stmt, values...).WithContext(ctx).Exec(); err != nil {
		return r.storeFault("update user", err)
	}
	return nil
}

// Delete removes the row for the given id. Deleting an absent row succeeds;
// the store does not report affected rows for deletes.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	err := r.session.Query(r.statements.DeleteByID(), id).WithContext(ctx).Exec()
	if err != nil {
		return r.storeFault("delete user", err)
	}
	return nil
}

// opContext bounds a single store round-trip with the configured timeout.
func (r *UserRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// storeFault maps a driver error onto the service taxonomy. Deadline expiry
// surfaces as a timeout fault, everything else as a database fault.
func (r *UserRepository) storeFault(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, gocql.ErrTimeoutNoResponse) {
		return apperrors.NewTimeoutError(operation)
	}
	return apperrors.NewDatabaseError(operation, err)
}
