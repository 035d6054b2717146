package user

// User is the record served by the API.
// The ID is generated server-side on registration and is never accepted
// from clients; it is the sole lookup key for a user row.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUserRequest is the payload for registering a new user
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserRequest carries a partial update. A nil field means "leave
// unchanged" - pointer presence is what distinguishes an omitted field
// from an empty one.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil
}
