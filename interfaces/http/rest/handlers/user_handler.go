package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"userstore/application/ports"
	"userstore/domain/user"
	"userstore/pkg/common"
	apperrors "userstore/pkg/errors"
	"userstore/pkg/validate"
)

// maxBodyBytes bounds request bodies; payloads here are two short strings.
const maxBodyBytes = 1 << 20

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	repo   ports.UserRepository
	errs   *apperrors.ErrorHandler
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo ports.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		repo:   repo,
		errs:   apperrors.NewErrorHandler(logger),
		logger: logger,
	}
}

// RegisterUserResponse represents the response for registering a user
type RegisterUserResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ConfirmationResponse represents the response for update and delete
type ConfirmationResponse struct {
	Message string `json:"message"`
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, users)
}

// RegisterUser handles POST /register
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := validate.Struct(req); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	created, err := h.repo.Create(r.Context(), req)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, RegisterUserResponse{
		ID:      created.ID,
		Message: "user " + created.ID + " created successfully",
	})
}

// GetUser handles GET /users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.userID(r)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	u, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, u)
}

// UpdateUser handles PATCH /update/{userID}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.userID(r)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	var req user.UpdateUserRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	// An update carrying no fields is a defined no-op: report success
	// without touching the store.
	if req.IsEmpty() {
		common.RespondJSON(w, http.StatusOK, ConfirmationResponse{
			Message: "user " + id + " unchanged",
		})
		return
	}

	if err := h.repo.Update(r.Context(), id, req); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, ConfirmationResponse{
		Message: "user " + id + " updated successfully",
	})
}

// DeleteUser handles DELETE /delete/{userID}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.userID(r)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, ConfirmationResponse{
		Message: "user " + id + " deleted successfully",
	})
}

// userID parses and validates the {userID} path parameter. The canonical
// string form of the parsed value is used downstream so lookups are
// insensitive to case differences in the hex encoding.
func (h *UserHandler) userID(r *http.Request) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return "", apperrors.NewValidationError("invalid user id format")
	}
	return id.String(), nil
}
