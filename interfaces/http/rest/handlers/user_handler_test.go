package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"userstore/domain/user"
	apperrors "userstore/pkg/errors"
)

// MockUserRepository is a testify mock of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, req user.UpdateUserRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newTestRouter mounts the handler on the service's route table.
func newTestRouter(repo *MockUserRepository) *chi.Mux {
	h := NewUserHandler(repo, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/users", h.ListUsers)
	r.Post("/register", h.RegisterUser)
	r.Get("/users/{userID}", h.GetUser)
	r.Patch("/update/{userID}", h.UpdateUser)
	r.Delete("/delete/{userID}", h.DeleteUser)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestListUsers_Success(t *testing.T) {
	// Arrange
	repo := new(MockUserRepository)
	repo.On("List", mock.Anything).Return([]user.User{
		{ID: "id-1", Name: "Alice", Email: "alice@example.com"},
		{ID: "id-2", Name: "Bob", Email: "bob@example.com"},
	}, nil)
	router := newTestRouter(repo)

	// Act
	rec := doRequest(t, router, http.MethodGet, "/users", nil)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])
	data := envelope["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Alice", first["name"])
	repo.AssertExpectations(t)
}

func TestListUsers_Empty(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("List", mock.Anything).Return([]user.User{}, nil)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/users", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestListUsers_StoreFault(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("List", mock.Anything).
		Return(nil, apperrors.NewDatabaseError("list users", assert.AnError))
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/users", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Error)
	assert.Equal(t, string(apperrors.ErrorTypeDatabase), body.Type)
}

func TestRegisterUser_Success(t *testing.T) {
	// Arrange
	repo := new(MockUserRepository)
	created := &user.User{ID: uuid.New().String(), Name: "Alice", Email: "alice@example.com"}
	repo.On("Create", mock.Anything, user.CreateUserRequest{Name: "Alice", Email: "alice@example.com"}).
		Return(created, nil)
	router := newTestRouter(repo)

	// Act
	rec := doRequest(t, router, http.MethodPost, "/register",
		map[string]string{"name": "Alice", "email": "alice@example.com"})

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, created.ID, data["id"])
	repo.AssertExpectations(t)
}

func TestRegisterUser_MalformedBody(t *testing.T) {
	repo := new(MockUserRepository)
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterUser_MissingEmail(t *testing.T) {
	repo := new(MockUserRepository)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPost, "/register", map[string]string{"name": "Alice"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(apperrors.ErrorTypeValidation), body.Type)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterUser_StoreFault(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewDatabaseError("create user", assert.AnError))
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPost, "/register",
		map[string]string{"name": "Alice", "email": "alice@example.com"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetUser_Success(t *testing.T) {
	// Arrange
	repo := new(MockUserRepository)
	id := uuid.New().String()
	repo.On("GetByID", mock.Anything, id).
		Return(&user.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil)
	router := newTestRouter(repo)

	// Act
	rec := doRequest(t, router, http.MethodGet, "/users/"+id, nil)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, id, data["id"])
	assert.Equal(t, "Alice", data["name"])
	assert.Equal(t, "alice@example.com", data["email"])
	repo.AssertExpectations(t)
}

func TestGetUser_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	id := uuid.New().String()
	repo.On("GetByID", mock.Anything, id).Return(nil, apperrors.NewNotFoundError("user"))
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/users/"+id, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(apperrors.ErrorTypeNotFound), body.Type)
}

func TestGetUser_InvalidID(t *testing.T) {
	repo := new(MockUserRepository)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/users/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateUser_NameOnly(t *testing.T) {
	// Arrange
	repo := new(MockUserRepository)
	id := uuid.New().String()
	repo.On("Update", mock.Anything, id, mock.MatchedBy(func(req user.UpdateUserRequest) bool {
		return req.Name != nil && *req.Name == "Bob" && req.Email == nil
	})).Return(nil)
	router := newTestRouter(repo)

	// Act
	rec := doRequest(t, router, http.MethodPatch, "/update/"+id, map[string]string{"name": "Bob"})

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestUpdateUser_EmptyPayloadIsNoOp(t *testing.T) {
	repo := new(MockUserRepository)
	id := uuid.New().String()
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPatch, "/update/"+id, map[string]string{})

	// An update with neither field present succeeds without a store call.
	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_InvalidID(t *testing.T) {
	repo := new(MockUserRepository)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPatch, "/update/not-a-uuid", map[string]string{"name": "Bob"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser_StoreFault(t *testing.T) {
	repo := new(MockUserRepository)
	id := uuid.New().String()
	repo.On("Update", mock.Anything, id, mock.Anything).
		Return(apperrors.NewDatabaseError("update user", assert.AnError))
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPatch, "/update/"+id, map[string]string{"name": "Bob"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeleteUser_Success(t *testing.T) {
	repo := new(MockUserRepository)
	id := uuid.New().String()
	repo.On("Delete", mock.Anything, id).Return(nil)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodDelete, "/delete/"+id, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestDeleteUser_InvalidID(t *testing.T) {
	repo := new(MockUserRepository)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodDelete, "/delete/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
