package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcustomer "github.com/stackfood/customers/internal/application/customer"
	"github.com/stackfood/customers/internal/domain/customer"
	"github.com/stackfood/customers/internal/domain/shared"
	"github.com/stackfood/customers/internal/interfaces/http/dto"
	"github.com/stackfood/customers/internal/interfaces/http/middleware"
	"github.com/stackfood/customers/internal/interfaces/http/router"
)

// === Mocks ===

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCPF(ctx context.Context, cpf string) (*customer.Customer, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByExternalID(ctx context.Context, externalID string) (*customer.Customer, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindActive(ctx context.Context) ([]customer.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockIdentityGateway struct {
	mock.Mock
}

func (m *MockIdentityGateway) CreateAccount(ctx context.Context, req appcustomer.ProvisionAccountRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityGateway) Authenticate(ctx context.Context, cpf string) (string, error) {
	args := m.Called(ctx, cpf)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityGateway) AuthenticateGuest(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityGateway) DeleteAccount(ctx context.Context, cpf string) error {
	args := m.Called(ctx, cpf)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) {
	m.Called(ctx, events)
}

// === Test setup ===

type testEnv struct {
	engine    *gin.Engine
	repo      *MockCustomerRepository
	identity  *MockIdentityGateway
	publisher *MockEventPublisher
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	repo := new(MockCustomerRepository)
	identity := new(MockIdentityGateway)
	publisher := new(MockEventPublisher)
	service := appcustomer.NewCustomerService(repo, identity, publisher, zap.NewNop())

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.NewRouter(engine).
		Register(NewCustomerHandler(service)).
		Setup()

	return &testEnv{
		engine:    engine,
		repo:      repo,
		identity:  identity,
		publisher: publisher,
	}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func activeCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer("John Doe", "john@example.com", "12345678901", "ext-abc-123")
	require.NoError(t, err)
	c.ClearDomainEvents()
	return c
}

// === Create ===

func TestCustomerHandler_Create_Success(t *testing.T) {
	env := newTestEnv()

	env.repo.On("FindByCPF", mock.Anything, "12345678901").Return(nil, shared.ErrNotFound)
	env.repo.On("FindByEmail", mock.Anything, "john@example.com").Return(nil, shared.ErrNotFound)
	env.identity.On("CreateAccount", mock.Anything, mock.Anything).Return("ext-abc-123", nil)
	env.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	env.publisher.On("Publish", mock.Anything, mock.AnythingOfType("[]shared.DomainEvent")).Return()

	rec := env.request(t, http.MethodPost, "/api/v1/customers", gin.H{
		"name":  "John Doe",
		"email": "john@example.com",
		"cpf":   "12345678901",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "John Doe", data["name"])
	assert.Equal(t, "ext-abc-123", data["external_id"])
	assert.Equal(t, true, data["active"])
	env.repo.AssertExpectations(t)
}

func TestCustomerHandler_Create_MissingFields(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodPost, "/api/v1/customers", gin.H{
		"name": "John Doe",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	env.repo.AssertNotCalled(t, "FindByCPF", mock.Anything, mock.Anything)
}

func TestCustomerHandler_Create_DuplicateCPF(t *testing.T) {
	env := newTestEnv()

	existing := activeCustomer(t)
	env.repo.On("FindByCPF", mock.Anything, "12345678901").Return(existing, nil)

	rec := env.request(t, http.MethodPost, "/api/v1/customers", gin.H{
		"name":  "John Doe",
		"email": "john@example.com",
		"cpf":   "12345678901",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, shared.CodeConflict, resp.Error.Code)
	env.identity.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
}

func TestCustomerHandler_Create_ProviderDown(t *testing.T) {
	env := newTestEnv()

	env.repo.On("FindByCPF", mock.Anything, "12345678901").Return(nil, shared.ErrNotFound)
	env.repo.On("FindByEmail", mock.Anything, "john@example.com").Return(nil, shared.ErrNotFound)
	env.identity.On("CreateAccount", mock.Anything, mock.Anything).
		Return("", shared.NewDependencyError("identity provider unavailable", assert.AnError))

	rec := env.request(t, http.MethodPost, "/api/v1/customers", gin.H{
		"name":  "John Doe",
		"email": "john@example.com",
		"cpf":   "12345678901",
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, shared.CodeDependency, resp.Error.Code)
	env.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// === Lookups ===

func TestCustomerHandler_GetByID_Success(t *testing.T) {
	env := newTestEnv()

	existing := activeCustomer(t)
	env.repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

	rec := env.request(t, http.MethodGet, "/api/v1/customers/"+existing.ID.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, existing.ID.String(), data["id"])
}

func TestCustomerHandler_GetByID_NotFound(t *testing.T) {
	env := newTestEnv()

	id := uuid.New()
	env.repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	rec := env.request(t, http.MethodGet, "/api/v1/customers/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, shared.CodeNotFound, resp.Error.Code)
}

func TestCustomerHandler_GetByID_InvalidID(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodGet, "/api/v1/customers/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCustomerHandler_GetByCPF_NotFound(t *testing.T) {
	env := newTestEnv()

	env.repo.On("FindByCPF", mock.Anything, "99999999999").Return(nil, shared.ErrNotFound)

	rec := env.request(t, http.MethodGet, "/api/v1/customers/cpf/99999999999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerHandler_ListActive(t *testing.T) {
	env := newTestEnv()

	existing := activeCustomer(t)
	env.repo.On("FindActive", mock.Anything).Return([]customer.Customer{*existing}, nil)

	rec := env.request(t, http.MethodGet, "/api/v1/customers", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	list := resp.Data.([]any)
	assert.Len(t, list, 1)
}

// === Update ===

func TestCustomerHandler_Update_InvalidEmail(t *testing.T) {
	env := newTestEnv()

	existing := activeCustomer(t)
	env.repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

	rec := env.request(t, http.MethodPut, "/api/v1/customers/"+existing.ID.String(), gin.H{
		"name":  "John Doe",
		"email": "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, shared.CodeValidation, resp.Error.Code)
	env.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// === Authenticate ===

func TestCustomerHandler_Authenticate_Guest(t *testing.T) {
	env := newTestEnv()

	env.identity.On("AuthenticateGuest", mock.Anything).Return("guest-token", nil)

	rec := env.request(t, http.MethodPost, "/api/v1/customers/auth", gin.H{"cpf": ""})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "guest-token", data["token"])
	assert.Nil(t, data["customer"])
	env.repo.AssertNotCalled(t, "FindByCPF", mock.Anything, mock.Anything)
}

func TestCustomerHandler_Authenticate_UnknownCPF(t *testing.T) {
	env := newTestEnv()

	env.repo.On("FindByCPF", mock.Anything, "99999999999").Return(nil, shared.ErrNotFound)

	rec := env.request(t, http.MethodPost, "/api/v1/customers/auth", gin.H{"cpf": "99999999999"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, shared.CodeUnauthorized, resp.Error.Code)
}

// === Deactivate / Activate ===

func TestCustomerHandler_Deactivate_Success(t *testing.T) {
	env := newTestEnv()

	existing := activeCustomer(t)
	env.repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	env.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	env.publisher.On("Publish", mock.Anything, mock.AnythingOfType("[]shared.DomainEvent")).Return()

	rec := env.request(t, http.MethodDelete, "/api/v1/customers/"+existing.ID.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, false, data["active"])
	env.identity.AssertNotCalled(t, "DeleteAccount", mock.Anything, mock.Anything)
}

func TestCustomerHandler_Deactivate_AlreadyInactive(t *testing.T) {
	env := newTestEnv()

	existing := activeCustomer(t)
	require.NoError(t, existing.Deactivate())
	existing.ClearDomainEvents()
	env.repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

	rec := env.request(t, http.MethodDelete, "/api/v1/customers/"+existing.ID.String(), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, shared.CodeValidation, resp.Error.Code)
}

// === Request ID propagation ===

func TestRequestID_EchoedOnErrors(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/not-a-uuid", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	resp := decodeResponse(t, rec)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}
