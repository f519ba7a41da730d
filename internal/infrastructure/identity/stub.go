package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	appcustomer "github.com/stackfood/customers/internal/application/customer"
	"github.com/stackfood/customers/internal/domain/shared"
	"go.uber.org/zap"
)

// StubGateway is an in-memory identity gateway for local development and
// environments without a Cognito pool. Tokens are fake and accounts live
// only for the process lifetime.
type StubGateway struct {
	mu       sync.Mutex
	accounts map[string]string
	logger   *zap.Logger
}

// NewStubGateway creates an empty in-memory gateway
func NewStubGateway(logger *zap.Logger) *StubGateway {
	return &StubGateway{
		accounts: make(map[string]string),
		logger:   logger.Named("identity-stub"),
	}
}

// CreateAccount registers the CPF in memory and returns a generated id
func (g *StubGateway) CreateAccount(ctx context.Context, req appcustomer.ProvisionAccountRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.accounts[req.CPF]; ok {
		return "", shared.NewConflictError("identity account for this cpf already exists")
	}

	externalID := uuid.NewString()
	g.accounts[req.CPF] = externalID
	g.logger.Debug("stub account created", zap.String("cpf", req.CPF), zap.String("external_id", externalID))
	return externalID, nil
}

// Authenticate returns a fake token for a known CPF
func (g *StubGateway) Authenticate(ctx context.Context, cpf string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.accounts[cpf]; !ok {
		return "", fmt.Errorf("identity account not found")
	}
	return "stub-token-" + cpf, nil
}

// AuthenticateGuest returns a fixed fake guest token
func (g *StubGateway) AuthenticateGuest(ctx context.Context) (string, error) {
	return "stub-token-guest", nil
}

// DeleteAccount removes the CPF from memory, succeeding when absent
func (g *StubGateway) DeleteAccount(ctx context.Context, cpf string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.accounts, cpf)
	return nil
}

var _ appcustomer.IdentityGateway = (*StubGateway)(nil)
