package customer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/stackfood/customers/internal/domain/customer"
	"github.com/stackfood/customers/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService orchestrates the customer lifecycle across the store,
// the identity provider and the event publisher.
//
// Each call is an independent unit of work: all shared mutable state
// lives in the store, and uniqueness is ultimately enforced by the
// store's constraints, not by the pre-checks here.
type CustomerService struct {
	repo     customer.Repository
	identity IdentityGateway
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo customer.Repository, identity IdentityGateway, events shared.EventPublisher, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:     repo,
		identity: identity,
		events:   events,
		logger:   logger,
	}
}

// Create registers a new customer.
//
// Ordering matters: uniqueness checks run first so no identity account is
// provisioned for a doomed request, and provisioning gates persistence so
// a gateway failure never leaves an orphaned local record. The reverse
// window exists: if the store write fails after provisioning succeeded,
// the external account is orphaned. That inconsistency is reported for
// out-of-band reconciliation rather than rolled back in-line, since the
// rollback itself can fail.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if err := customer.ValidateNew(req.Name, req.Email, req.CPF); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByCPF(ctx, req.CPF); err == nil {
		return nil, shared.NewConflictError("customer with this cpf already exists")
	} else if !shared.IsNotFound(err) {
		return nil, shared.NewDependencyError("customer lookup failed", err)
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewConflictError("customer with this email already exists")
	} else if !shared.IsNotFound(err) {
		return nil, shared.NewDependencyError("customer lookup failed", err)
	}

	externalID, err := s.identity.CreateAccount(ctx, ProvisionAccountRequest{
		CPF:           req.CPF,
		Email:         req.Email,
		Name:          req.Name,
		EmailVerified: true,
	})
	if err != nil {
		// A remote account that already exists is a conflict, not a
		// provider outage.
		if shared.IsConflict(err) {
			return nil, err
		}
		return nil, shared.NewDependencyError("identity provisioning failed", err)
	}

	c, err := customer.NewCustomer(req.Name, req.Email, req.CPF, externalID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if shared.IsConflict(err) {
			// Lost the race to a concurrent Create; the store constraint
			// is the backstop for the pre-checks above.
			return nil, err
		}
		// The identity account now exists without a local record.
		s.logger.Error("customer persistence failed after identity provisioning, account orphaned",
			zap.String("cpf", req.CPF),
			zap.String("external_id", externalID),
			zap.Error(err),
		)
		return nil, shared.NewDependencyError("customer persistence failed", err)
	}

	s.publishEvents(ctx, c)

	response := ToCustomerResponse(c)
	return &response, nil
}

// Update changes a customer's name and email
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Update(req.Name, req.Email); err != nil {
		return nil, err
	}

	if err := s.saveUpdate(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	response := ToCustomerResponse(c)
	return &response, nil
}

// GetByID retrieves a customer by id. Absence is not an error: the
// response is nil when no record matches.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, nil
		}
		return nil, shared.NewDependencyError("customer lookup failed", err)
	}

	response := ToCustomerResponse(c)
	return &response, nil
}

// GetByCPF retrieves a customer by CPF with the same absent-result
// contract as GetByID.
func (s *CustomerService) GetByCPF(ctx context.Context, cpf string) (*CustomerResponse, error) {
	c, err := s.repo.FindByCPF(ctx, cpf)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, nil
		}
		return nil, shared.NewDependencyError("customer lookup failed", err)
	}

	response := ToCustomerResponse(c)
	return &response, nil
}

// ListActive returns all active customers ordered by name
func (s *CustomerService) ListActive(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, shared.NewDependencyError("customer lookup failed", err)
	}
	return ToCustomerResponses(customers), nil
}

// Authenticate authenticates a customer by CPF, or issues a guest token
// when the CPF is empty or whitespace-only. Guest sessions are not tied
// to any customer record and never touch the store.
func (s *CustomerService) Authenticate(ctx context.Context, req AuthenticateRequest) (*AuthenticateResponse, error) {
	if strings.TrimSpace(req.CPF) == "" {
		token, err := s.identity.AuthenticateGuest(ctx)
		if err != nil {
			return nil, shared.NewAuthError("guest authentication failed", err)
		}
		return &AuthenticateResponse{
			Token:   token,
			Message: "authenticated as guest",
		}, nil
	}

	c, err := s.repo.FindByCPF(ctx, req.CPF)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewAuthError("customer not found", nil)
		}
		return nil, shared.NewDependencyError("customer lookup failed", err)
	}

	if !c.IsActive() {
		return nil, shared.NewAuthError("customer inactive", nil)
	}

	// The gateway can reject for several internal reasons (bad
	// credentials, unknown account, transport); callers only ever see
	// one auth error kind, with the detail kept in the cause.
	token, err := s.identity.Authenticate(ctx, req.CPF)
	if err != nil {
		return nil, shared.NewAuthError("authentication failed", err)
	}

	response := ToCustomerResponse(c)
	return &AuthenticateResponse{
		Token:    token,
		Customer: &response,
		Message:  "customer authenticated successfully",
	}, nil
}

// Deactivate marks a customer inactive. Deletion is modeled as this
// transition; records are never removed from the store.
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.saveUpdate(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	response := ToCustomerResponse(c)
	return &response, nil
}

// Activate reactivates a customer
func (s *CustomerService) Activate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Activate(); err != nil {
		return nil, err
	}

	if err := s.saveUpdate(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	response := ToCustomerResponse(c)
	return &response, nil
}

func (s *CustomerService) findByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("customer not found")
		}
		return nil, shared.NewDependencyError("customer lookup failed", err)
	}
	return c, nil
}

func (s *CustomerService) saveUpdate(ctx context.Context, c *customer.Customer) error {
	if err := s.repo.Update(ctx, c); err != nil {
		if shared.IsNotFound(err) || shared.IsConflict(err) {
			return err
		}
		return shared.NewDependencyError("customer persistence failed", err)
	}
	return nil
}

// publishEvents hands the aggregate's pending events to the publisher.
// Publishing is best-effort and cannot fail the workflow.
func (s *CustomerService) publishEvents(ctx context.Context, c *customer.Customer) {
	events := c.GetDomainEvents()
	if len(events) > 0 {
		s.events.Publish(ctx, events...)
	}
	c.ClearDomainEvents()
}
