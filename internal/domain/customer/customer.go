package customer

import (
	"regexp"
	"strings"
	"time"

	"github.com/stackfood/customers/internal/domain/shared"
)

// Status represents the lifecycle status of a customer
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer represents a registered customer of the ordering platform.
// It is the aggregate root for customer lifecycle operations.
//
// CPF is the customer's tax identifier and doubles as the stable key for
// the account provisioned in the external identity provider. It is set at
// construction and never changes. ExternalID holds the identity provider's
// opaque account id and is nil until provisioning succeeds.
type Customer struct {
	shared.BaseAggregateRoot
	Name       string
	Email      string
	CPF        string
	ExternalID *string
	Status     Status
}

// ValidateNew checks the field invariants for a new customer. Callers use
// it to reject bad input before provisioning anything externally.
func ValidateNew(name, email, cpf string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	return validateCPF(cpf)
}

// NewCustomer creates a new active customer with required fields.
// externalID may be empty when the identity account is provisioned later.
func NewCustomer(name, email, cpf, externalID string) (*Customer, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateCPF(cpf); err != nil {
		return nil, err
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		CPF:               cpf,
		Status:            StatusActive,
	}
	if externalID != "" {
		c.ExternalID = &externalID
	}

	c.AddDomainEvent(NewCreatedEvent(c))

	return c, nil
}

// Update updates the customer's name and email.
// CPF and ExternalID are never touched by Update.
func (c *Customer) Update(name, email string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	c.Name = name
	c.Email = email
	c.UpdatedAt = time.Now().UTC()
	c.IncrementVersion()

	c.AddDomainEvent(NewUpdatedEvent(c))

	return nil
}

// SetExternalID records the identity provider account id for this customer
func (c *Customer) SetExternalID(externalID string) error {
	if strings.TrimSpace(externalID) == "" {
		return shared.NewValidationError("external identity id cannot be empty")
	}

	c.ExternalID = &externalID
	c.UpdatedAt = time.Now().UTC()
	c.IncrementVersion()

	return nil
}

// Activate reactivates the customer
func (c *Customer) Activate() error {
	if c.Status == StatusActive {
		return shared.NewValidationError("customer is already active")
	}

	c.Status = StatusActive
	c.UpdatedAt = time.Now().UTC()
	c.IncrementVersion()

	c.AddDomainEvent(NewStatusChangedEvent(c, StatusInactive, StatusActive))

	return nil
}

// Deactivate marks the customer inactive. Customers are never physically
// deleted; deletion is modeled as this state transition.
func (c *Customer) Deactivate() error {
	if c.Status == StatusInactive {
		return shared.NewValidationError("customer is already inactive")
	}

	c.Status = StatusInactive
	c.UpdatedAt = time.Now().UTC()
	c.IncrementVersion()

	c.AddDomainEvent(NewStatusChangedEvent(c, StatusActive, StatusInactive))

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// GetExternalID returns the external identity id, or "" when unset
func (c *Customer) GetExternalID() string {
	if c.ExternalID == nil {
		return ""
	}
	return *c.ExternalID
}

// Validation functions

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("customer name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return shared.NewValidationError("customer email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewValidationError("customer email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("invalid email format")
	}
	return nil
}

func validateCPF(cpf string) error {
	if strings.TrimSpace(cpf) == "" {
		return shared.NewValidationError("customer cpf cannot be empty")
	}
	if len(cpf) > 14 {
		return shared.NewValidationError("customer cpf cannot exceed 14 characters")
	}
	return nil
}
