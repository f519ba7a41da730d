package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/stackfood/customers/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated       = "CustomerCreated"
	EventTypeCustomerUpdated       = "CustomerUpdated"
	EventTypeCustomerStatusChanged = "CustomerStatusChanged"
)

// CreatedEvent is published when a new customer is created
type CreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CPF        string    `json:"cpf"`
	ExternalID string    `json:"external_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCreatedEvent creates a new CreatedEvent snapshot of the customer
func NewCreatedEvent(c *Customer) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		Name:            c.Name,
		Email:           c.Email,
		CPF:             c.CPF,
		ExternalID:      c.GetExternalID(),
		CreatedAt:       c.CreatedAt,
	}
}

// UpdatedEvent is published when a customer's name or email changes
type UpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewUpdatedEvent creates a new UpdatedEvent snapshot of the customer
func NewUpdatedEvent(c *Customer) *UpdatedEvent {
	return &UpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		Name:            c.Name,
		Email:           c.Email,
		UpdatedAt:       c.UpdatedAt,
	}
}

// StatusChangedEvent is published when a customer is activated or deactivated
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	CPF        string    `json:"cpf"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
}

// NewStatusChangedEvent creates a new StatusChangedEvent
func NewStatusChangedEvent(c *Customer, oldStatus, newStatus Status) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerStatusChanged, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		CPF:             c.CPF,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
