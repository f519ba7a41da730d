package customer

import (
	"time"

	"github.com/stackfood/customers/internal/domain/customer"
)

// CreateCustomerRequest represents a request to register a new customer
type CreateCustomerRequest struct {
	Name  string
	Email string
	CPF   string
}

// UpdateCustomerRequest represents a request to update a customer's
// mutable fields. CPF and the external identity id are not updatable.
type UpdateCustomerRequest struct {
	Name  string
	Email string
}

// AuthenticateRequest represents an authentication request. An empty or
// whitespace-only CPF selects the guest branch.
type AuthenticateRequest struct {
	CPF string
}

// CustomerResponse represents a customer in service responses
type CustomerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CPF        string    `json:"cpf"`
	ExternalID *string   `json:"external_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AuthenticateResponse carries the token issued by the identity provider
// plus the customer snapshot (nil for guest sessions).
type AuthenticateResponse struct {
	Token    string            `json:"token"`
	Customer *CustomerResponse `json:"customer,omitempty"`
	Message  string            `json:"message"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Email:      c.Email,
		CPF:        c.CPF,
		ExternalID: c.ExternalID,
		Active:     c.IsActive(),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []customer.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
