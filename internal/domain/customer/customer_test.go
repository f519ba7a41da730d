package customer

import (
	"strings"
	"testing"

	"github.com/stackfood/customers/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer_Success(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com", "12345678901", "ext-abc-123")

	require.NoError(t, err)
	assert.Equal(t, "John Doe", c.Name)
	assert.Equal(t, "john@example.com", c.Email)
	assert.Equal(t, "12345678901", c.CPF)
	assert.Equal(t, StatusActive, c.Status)
	assert.True(t, c.IsActive())
	assert.Equal(t, "ext-abc-123", c.GetExternalID())
	assert.Equal(t, 1, c.Version)

	events := c.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCustomerCreated, events[0].EventType())
	assert.Equal(t, c.ID, events[0].AggregateID())
}

func TestNewCustomer_EmptyExternalID(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com", "12345678901", "")

	require.NoError(t, err)
	assert.Nil(t, c.ExternalID)
	assert.Equal(t, "", c.GetExternalID())
}

func TestNewCustomer_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		cname string
		email string
		cpf   string
	}{
		{"empty name", "", "john@example.com", "12345678901"},
		{"whitespace name", "   ", "john@example.com", "12345678901"},
		{"name too long", strings.Repeat("a", 201), "john@example.com", "12345678901"},
		{"empty email", "John Doe", "", "12345678901"},
		{"malformed email", "John Doe", "not-an-email", "12345678901"},
		{"email too long", "John Doe", strings.Repeat("a", 195) + "@a.com", "12345678901"},
		{"empty cpf", "John Doe", "john@example.com", ""},
		{"whitespace cpf", "John Doe", "john@example.com", "   "},
		{"cpf too long", "John Doe", "john@example.com", "123.456.789-012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.cname, tt.email, tt.cpf, "")
			assert.Nil(t, c)
			assert.True(t, shared.IsValidation(err))
		})
	}
}

func TestValidateNew_MatchesConstructor(t *testing.T) {
	assert.NoError(t, ValidateNew("John Doe", "john@example.com", "12345678901"))
	assert.True(t, shared.IsValidation(ValidateNew("", "john@example.com", "12345678901")))
	assert.True(t, shared.IsValidation(ValidateNew("John Doe", "bad", "12345678901")))
	assert.True(t, shared.IsValidation(ValidateNew("John Doe", "john@example.com", "")))
}

func TestCustomer_Update(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com", "12345678901", "ext-abc-123")
	require.NoError(t, err)
	c.ClearDomainEvents()
	createdAt := c.CreatedAt

	err = c.Update("John Updated", "john.updated@example.com")

	require.NoError(t, err)
	assert.Equal(t, "John Updated", c.Name)
	assert.Equal(t, "john.updated@example.com", c.Email)
	assert.Equal(t, "12345678901", c.CPF)
	assert.Equal(t, createdAt, c.CreatedAt)
	assert.Equal(t, 2, c.Version)

	events := c.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCustomerUpdated, events[0].EventType())
}

func TestCustomer_Update_InvalidEmail(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com", "12345678901", "")
	require.NoError(t, err)

	err = c.Update("John Doe", "broken")

	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "john@example.com", c.Email)
	assert.Equal(t, 1, c.Version)
}

func TestCustomer_SetExternalID(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com", "12345678901", "")
	require.NoError(t, err)

	require.NoError(t, c.SetExternalID("ext-late-999"))
	assert.Equal(t, "ext-late-999", c.GetExternalID())

	err = c.SetExternalID("  ")
	assert.True(t, shared.IsValidation(err))
}

func TestCustomer_Deactivate(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com", "12345678901", "")
	require.NoError(t, err)
	c.ClearDomainEvents()

	require.NoError(t, c.Deactivate())
	assert.Equal(t, StatusInactive, c.Status)
	assert.False(t, c.IsActive())

	events := c.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCustomerStatusChanged, events[0].EventType())

	err = c.Deactivate()
	assert.True(t, shared.IsValidation(err))
}

func TestCustomer_Activate(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com", "12345678901", "")
	require.NoError(t, err)
	require.NoError(t, c.Deactivate())
	c.ClearDomainEvents()

	require.NoError(t, c.Activate())
	assert.Equal(t, StatusActive, c.Status)

	err = c.Activate()
	assert.True(t, shared.IsValidation(err))
}
