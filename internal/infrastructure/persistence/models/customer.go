package models

import (
	"github.com/stackfood/customers/internal/domain/customer"
	"github.com/stackfood/customers/internal/domain/shared"
)

// CustomerModel is the persistence model for the Customer domain entity.
// CPF and email carry unique indexes; they are the atomic backstop for
// the service-level duplicate pre-checks.
type CustomerModel struct {
	AggregateModel
	Name       string          `gorm:"type:varchar(200);not null"`
	Email      string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_customers_email"`
	CPF        string          `gorm:"type:varchar(14);not null;uniqueIndex:idx_customers_cpf"`
	ExternalID *string         `gorm:"type:varchar(100);index"`
	Status     customer.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:       m.Name,
		Email:      m.Email,
		CPF:        m.CPF,
		ExternalID: m.ExternalID,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.CPF = c.CPF
	m.ExternalID = c.ExternalID
	m.Status = c.Status
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
