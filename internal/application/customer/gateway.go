package customer

import "context"

// ProvisionAccountRequest carries the attributes for a new identity
// provider account. The attribute set is fixed and known at design time,
// so this is a plain struct rather than an open-ended attribute map.
type ProvisionAccountRequest struct {
	CPF           string
	Email         string
	Name          string
	EmailVerified bool
}

// IdentityGateway provisions and authenticates accounts in the external
// identity provider. Accounts are keyed by CPF; tokens and account ids
// are opaque to this service.
type IdentityGateway interface {
	// CreateAccount provisions an account and returns its external id.
	// Fails with a conflict error when an account for the CPF already
	// exists remotely.
	CreateAccount(ctx context.Context, req ProvisionAccountRequest) (string, error)

	// Authenticate exchanges a CPF for a token, failing with an auth
	// error on invalid credentials or unknown account.
	Authenticate(ctx context.Context, cpf string) (string, error)

	// AuthenticateGuest returns a token for the fixed, pre-provisioned
	// guest identity.
	AuthenticateGuest(ctx context.Context) (string, error)

	// DeleteAccount removes the account for the CPF. Idempotent: an
	// already-absent account is treated as success.
	DeleteAccount(ctx context.Context, cpf string) error
}
