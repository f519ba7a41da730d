package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	appcustomer "github.com/stackfood/customers/internal/application/customer"
	"github.com/stackfood/customers/internal/domain/shared"
	"github.com/stackfood/customers/internal/infrastructure/config"
	"go.uber.org/zap"
)

// CognitoAPI is the subset of the Cognito identity provider client used
// by the gateway.
type CognitoAPI interface {
	AdminCreateUser(ctx context.Context, params *cognitoidentityprovider.AdminCreateUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, params *cognitoidentityprovider.AdminSetUserPasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error)
	AdminDeleteUser(ctx context.Context, params *cognitoidentityprovider.AdminDeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminDeleteUserOutput, error)
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

// CognitoGateway provisions and authenticates customer accounts against an
// AWS Cognito user pool. Accounts are keyed by CPF as the Cognito username
// and all share the pool's configured default password; the token returned
// to callers is the Cognito ID token.
type CognitoGateway struct {
	client CognitoAPI
	cfg    config.CognitoConfig
	logger *zap.Logger
}

// NewCognitoGateway creates a gateway backed by the given Cognito client
func NewCognitoGateway(client CognitoAPI, cfg config.CognitoConfig, logger *zap.Logger) *CognitoGateway {
	return &CognitoGateway{
		client: client,
		cfg:    cfg,
		logger: logger.Named("cognito"),
	}
}

// CreateAccount provisions a Cognito user for the CPF. The welcome message
// is suppressed and the password is immediately made permanent so the
// account is usable without a reset flow.
func (g *CognitoGateway) CreateAccount(ctx context.Context, req appcustomer.ProvisionAccountRequest) (string, error) {
	emailVerified := "false"
	if req.EmailVerified {
		emailVerified = "true"
	}

	out, err := g.client.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId: aws.String(g.cfg.UserPoolID),
		Username:   aws.String(req.CPF),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(req.Email)},
			{Name: aws.String("name"), Value: aws.String(req.Name)},
			{Name: aws.String("email_verified"), Value: aws.String(emailVerified)},
		},
		TemporaryPassword: aws.String(g.cfg.DefaultPassword),
		MessageAction:     types.MessageActionTypeSuppress,
	})
	if err != nil {
		var exists *types.UsernameExistsException
		if errors.As(err, &exists) {
			return "", shared.NewConflictError("identity account for this cpf already exists")
		}
		return "", fmt.Errorf("admin create user: %w", err)
	}

	if _, err := g.client.AdminSetUserPassword(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(g.cfg.UserPoolID),
		Username:   aws.String(req.CPF),
		Password:   aws.String(g.cfg.DefaultPassword),
		Permanent:  true,
	}); err != nil {
		return "", fmt.Errorf("admin set user password: %w", err)
	}

	return externalIDFromUser(out.User, req.CPF), nil
}

// Authenticate exchanges the CPF for a Cognito ID token
func (g *CognitoGateway) Authenticate(ctx context.Context, cpf string) (string, error) {
	return g.initiateAuth(ctx, cpf, g.cfg.DefaultPassword)
}

// AuthenticateGuest issues an ID token for the fixed guest account
func (g *CognitoGateway) AuthenticateGuest(ctx context.Context) (string, error) {
	return g.initiateAuth(ctx, g.cfg.GuestUsername, g.cfg.GuestPassword)
}

// DeleteAccount removes the Cognito user for the CPF. An already-absent
// user counts as success so the operation stays idempotent.
func (g *CognitoGateway) DeleteAccount(ctx context.Context, cpf string) error {
	_, err := g.client.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(g.cfg.UserPoolID),
		Username:   aws.String(cpf),
	})
	if err != nil {
		var notFound *types.UserNotFoundException
		if errors.As(err, &notFound) {
			g.logger.Debug("identity account already absent", zap.String("cpf", cpf))
			return nil
		}
		return fmt.Errorf("admin delete user: %w", err)
	}
	return nil
}

func (g *CognitoGateway) initiateAuth(ctx context.Context, username, password string) (string, error) {
	out, err := g.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		ClientId: aws.String(g.cfg.ClientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return "", errors.New("invalid credentials")
		}
		var notFound *types.UserNotFoundException
		if errors.As(err, &notFound) {
			return "", errors.New("identity account not found")
		}
		return "", fmt.Errorf("initiate auth: %w", err)
	}
	if out.AuthenticationResult == nil || out.AuthenticationResult.IdToken == nil {
		return "", errors.New("authentication returned no token")
	}
	return *out.AuthenticationResult.IdToken, nil
}

// externalIDFromUser prefers the immutable sub attribute as the external
// account id, falling back to the username.
func externalIDFromUser(user *types.UserType, fallback string) string {
	if user != nil {
		for _, attr := range user.Attributes {
			if attr.Name != nil && *attr.Name == "sub" && attr.Value != nil {
				return *attr.Value
			}
		}
	}
	return fallback
}

// Ensure CognitoGateway implements the application's identity port
var _ appcustomer.IdentityGateway = (*CognitoGateway)(nil)
