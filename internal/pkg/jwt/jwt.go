package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// The engine never issues tokens; an upstream identity service does.
// This package only verifies incoming tokens and exposes the actor
// claims the core operations consume.

var (
	ErrInvalidToken  = errors.New("invalid or missing token")
	ErrMissingClaims = errors.New("token is missing required claims")
)

type Verifier interface {
	JWTAuth() *jwtauth.JWTAuth
}

type verifier struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewVerifier(secretKey string) Verifier {
	return &verifier{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (v *verifier) JWTAuth() *jwtauth.JWTAuth {
	return v.tokenAuth
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	EmployeeID string
	CompanyID  string
	Role       string
	IsAdmin    bool
}

// ActorFromContext extracts the actor from the verified token claims.
func ActorFromContext(ctx context.Context) (Actor, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Actor{}, ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Actor{}, ErrMissingClaims
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Actor{}, ErrMissingClaims
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Actor{}, ErrMissingClaims
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return Actor{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       role,
		IsAdmin:    isAdmin,
	}, nil
}
