// Package auth resolves bearer credentials into caller identities and owns the
// role model used by every gated operation. The core never trusts
// client-supplied identity claims: handlers receive the identity resolved here
// or nothing at all.
package auth

import (
	"errors"
	"fmt"
	"time"

	"bibdelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUnauthorized is returned when a credential is missing, malformed or
	// fails signature verification. It fires before any business logic runs.
	ErrUnauthorized = errors.New("missing or invalid credential")

	// ErrForbidden is returned when a valid credential lacks the role or
	// ownership required for the requested operation.
	ErrForbidden = errors.New("operation not permitted for this caller")
)

// Role identifies an actor class in the delivery workflow.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleOrganizer Role = "organizer"
	RoleCourier   Role = "delivery"
	RoleAdmin     Role = "admin"
)

// Validate checks if the Role value is one of the known actor classes.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleOrganizer, RoleCourier, RoleAdmin:
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", ErrUnauthorized, r)
	}
}

// Identity is a resolved caller: who they are and what they act as.
type Identity struct {
	ID   kernel.UUID
	Role Role
}

// IsAdmin reports whether the caller holds the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsCourier reports whether the caller holds the delivery courier role.
func (i Identity) IsCourier() bool {
	return i.Role == RoleCourier
}

// TokenService signs and verifies the HS256 bearer tokens carrying caller
// identity. Tokens embed the subject id and a role claim.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the given signing secret and
// token lifetime. A non-positive lifetime defaults to seven days.
func NewTokenService(secret string, ttl time.Duration) TokenService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return TokenService{secret: []byte(secret), ttl: ttl}
}

type identityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Sign issues a bearer token for the identity.
func (s TokenService) Sign(identity Identity) (string, error) {
	if err := identity.ID.Validate(); err != nil {
		return "", err
	}
	if err := identity.Role.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	claims := identityClaims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify resolves a bearer token into the identity it carries.
// Any parse, signature, expiry or claim failure yields ErrUnauthorized;
// no detail of the failure is exposed to the caller.
func (s TokenService) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrUnauthorized
	}

	var claims identityClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrUnauthorized
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	role := Role(claims.Role)
	if err := role.Validate(); err != nil {
		return Identity{}, ErrUnauthorized
	}

	return Identity{ID: id, Role: role}, nil
}
