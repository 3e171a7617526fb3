package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"buycycle/internal/domain"
)

// Request is what the gates see of an inbound call.
type Request struct {
	Authorization string
	Email         string

	// Set by Authenticate once the credential is verified.
	Principal string
	// Set by a role gate once the stored role is read.
	Role domain.Role
}

// Gate is a single pass/fail check. A nil error passes.
type Gate func(ctx context.Context, req *Request) error

// Chain runs gates in order and stops at the first failure.
type Chain []Gate

func (c Chain) Run(ctx context.Context, req *Request) error {
	for _, g := range c {
		if err := g(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// Authenticate verifies the bearer credential against the request email.
func Authenticate(v *Verifier) Gate {
	return func(_ context.Context, req *Request) error {
		claims, err := v.Verify(req.Authorization, req.Email)
		if err != nil {
			return err
		}
		req.Principal = claims.Email
		return nil
	}
}

// RequireRole passes only when the authenticated principal holds want.
func RequireRole(roles *RoleResolver, want domain.Role) Gate {
	return func(ctx context.Context, req *Request) error {
		if req.Principal == "" {
			return fmt.Errorf("%w: role check before authentication", ErrUnauthorized)
		}
		got, err := roles.Role(ctx, req.Principal)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("%w: %s is %q, need %q", ErrForbidden, req.Principal, got, want)
		}
		req.Role = got
		return nil
	}
}

// Class is an operation's sensitivity.
type Class int

const (
	Public Class = iota
	Authenticated
	Seller
	Admin
)

func (c Class) String() string {
	switch c {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Seller:
		return "seller"
	case Admin:
		return "admin"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// Policy builds the gate sequence for each class.
type Policy struct {
	Verifier *Verifier
	Roles    *RoleResolver
}

func (p *Policy) Chain(class Class) Chain {
	switch class {
	case Authenticated:
		return Chain{Authenticate(p.Verifier)}
	case Seller:
		return Chain{Authenticate(p.Verifier), RequireRole(p.Roles, domain.RoleSeller)}
	case Admin:
		return Chain{Authenticate(p.Verifier), RequireRole(p.Roles, domain.RoleAdmin)}
	}
	return nil
}

// Status maps a chain failure onto the HTTP status the boundary reports.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrPrincipalNotFound):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
