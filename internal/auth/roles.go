package auth

import (
	"context"
	"fmt"

	"buycycle/internal/domain"
)

// UserLookup is the slice of the user store the resolver needs.
type UserLookup interface {
	ByEmail(ctx context.Context, email string) (*domain.User, error)
}

type RoleResolver struct {
	Users UserLookup
}

func NewRoleResolver(users UserLookup) *RoleResolver { return &RoleResolver{Users: users} }

// Role returns the stored role for email, or ErrPrincipalNotFound.
func (r *RoleResolver) Role(ctx context.Context, email string) (domain.Role, error) {
	u, err := r.Users.ByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup role for %s: %w", email, err)
	}
	if u == nil {
		return "", fmt.Errorf("%w: %s", ErrPrincipalNotFound, email)
	}
	return u.Role, nil
}
