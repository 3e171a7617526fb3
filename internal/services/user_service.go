package services

import (
	"context"
	"fmt"
	"strings"

	"buycycle/internal/domain"
	"buycycle/internal/repos"
	"buycycle/internal/validate"
)

type RegisterInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
	Role  string `json:"role"`
}

type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService { return &UserService{Users: users} }

// Register stores a buyer or seller. A second call with the same email is a
// no-op and reports Acknowledged=false.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.WriteResult, error) {
	email, ok := validate.Email(in.Email)
	if !ok {
		return domain.WriteResult{}, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return domain.WriteResult{}, fmt.Errorf("%w: role %q", ErrInvalidInput, in.Role)
	}

	name := strings.TrimSpace(in.Name)
	if name != "" {
		if name, ok = validate.Name(name); !ok {
			return domain.WriteResult{}, fmt.Errorf("%w: name", ErrInvalidInput)
		}
	}

	u := domain.User{
		ID:        domain.NewID(),
		Email:     email,
		Name:      name,
		Photo:     strings.TrimSpace(in.Photo),
		Role:      role,
		CreatedAt: now(),
	}
	inserted, err := s.Users.InsertIfAbsent(ctx, u)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("register %s: %w", email, err)
	}
	if !inserted {
		return domain.WriteResult{}, nil
	}
	return domain.WriteResult{Acknowledged: true, InsertedID: u.ID}, nil
}

// List returns all users, or the one stored under email when it is set.
func (s *UserService) List(ctx context.Context, email string) ([]domain.User, error) {
	return s.Users.List(ctx, strings.TrimSpace(email), "")
}

// AdminList filters by any stored role, admin included.
func (s *UserService) AdminList(ctx context.Context, role string) ([]domain.User, error) {
	r := domain.Role(strings.ToLower(strings.TrimSpace(role)))
	switch r {
	case "", domain.RoleBuyer, domain.RoleSeller, domain.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: role %q", ErrInvalidInput, role)
	}
	return s.Users.List(ctx, "", r)
}

// Delete removes the user record only.
func (s *UserService) Delete(ctx context.Context, id string) (domain.WriteResult, error) {
	key, err := domain.ParseID(id)
	if err != nil {
		return domain.WriteResult{Acknowledged: true}, nil
	}
	n, err := s.Users.Delete(ctx, key.String())
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("delete user %s: %w", id, err)
	}
	return domain.WriteResult{Acknowledged: true, DeletedCount: n}, nil
}
