package services

import (
	"context"
	"fmt"
	"strings"

	"buycycle/internal/domain"
	"buycycle/internal/repos"
)

type WishlistService struct {
	Repo *repos.WishlistRepo
}

func NewWishlistService(r *repos.WishlistRepo) *WishlistService { return &WishlistService{Repo: r} }

// wishlistRef returns the canonical id when productRef parses, otherwise the trimmed
// reference unchanged. Unparseable references may be stored; they resolve to
// no product.
func wishlistRef(productRef string) (string, error) {
	r := strings.TrimSpace(productRef)
	if r == "" {
		return "", fmt.Errorf("%w: product id", ErrInvalidInput)
	}
	if id, err := domain.ParseID(r); err == nil {
		return id.String(), nil
	}
	return r, nil
}

func (s *WishlistService) Save(ctx context.Context, email, productRef string) (domain.WriteResult, error) {
	r, err := wishlistRef(productRef)
	if err != nil {
		return domain.WriteResult{}, err
	}
	added, err := s.Repo.Add(ctx, email, r)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("wishlist add %s: %w", r, err)
	}
	return domain.WriteResult{Acknowledged: added}, nil
}

func (s *WishlistService) Unsave(ctx context.Context, email, productRef string) (domain.WriteResult, error) {
	r, err := wishlistRef(productRef)
	if err != nil {
		return domain.WriteResult{}, err
	}
	n, err := s.Repo.Remove(ctx, email, r)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("wishlist remove %s: %w", r, err)
	}
	return domain.WriteResult{Acknowledged: true, DeletedCount: n}, nil
}
