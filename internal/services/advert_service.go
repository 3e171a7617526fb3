package services

import (
	"context"
	"fmt"

	"buycycle/internal/domain"
	"buycycle/internal/repos"
)

type AdvertService struct {
	Adverts *repos.AdvertRepo
	Prods   *repos.ProductRepo
}

func NewAdvertService(adverts *repos.AdvertRepo, prods *repos.ProductRepo) *AdvertService {
	return &AdvertService{Adverts: adverts, Prods: prods}
}

// Advertise promotes one of seller's products. Advertising the same product
// again is acknowledged=false.
func (s *AdvertService) Advertise(ctx context.Context, seller, productRef string) (domain.WriteResult, error) {
	p, err := owned(ctx, s.Prods, seller, productRef)
	if err != nil {
		return domain.WriteResult{}, err
	}
	a := domain.Advertisement{
		ID:          domain.NewID(),
		ProductID:   p.ID,
		SellerEmail: seller,
		CreatedAt:   now(),
	}
	inserted, err := s.Adverts.InsertIfAbsent(ctx, a)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("advertise %s: %w", p.ID, err)
	}
	if !inserted {
		return domain.WriteResult{}, nil
	}
	return domain.WriteResult{Acknowledged: true, InsertedID: a.ID}, nil
}

// Remove drops the advertisement for a product seller owns.
func (s *AdvertService) Remove(ctx context.Context, seller, productRef string) (domain.WriteResult, error) {
	p, err := owned(ctx, s.Prods, seller, productRef)
	if err != nil {
		return domain.WriteResult{}, err
	}
	n, err := s.Adverts.DeleteByProduct(ctx, p.ID)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("remove advert %s: %w", p.ID, err)
	}
	return domain.WriteResult{Acknowledged: true, DeletedCount: n}, nil
}
