package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"buycycle/internal/domain"
	"buycycle/internal/repos"
	"buycycle/internal/validate"
)

type ProductInput struct {
	CategoryID    string  `json:"categoryId"`
	SellerName    string  `json:"sellerName"`
	Title         string  `json:"title"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Condition     string  `json:"condition"`
	YearsOfUse    int     `json:"yearsOfUse"`
	Location      string  `json:"location"`
	Phone         string  `json:"phone"`
	Description   string  `json:"description"`
}

// DeleteResult reports the product delete and what the cascade removed.
// CascadeErrors lists dependent deletes that failed; the product stays deleted.
type DeleteResult struct {
	domain.WriteResult
	BookingsDeleted       int64    `json:"bookingsDeleted"`
	AdvertisementsDeleted int64    `json:"advertisementsDeleted"`
	CascadeErrors         []string `json:"cascadeErrors,omitempty"`
}

type CatalogService struct {
	Cats     *repos.CategoryRepo
	Prods    *repos.ProductRepo
	Bookings *repos.BookingRepo
	Adverts  *repos.AdvertRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, bookings *repos.BookingRepo, adverts *repos.AdvertRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Bookings: bookings, Adverts: adverts}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

// CreateProduct lists a new available product owned by seller.
func (s *CatalogService) CreateProduct(ctx context.Context, seller string, in ProductInput) (domain.WriteResult, error) {
	catID, ok := validate.ID(in.CategoryID)
	if !ok {
		return domain.WriteResult{}, fmt.Errorf("%w: categoryId", ErrInvalidInput)
	}
	title, ok := validate.Title(in.Title)
	if !ok {
		return domain.WriteResult{}, fmt.Errorf("%w: title", ErrInvalidInput)
	}
	if in.Price < 0 || in.OriginalPrice < 0 || in.YearsOfUse < 0 {
		return domain.WriteResult{}, fmt.Errorf("%w: negative amount", ErrInvalidInput)
	}
	cond := strings.ToLower(strings.TrimSpace(in.Condition))
	if cond != "" {
		if cond, ok = validate.Condition(cond); !ok {
			return domain.WriteResult{}, fmt.Errorf("%w: condition %q", ErrInvalidInput, in.Condition)
		}
	}

	cats, err := s.Cats.List(ctx)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("load categories: %w", err)
	}
	known := false
	for _, c := range cats {
		if c.ID == catID {
			known = true
			break
		}
	}
	if !known {
		return domain.WriteResult{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, catID)
	}

	p := domain.Product{
		ID:            domain.NewID(),
		CategoryID:    catID,
		SellerEmail:   seller,
		SellerName:    strings.TrimSpace(in.SellerName),
		Title:         title,
		Image:         strings.TrimSpace(in.Image),
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Condition:     cond,
		YearsOfUse:    in.YearsOfUse,
		Location:      strings.TrimSpace(in.Location),
		Phone:         strings.TrimSpace(in.Phone),
		Description:   strings.TrimSpace(in.Description),
		Available:     true,
		CreatedAt:     now(),
	}
	if err := s.Prods.Insert(ctx, p); err != nil {
		return domain.WriteResult{}, fmt.Errorf("insert product: %w", err)
	}
	return domain.WriteResult{Acknowledged: true, InsertedID: p.ID}, nil
}

// owned loads the product ref names and checks that seller owns it.
func owned(ctx context.Context, prods *repos.ProductRepo, seller, ref string) (*domain.Product, error) {
	id, err := domain.ParseID(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: product %q", ErrNotFound, ref)
	}
	p, err := prods.Get(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	if p.SellerEmail != seller {
		return nil, fmt.Errorf("%w: product %s", ErrNotOwner, id)
	}
	return p, nil
}

// DeleteProduct removes a seller's product, then its bookings and adverts.
// The dependent deletes run independently; a failure there is reported in
// the result and does not restore the product.
func (s *CatalogService) DeleteProduct(ctx context.Context, seller, ref string) (DeleteResult, error) {
	p, err := owned(ctx, s.Prods, seller, ref)
	if err != nil {
		return DeleteResult{}, err
	}
	n, err := s.Prods.Delete(ctx, p.ID)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete product %s: %w", p.ID, err)
	}
	res := DeleteResult{WriteResult: domain.WriteResult{Acknowledged: true, DeletedCount: n}}

	if res.BookingsDeleted, err = s.Bookings.DeleteByProduct(ctx, p.ID); err != nil {
		log.Printf("[cascade] product %s: bookings: %v", p.ID, err)
		res.CascadeErrors = append(res.CascadeErrors, "bookings")
	}
	if res.AdvertisementsDeleted, err = s.Adverts.DeleteByProduct(ctx, p.ID); err != nil {
		log.Printf("[cascade] product %s: advertise: %v", p.ID, err)
		res.CascadeErrors = append(res.CascadeErrors, "advertise")
	}
	return res, nil
}

func now() string { return domain.Timestamp(time.Now()) }
