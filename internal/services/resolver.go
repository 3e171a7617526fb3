package services

import (
	"context"
	"fmt"
	"log"

	"buycycle/internal/domain"
	"buycycle/internal/repos"
)

// ProductWithSeller is a category listing row. SellerDetails is empty, never
// nil, when the seller's user record is gone.
type ProductWithSeller struct {
	domain.Product
	SellerDetails []domain.User `json:"sellerDetails"`
}

// SellerProduct is a row of a seller's own listing.
type SellerProduct struct {
	domain.Product
	Advertisement *domain.Advertisement `json:"advertisement"`
}

// AdProduct is the part of a product exposed on the public advert listing.
type AdProduct struct {
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Location string  `json:"location"`
}

type AdvertView struct {
	domain.Advertisement
	Product *AdProduct `json:"product"`
}

type BookingProduct struct {
	Image string  `json:"image"`
	Price float64 `json:"price"`
}

type BookingView struct {
	domain.Booking
	Product *BookingProduct `json:"product"`
}

// WishlistItem is one row per stored wishlist reference.
type WishlistItem struct {
	ProductID string          `json:"productId"`
	Product   *domain.Product `json:"product"`
}

// Resolver answers the read operations that span more than one table.
// Cross-table references are strings; they are converted to ids before
// matching and a reference that does not convert matches nothing.
type Resolver struct {
	Users    *repos.UserRepo
	Prods    *repos.ProductRepo
	Adverts  *repos.AdvertRepo
	Bookings *repos.BookingRepo
	Wishlist *repos.WishlistRepo

	// HideUnavailableAds drops adverts whose product is missing or no longer available.
	HideUnavailableAds bool
}

func NewResolver(users *repos.UserRepo, prods *repos.ProductRepo, adverts *repos.AdvertRepo,
	bookings *repos.BookingRepo, wishlist *repos.WishlistRepo) *Resolver {
	return &Resolver{Users: users, Prods: prods, Adverts: adverts, Bookings: bookings, Wishlist: wishlist}
}

func (r *Resolver) ProductsByCategory(ctx context.Context, categoryID string) ([]ProductWithSeller, error) {
	prods, err := r.Prods.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list category %s: %w", categoryID, err)
	}

	emails := make([]string, 0, len(prods))
	seen := map[string]bool{}
	for _, p := range prods {
		if !seen[p.SellerEmail] {
			seen[p.SellerEmail] = true
			emails = append(emails, p.SellerEmail)
		}
	}
	users, err := r.Users.ByEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("load sellers: %w", err)
	}
	byEmail := map[string][]domain.User{}
	for _, u := range users {
		byEmail[u.Email] = append(byEmail[u.Email], u)
	}

	out := make([]ProductWithSeller, 0, len(prods))
	for _, p := range prods {
		sellers := byEmail[p.SellerEmail]
		if sellers == nil {
			sellers = []domain.User{}
		}
		out = append(out, ProductWithSeller{Product: p, SellerDetails: sellers})
	}
	return out, nil
}

// SellerProducts lists only the products whose owner is email.
func (r *Resolver) SellerProducts(ctx context.Context, email string) ([]SellerProduct, error) {
	prods, err := r.Prods.ListBySeller(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list seller %s: %w", email, err)
	}

	ids := make([]string, 0, len(prods))
	for _, p := range prods {
		ids = append(ids, p.ID)
	}
	ads, err := r.Adverts.ByProductIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load adverts: %w", err)
	}
	first := map[string]*domain.Advertisement{}
	for i := range ads {
		if _, ok := first[ads[i].ProductID]; !ok {
			first[ads[i].ProductID] = &ads[i]
		}
	}

	out := make([]SellerProduct, 0, len(prods))
	for _, p := range prods {
		out = append(out, SellerProduct{Product: p, Advertisement: first[p.ID]})
	}
	return out, nil
}

func (r *Resolver) Advertisements(ctx context.Context) ([]AdvertView, error) {
	ads, err := r.Adverts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list adverts: %w", err)
	}
	refs := make([]string, 0, len(ads))
	for _, a := range ads {
		refs = append(refs, a.ProductID)
	}
	prods, err := r.productsByRef(ctx, "advertise", refs)
	if err != nil {
		return nil, err
	}

	out := make([]AdvertView, 0, len(ads))
	for _, a := range ads {
		v := AdvertView{Advertisement: a}
		p := lookup(prods, a.ProductID)
		if p != nil {
			v.Product = &AdProduct{Title: p.Title, Image: p.Image, Price: p.Price, Location: p.Location}
		}
		if r.HideUnavailableAds && (p == nil || !p.Available) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Resolver) BuyerBookings(ctx context.Context, email string) ([]BookingView, error) {
	bs, err := r.Bookings.ListByBuyer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list bookings for buyer %s: %w", email, err)
	}
	return r.withBookingProducts(ctx, bs)
}

func (r *Resolver) SellerBookings(ctx context.Context, email string) ([]BookingView, error) {
	bs, err := r.Bookings.ListBySeller(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list bookings for seller %s: %w", email, err)
	}
	return r.withBookingProducts(ctx, bs)
}

func (r *Resolver) withBookingProducts(ctx context.Context, bs []domain.Booking) ([]BookingView, error) {
	refs := make([]string, 0, len(bs))
	for _, b := range bs {
		refs = append(refs, b.ProductID)
	}
	prods, err := r.productsByRef(ctx, "bookings", refs)
	if err != nil {
		return nil, err
	}
	out := make([]BookingView, 0, len(bs))
	for _, b := range bs {
		v := BookingView{Booking: b}
		if p := lookup(prods, b.ProductID); p != nil {
			v.Product = &BookingProduct{Image: p.Image, Price: p.Price}
		}
		out = append(out, v)
	}
	return out, nil
}

// WishlistDetails returns one item per wishlist entry, including entries whose
// product has since been deleted.
func (r *Resolver) WishlistDetails(ctx context.Context, email string) ([]WishlistItem, error) {
	refs, err := r.Wishlist.ProductIDs(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load wishlist for %s: %w", email, err)
	}
	prods, err := r.productsByRef(ctx, "wishlist", refs)
	if err != nil {
		return nil, err
	}
	out := make([]WishlistItem, 0, len(refs))
	for _, ref := range refs {
		out = append(out, WishlistItem{ProductID: ref, Product: lookup(prods, ref)})
	}
	return out, nil
}

// productsByRef loads the products named by refs, keyed by canonical id.
func (r *Resolver) productsByRef(ctx context.Context, source string, refs []string) (map[string]*domain.Product, error) {
	keys, bad := domain.ParseIDs(refs)
	if len(bad) > 0 {
		log.Printf("[resolver] %s: %d product refs are not ids and match nothing: %q", source, len(bad), bad)
	}
	prods, err := r.Prods.ByIDs(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load products for %s: %w", source, err)
	}
	m := make(map[string]*domain.Product, len(prods))
	for i := range prods {
		m[prods[i].ID] = &prods[i]
	}
	return m, nil
}

func lookup(prods map[string]*domain.Product, ref string) *domain.Product {
	id, err := domain.ParseID(ref)
	if err != nil {
		return nil
	}
	return prods[id.String()]
}
