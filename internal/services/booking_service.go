package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"buycycle/internal/domain"
	"buycycle/internal/repos"
)

type BookingInput struct {
	ProductID       string `json:"productId"`
	ProductTitle    string `json:"productTitle"`
	BuyerName       string `json:"buyerName"`
	Phone           string `json:"phone"`
	MeetingLocation string `json:"meetingLocation"`
}

type BookingService struct {
	Bookings *repos.BookingRepo
	Prods    *repos.ProductRepo

	// MarkUnavailable flips the product to unavailable after a new booking.
	MarkUnavailable bool
}

func NewBookingService(bookings *repos.BookingRepo, prods *repos.ProductRepo) *BookingService {
	return &BookingService{Bookings: bookings, Prods: prods}
}

// Book records buyer's interest in a product. At most one booking exists per
// buyer and product; a repeat returns acknowledged=false and no id.
func (s *BookingService) Book(ctx context.Context, buyer string, in BookingInput) (domain.WriteResult, error) {
	ref := strings.TrimSpace(in.ProductID)
	if ref == "" {
		return domain.WriteResult{}, fmt.Errorf("%w: productId", ErrInvalidInput)
	}

	b := domain.Booking{
		ID:              domain.NewID(),
		ProductID:       ref,
		ProductTitle:    strings.TrimSpace(in.ProductTitle),
		BuyerEmail:      buyer,
		BuyerName:       strings.TrimSpace(in.BuyerName),
		Phone:           strings.TrimSpace(in.Phone),
		MeetingLocation: strings.TrimSpace(in.MeetingLocation),
		CreatedAt:       now(),
	}

	var product *domain.Product
	if id, err := domain.ParseID(ref); err == nil {
		b.ProductID = id.String()
		if product, err = s.Prods.Get(ctx, b.ProductID); err != nil {
			return domain.WriteResult{}, fmt.Errorf("load product %s: %w", b.ProductID, err)
		}
	}
	if product != nil {
		b.SellerEmail = product.SellerEmail
		if b.ProductTitle == "" {
			b.ProductTitle = product.Title
		}
	}

	inserted, err := s.Bookings.InsertIfAbsent(ctx, b)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("book %s: %w", b.ProductID, err)
	}
	if !inserted {
		return domain.WriteResult{}, nil
	}

	if s.MarkUnavailable && product != nil {
		if err := s.Prods.SetAvailable(ctx, product.ID, false); err != nil {
			log.Printf("[booking] mark %s unavailable: %v", product.ID, err)
		}
	}
	return domain.WriteResult{Acknowledged: true, InsertedID: b.ID}, nil
}
