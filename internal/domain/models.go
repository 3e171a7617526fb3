package domain

import (
	"encoding/json"
	"time"
)

// TimeLayout is fixed width so stored timestamps sort as strings.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

func Timestamp(t time.Time) string { return t.UTC().Format(TimeLayout) }

type Category struct {
	ID   string `db:"id" json:"_id"`
	Name string `db:"name" json:"name"`
}

type Product struct {
	ID            string  `db:"id" json:"_id"`
	CategoryID    string  `db:"category_id" json:"categoryId"`
	SellerEmail   string  `db:"seller_email" json:"sellerEmail"`
	SellerName    string  `db:"seller_name" json:"sellerName"`
	Title         string  `db:"title" json:"title"`
	Image         string  `db:"image" json:"image"`
	Price         float64 `db:"price" json:"price"`
	OriginalPrice float64 `db:"original_price" json:"originalPrice"`
	Condition     string  `db:"condition" json:"condition"` // excellent | good | fair
	YearsOfUse    int     `db:"years_of_use" json:"yearsOfUse"`
	Location      string  `db:"location" json:"location"`
	Phone         string  `db:"phone" json:"phone"`
	Description   string  `db:"description" json:"description"`
	Available     bool    `db:"available" json:"available"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
}

// Advertisement references a product by the id string the seller submitted.
type Advertisement struct {
	ID          string `db:"id" json:"_id"`
	ProductID   string `db:"product_id" json:"productId"`
	SellerEmail string `db:"seller_email" json:"sellerEmail"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}

// Booking carries both parties' emails so either side can query it without a join.
type Booking struct {
	ID              string `db:"id" json:"_id"`
	ProductID       string `db:"product_id" json:"productId"`
	ProductTitle    string `db:"product_title" json:"productTitle"`
	BuyerEmail      string `db:"buyer_email" json:"buyerEmail"`
	BuyerName       string `db:"buyer_name" json:"buyerName"`
	SellerEmail     string `db:"seller_email" json:"sellerEmail"`
	Phone           string `db:"phone" json:"phone"`
	MeetingLocation string `db:"meeting_location" json:"meetingLocation"`
	CreatedAt       string `db:"created_at" json:"createdAt"`
}

type Report struct {
	ID            string `db:"id" json:"_id"`
	ReporterEmail string `db:"reporter_email" json:"reporterEmail"`
	ProductID     string `db:"product_id" json:"productId,omitempty"`
	Payload       string `db:"payload" json:"-"`
	CreatedAt     string `db:"created_at" json:"createdAt"`
}

// WriteResult mirrors the acknowledgement shape clients of the store expect.
type WriteResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId,omitempty"`
	DeletedCount int64  `json:"deletedCount,omitempty"`
}

// MarshalJSON inlines the stored payload instead of emitting it as a quoted string.
func (r Report) MarshalJSON() ([]byte, error) {
	type alias Report
	payload := json.RawMessage(r.Payload)
	if !json.Valid(payload) {
		payload = json.RawMessage("null")
	}
	return json.Marshal(struct {
		alias
		Payload json.RawMessage `json:"payload"`
	}{alias(r), payload})
}
