package models

import (
	"time"
)

type User struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Seller struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// DisplayName is what the checkout form shows for a seller.
func (s Seller) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"` // NGN, already currency-scaled
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// TransactionRequest is the payload for POST /transactions/create.
type TransactionRequest struct {
	Title              string  `json:"title"`
	Amount             float64 `json:"amount"`
	ProductImage       string  `json:"product_image"`
	ProductDescription string  `json:"product_description"`
	PaymentPlatform    string  `json:"payment_platform"` // "paypal" or "flutterwave"
	SellerID           string  `json:"seller_id,omitempty"`
}

// TransactionResult is the escrow API's response to a transaction create.
// A missing RedirectURL is treated as a failure even on HTTP 2xx.
type TransactionResult struct {
	Message         string `json:"message"`
	TransactionID   string `json:"transaction_id,omitempty"`
	RedirectURL     string `json:"redirect_url,omitempty"`
	PaymentPlatform string `json:"payment_platform,omitempty"`
}

const (
	PlatformPaypal      = "paypal"
	PlatformFlutterwave = "flutterwave"
)

// ValidPaymentPlatform reports whether p is one of the supported platforms.
func ValidPaymentPlatform(p string) bool {
	return p == PlatformPaypal || p == PlatformFlutterwave
}
