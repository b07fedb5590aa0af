package domain

import "time"

// Product availability labels shown across the storefront (Arabic UI).
const (
	StatusAvailable   = "متوفر"
	StatusUnavailable = "غير متوفر"
)

type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID            string  `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Author        string  `json:"author" db:"author"` // brand/maker for non-book items
	Price         float64 `json:"price" db:"price"`
	DiscountPrice float64 `json:"discountPrice,omitempty" db:"discount_price"`
	Stock         int     `json:"stock" db:"stock"`
	ImageURL      string  `json:"imageUrl" db:"image_url"`
	Category      string  `json:"category" db:"category"`
	Subcategory   string  `json:"subcategory" db:"subcategory"`
	Description   string  `json:"description,omitempty" db:"description"`
	Status        string  `json:"status" db:"status"`
	DateAdded     string  `json:"dateAdded" db:"date_added"`
}

type Category struct {
	ID            string        `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Icon          string        `json:"icon" db:"icon"`
	Description   string        `json:"description,omitempty" db:"description"`
	ImageURL      string        `json:"imageUrl,omitempty" db:"image_url"`
	Subcategories []Subcategory `json:"subcategories,omitempty" db:"-"`
}

type User struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Email     string `json:"email" db:"email"`
	AvatarURL string `json:"avatarUrl" db:"avatar_url"`
}

type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is list price times quantity. Discount prices are promotional
// display only and never enter totals.
func (i CartItem) Subtotal() float64 { return i.Price * float64(i.Quantity) }

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID         string      `json:"id"`
	Items      []CartItem  `json:"items"` // snapshot of the cart at submission
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"status"`
	PickupTime time.Time   `json:"pickupTime"`
	User       User        `json:"user"`
	Phone      string      `json:"phone"`
}
