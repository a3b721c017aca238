package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a regular user in the system
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	LastLoginAt  time.Time `json:"last_login_at"`
	GoogleID     string    `gorm:"unique;default:null" json:"google_id"`
	ReferralCode string    `gorm:"uniqueIndex;default:null" json:"referral_code"`

	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID"`
}

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
}

// Product represents an item in the catalog.
//
// Stock is never mutated outside the order placement transaction (decrement)
// or an admin absolute set; Sold only grows through completed orders.
type Product struct {
	gorm.Model
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Price             float64    `json:"price"`
	OriginalPrice     float64    `json:"original_price"`
	Stock             int        `json:"stock" gorm:"check:stock >= 0"`
	Sold              int        `json:"sold" gorm:"default:0"`
	CategoryID        uint       `json:"category_id"`
	Category          Category   `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL          string     `json:"image_url"`
	IsFlashSale       bool       `json:"is_flash_sale" gorm:"default:false"`
	FlashSaleEndDate  *time.Time `json:"flash_sale_end_date,omitempty"`
	FlashSaleDiscount float64    `json:"flash_sale_discount,omitempty"`
	FreeShipping      bool       `json:"free_shipping" gorm:"default:false"`
	ReturnPolicyDays  int        `json:"return_policy_days" gorm:"default:0"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`
	Blocked           bool       `json:"blocked" gorm:"default:false"`
	Rating            float64    `json:"rating" gorm:"default:0"`
	TotalReviews      int        `json:"total_reviews" gorm:"default:0"`
}

// Review represents a product review. Reviews live only here; the product's
// Rating/TotalReviews are cached aggregates recomputed on every review write.
type Review struct {
	gorm.Model
	ProductID uint   `json:"product_id" gorm:"index:idx_reviews_product_user,unique"`
	UserID    uint   `json:"user_id" gorm:"index:idx_reviews_product_user,unique"`
	User      User   `json:"user"`
	Rating    int    `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Comment   string `json:"comment"`
}

// CartItem is a user's cart line. Price is snapshotted for display only; the
// order placement transaction re-derives the authoritative price.
type CartItem struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"index:idx_cart_user_product,unique"`
	ProductID uint    `json:"product_id" gorm:"index:idx_cart_user_product,unique"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity"`
}

// Wishlist links a user to a saved product
type Wishlist struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"index:idx_wishlist_user_product,unique"`
	ProductID uint    `json:"product_id" gorm:"index:idx_wishlist_user_product,unique"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
}

// Address represents a user's shipping address; at most one is default
type Address struct {
	gorm.Model
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country" gorm:"default:'India'"`
	IsDefault  bool   `json:"is_default" gorm:"default:false"`
}

// Notification is a persisted in-app notification for a user
type Notification struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Href        string `json:"href"`
	Read        bool   `json:"read" gorm:"default:false"`
}
