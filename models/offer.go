package models

import (
	"time"

	"gorm.io/gorm"
)

// CategoryOffer is an admin-configured category-wide percentage discount
// active within a date range. At most one offer applies per product; the
// first match by category name wins, offers never stack with each other.
type CategoryOffer struct {
	gorm.Model
	CategoryID      uint      `json:"category_id"`
	Category        Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CategoryName    string    `json:"category_name" gorm:"index"`
	DiscountPercent float64   `json:"discount_percent"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Active          bool      `json:"active" gorm:"default:true"`
}
