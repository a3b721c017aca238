package utils

import (
	"fmt"
	"time"

	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
)

// CartLine is one cart item with its resolved pricing
type CartLine struct {
	Product   models.Product
	Quantity  int
	Breakdown PriceBreakdown
}

// CartDetails aggregates a user's cart with all pricing resolved through the
// pricing engine. Prices here are display values; the order placement
// transaction re-derives them.
type CartDetails struct {
	Lines         []CartLine
	Subtotal      float64 // original per-unit prices x qty
	OfferSubtotal float64 // charged per-unit prices x qty
	ItemCount     int
	AllFreeShip   bool
}

// GetActiveOffers loads the category offers active right now
func GetActiveOffers(now time.Time) ([]models.CategoryOffer, error) {
	var offers []models.CategoryOffer
	err := config.DB.Where("active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active offers: %v", err)
	}
	return offers, nil
}

// GetCartDetails retrieves cart details with all calculations
func GetCartDetails(userID uint) (*CartDetails, error) {
	db := config.DB
	var cartItems []models.CartItem
	if err := db.Preload("Product.Category").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %v", err)
	}

	now := time.Now()
	offers, err := GetActiveOffers(now)
	if err != nil {
		return nil, err
	}

	details := CartDetails{AllFreeShip: true}
	for _, item := range cartItems {
		if item.Product.ID == 0 || !item.Product.IsActive || item.Product.Blocked {
			continue
		}
		breakdown := ResolvePrice(item.Product, offers, now)

		details.Lines = append(details.Lines, CartLine{
			Product:   item.Product,
			Quantity:  item.Quantity,
			Breakdown: breakdown,
		})
		details.Subtotal += breakdown.OriginalPrice * float64(item.Quantity)
		details.OfferSubtotal += breakdown.UnitPrice * float64(item.Quantity)
		details.ItemCount += item.Quantity
		if !item.Product.FreeShipping {
			details.AllFreeShip = false
		}
	}
	if len(details.Lines) == 0 {
		details.AllFreeShip = false
	}

	return &details, nil
}

// OrderLines converts resolved cart lines into order placement input
func (d *CartDetails) OrderLines() []OrderLine {
	lines := make([]OrderLine, 0, len(d.Lines))
	for _, line := range d.Lines {
		lines = append(lines, OrderLine{
			ProductID:        line.Product.ID,
			Quantity:         line.Quantity,
			ChargedUnitPrice: line.Breakdown.UnitPrice,
		})
	}
	return lines
}
