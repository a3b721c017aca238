package utils

import (
	"math"
	"strings"
	"time"

	"github.com/kiran-703/ShopNest/models"
)

// PriceBreakdown holds the resolved pricing for one unit of a product
type PriceBreakdown struct {
	UnitPrice         float64 `json:"unit_price"`     // price the customer pays
	OriginalPrice     float64 `json:"original_price"` // pre-offer reference price
	OfferPercent      float64 `json:"offer_percent"`
	FlashSalePercent  float64 `json:"flash_sale_percent"`
	FlashSaleApplied  bool    `json:"flash_sale_applied"`
	CategoryOfferName string  `json:"category_offer_name,omitempty"`
}

// ResolveEffectivePrice applies the first active category offer matching the
// product's category name. Only one offer ever applies; offers do not stack
// with each other. Returns the offer-adjusted price and the pre-offer price.
func ResolveEffectivePrice(product models.Product, offers []models.CategoryOffer, now time.Time) (effective float64, original float64, offerPercent float64) {
	original = product.Price
	effective = product.Price
	for _, offer := range offers {
		if !offer.Active || offer.DiscountPercent <= 0 {
			continue
		}
		if now.Before(offer.StartDate) || now.After(offer.EndDate) {
			continue
		}
		if !strings.EqualFold(offer.CategoryName, product.Category.Name) {
			continue
		}
		effective = product.Price - (product.Price * offer.DiscountPercent / 100)
		offerPercent = offer.DiscountPercent
		break
	}
	return effective, original, offerPercent
}

// ResolveFlashSalePrice applies the product's flash sale discount on top of
// the already offer-adjusted price. The flash sale only applies while its end
// date is strictly in the future and a positive discount percent is set.
func ResolveFlashSalePrice(product models.Product, effectivePrice float64, now time.Time) (float64, bool) {
	if !product.IsFlashSale || product.FlashSaleDiscount <= 0 {
		return effectivePrice, false
	}
	if product.FlashSaleEndDate == nil || !product.FlashSaleEndDate.After(now) {
		return effectivePrice, false
	}
	return effectivePrice - (effectivePrice * product.FlashSaleDiscount / 100), true
}

// ResolvePrice computes the full unit price breakdown for a product:
// category offer first, then flash sale stacked on the offer-adjusted price.
func ResolvePrice(product models.Product, offers []models.CategoryOffer, now time.Time) PriceBreakdown {
	effective, original, offerPercent := ResolveEffectivePrice(product, offers, now)
	charged, flashApplied := ResolveFlashSalePrice(product, effective, now)
	breakdown := PriceBreakdown{
		UnitPrice:     charged,
		OriginalPrice: original,
		OfferPercent:  offerPercent,
	}
	if flashApplied {
		breakdown.FlashSalePercent = product.FlashSaleDiscount
		breakdown.FlashSaleApplied = true
	}
	return breakdown
}

// VoucherDiscount is the split of a voucher's discount between the order
// subtotal and the shipping fee. Exactly one of the two is non-zero.
type VoucherDiscount struct {
	OrderDiscount    float64
	ShippingDiscount float64
	Eligible         bool
}

// ComputeVoucherDiscount applies a voucher against the order subtotal and
// shipping fee. An ineligible voucher yields a zero discount, never an error;
// the caller surfaces eligibility reasons before submission.
//
// Shipping vouchers are capped at the current shipping fee. Order vouchers
// are deliberately not capped at the subtotal.
func ComputeVoucherDiscount(voucher models.Voucher, usageCount int, orderSubtotal, shippingFee float64) VoucherDiscount {
	if !voucher.Active {
		return VoucherDiscount{}
	}
	if voucher.MinSpend > 0 && orderSubtotal < voucher.MinSpend {
		return VoucherDiscount{}
	}
	if voucher.UsageLimit > 0 && usageCount >= voucher.UsageLimit {
		return VoucherDiscount{}
	}

	amount := voucher.Discount
	if voucher.Type == models.VoucherTypePercentage {
		amount = orderSubtotal * voucher.Discount / 100
	}

	if voucher.DiscountType == models.VoucherDiscountShipping {
		if amount > shippingFee {
			amount = shippingFee
		}
		return VoucherDiscount{ShippingDiscount: amount, Eligible: true}
	}
	return VoucherDiscount{OrderDiscount: amount, Eligible: true}
}

// RoundFinalPrice applies the storefront rounding rule to a grand total:
// a fractional part in (0, 0.50] rounds down, anything larger rounds to the
// nearest integer. The result is always a whole number. Applied exactly once
// per order, to the final total only.
func RoundFinalPrice(amount float64) float64 {
	frac := amount - math.Floor(amount)
	if frac > 0 && frac <= 0.50 {
		return math.Floor(amount)
	}
	return math.Round(amount)
}
