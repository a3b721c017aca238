package utils

import (
	"os"
	"strconv"
)

// Default shipping charges, overridable via environment
const (
	defaultBaseShippingFee = 50.0
	defaultPerItemFee      = 10.0
	defaultCODFee          = 0.0
	defaultCODLimit        = 10000.0
)

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

// ComputeShippingFee derives the shipping fee from the cart: free when every
// line carries the free-shipping flag, otherwise a base charge plus a small
// per-item increment beyond the first item.
func ComputeShippingFee(itemCount int, allFreeShipping bool) float64 {
	if itemCount == 0 || allFreeShipping {
		return 0
	}
	base := envFloat("SHIPPING_BASE_FEE", defaultBaseShippingFee)
	perItem := envFloat("SHIPPING_PER_ITEM_FEE", defaultPerItemFee)
	return base + perItem*float64(itemCount-1)
}

// CODSurcharge returns the cash-on-delivery fee added to COD orders
func CODSurcharge() float64 {
	return envFloat("COD_FEE", defaultCODFee)
}

// CODLimit returns the maximum order total accepted for cash on delivery
func CODLimit() float64 {
	return envFloat("COD_LIMIT", defaultCODLimit)
}
