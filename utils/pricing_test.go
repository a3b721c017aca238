package utils

import (
	"testing"
	"time"

	"github.com/kiran-703/ShopNest/models"
	"github.com/stretchr/testify/require"
)

func TestRoundFinalPrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want float64
	}{
		{100.00, 100},
		{100.01, 100},
		{100.50, 100},
		{100.51, 101},
		{100.99, 101},
		{99.99, 100},
		{0.50, 0},
		{0.51, 1},
		{460.00, 460},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, RoundFinalPrice(tc.in), "RoundFinalPrice(%v)", tc.in)
	}
}

func activeOffer(category string, percent float64, now time.Time) models.CategoryOffer {
	return models.CategoryOffer{
		CategoryName:    category,
		DiscountPercent: percent,
		StartDate:       now.Add(-time.Hour),
		EndDate:         now.Add(time.Hour),
		Active:          true,
	}
}

func TestResolvePriceOfferThenFlashSale(t *testing.T) {
	t.Parallel()

	now := time.Now()
	end := now.Add(2 * time.Hour)
	product := models.Product{
		Price:             1000,
		Category:          models.Category{Name: "Electronics"},
		IsFlashSale:       true,
		FlashSaleEndDate:  &end,
		FlashSaleDiscount: 20,
	}
	offers := []models.CategoryOffer{activeOffer("Electronics", 10, now)}

	breakdown := ResolvePrice(product, offers, now)
	require.InDelta(t, 720, breakdown.UnitPrice, 0.001)
	require.InDelta(t, 1000, breakdown.OriginalPrice, 0.001)
	require.InDelta(t, 10, breakdown.OfferPercent, 0.001)
	require.True(t, breakdown.FlashSaleApplied)
}

func TestResolvePriceFirstMatchingOfferWins(t *testing.T) {
	t.Parallel()

	now := time.Now()
	product := models.Product{
		Price:    200,
		Category: models.Category{Name: "Books"},
	}
	offers := []models.CategoryOffer{
		activeOffer("Books", 10, now),
		activeOffer("Books", 50, now),
	}

	breakdown := ResolvePrice(product, offers, now)
	require.InDelta(t, 180, breakdown.UnitPrice, 0.001, "only the first matching offer applies")
}

func TestResolvePriceIgnoresExpiredOfferAndFlashSale(t *testing.T) {
	t.Parallel()

	now := time.Now()
	past := now.Add(-time.Minute)
	product := models.Product{
		Price:             500,
		Category:          models.Category{Name: "Toys"},
		IsFlashSale:       true,
		FlashSaleEndDate:  &past,
		FlashSaleDiscount: 30,
	}
	expired := activeOffer("Toys", 25, now)
	expired.EndDate = now.Add(-time.Hour)

	breakdown := ResolvePrice(product, []models.CategoryOffer{expired}, now)
	require.InDelta(t, 500, breakdown.UnitPrice, 0.001)
	require.False(t, breakdown.FlashSaleApplied)
	require.Zero(t, breakdown.OfferPercent)
}

func TestComputeVoucherDiscountOrderFixed(t *testing.T) {
	t.Parallel()

	voucher := models.Voucher{
		Type:         models.VoucherTypeFixed,
		DiscountType: models.VoucherDiscountOrder,
		Discount:     100,
		MinSpend:     300,
		UsageLimit:   2,
		Active:       true,
	}

	d := ComputeVoucherDiscount(voucher, 0, 400, 50)
	require.True(t, d.Eligible)
	require.InDelta(t, 100, d.OrderDiscount, 0.001)
	require.Zero(t, d.ShippingDiscount)
}

func TestComputeVoucherDiscountOrderNotCapped(t *testing.T) {
	t.Parallel()

	voucher := models.Voucher{
		Type:         models.VoucherTypeFixed,
		DiscountType: models.VoucherDiscountOrder,
		Discount:     500,
		Active:       true,
	}

	// An order voucher may exceed the subtotal.
	d := ComputeVoucherDiscount(voucher, 0, 300, 50)
	require.True(t, d.Eligible)
	require.InDelta(t, 500, d.OrderDiscount, 0.001)
}

func TestComputeVoucherDiscountShippingCapped(t *testing.T) {
	t.Parallel()

	voucher := models.Voucher{
		Type:         models.VoucherTypeFixed,
		DiscountType: models.VoucherDiscountShipping,
		Discount:     500,
		Active:       true,
	}

	d := ComputeVoucherDiscount(voucher, 0, 300, 60)
	require.True(t, d.Eligible)
	require.InDelta(t, 60, d.ShippingDiscount, 0.001)
	require.Zero(t, d.OrderDiscount)
}

func TestComputeVoucherDiscountIneligible(t *testing.T) {
	t.Parallel()

	voucher := models.Voucher{
		Type:         models.VoucherTypeFixed,
		DiscountType: models.VoucherDiscountOrder,
		Discount:     50,
		MinSpend:     1000,
		UsageLimit:   1,
		Active:       true,
	}

	// Below minimum spend.
	require.False(t, ComputeVoucherDiscount(voucher, 0, 999, 0).Eligible)

	// Usage limit reached.
	voucher.MinSpend = 0
	require.False(t, ComputeVoucherDiscount(voucher, 1, 999, 0).Eligible)

	// Inactive.
	require.False(t, ComputeVoucherDiscount(models.Voucher{Discount: 10}, 0, 999, 0).Eligible)
}

func TestComputeVoucherDiscountPercentage(t *testing.T) {
	t.Parallel()

	voucher := models.Voucher{
		Type:         models.VoucherTypePercentage,
		DiscountType: models.VoucherDiscountOrder,
		Discount:     10,
		Active:       true,
	}

	d := ComputeVoucherDiscount(voucher, 0, 450, 0)
	require.True(t, d.Eligible)
	require.InDelta(t, 45, d.OrderDiscount, 0.001)
}
