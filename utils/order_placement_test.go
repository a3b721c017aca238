package utils

import (
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// openTestDB connects to the database named by TEST_DSN and resets the tables
// these tests touch. Tests are skipped when TEST_DSN is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DSN")
	if dsn == "" {
		t.Skip("TEST_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
		&models.Voucher{}, &models.UserVoucher{}, &models.VoucherUsage{},
		&models.CategoryOffer{}, &models.Notification{}, &models.Referral{},
	))
	for _, table := range []string{
		"voucher_usages", "user_vouchers", "vouchers", "order_items", "orders",
		"category_offers", "products", "categories", "notifications",
		"referrals", "users",
	} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	// Post-commit side effects (notifications) resolve the DB through the
	// config package.
	config.DB = db
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Username: "testbuyer",
		Email:    "buyer@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	category := models.Category{Name: "General-" + name}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{
		Name:       name,
		Price:      price,
		Stock:      stock,
		CategoryID: category.ID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func testAddress() models.Address {
	return models.Address{
		Name:       "Test User",
		Phone:      "9876543210",
		Line1:      "12 Test Street",
		City:       "Kochi",
		State:      "Kerala",
		PostalCode: "682001",
	}
}

func TestPlaceOrderCODEndToEnd(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Ceramic Mug", 400, 5)

	order, err := PlaceOrder(db, PlaceOrderRequest{
		UserID:        user.ID,
		Items:         []OrderLine{{ProductID: product.ID, Quantity: 1, ChargedUnitPrice: 400}},
		Address:       testAddress(),
		PaymentMethod: models.PaymentMethodCOD,
		ShippingFee:   50,
		CODFee:        10,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusProcessing, order.Status)
	require.InDelta(t, 460, order.Total, 0.001)
	require.Len(t, order.OrderItems, 1)
	require.InDelta(t, 400, order.OrderItems[0].Price, 0.001)

	var after models.Product
	require.NoError(t, db.First(&after, product.ID).Error)
	require.Equal(t, 4, after.Stock)
	require.Equal(t, 1, after.Sold)
}

func TestPlaceOrderAtomicOnOutOfStock(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	plenty := seedProduct(t, db, "Notebook", 100, 10)
	scarce := seedProduct(t, db, "Fountain Pen", 250, 1)

	_, err := PlaceOrder(db, PlaceOrderRequest{
		UserID: user.ID,
		Items: []OrderLine{
			{ProductID: plenty.ID, Quantity: 2, ChargedUnitPrice: 100},
			{ProductID: scarce.ID, Quantity: 3, ChargedUnitPrice: 250},
		},
		Address:       testAddress(),
		PaymentMethod: models.PaymentMethodCOD,
		ShippingFee:   60,
	})
	require.ErrorIs(t, err, ErrOutOfStock)

	// The first line's decrement must have rolled back with the failure.
	var after models.Product
	require.NoError(t, db.First(&after, plenty.ID).Error)
	require.Equal(t, 10, after.Stock)
	require.Zero(t, after.Sold)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)
}

func TestPlaceOrderMissingProduct(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)

	_, err := PlaceOrder(db, PlaceOrderRequest{
		UserID:        user.ID,
		Items:         []OrderLine{{ProductID: 999999, Quantity: 1}},
		Address:       testAddress(),
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)

	_, err := PlaceOrder(db, PlaceOrderRequest{
		UserID:        user.ID,
		Address:       testAddress(),
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderVoucherUsageLimit(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Desk Lamp", 500, 10)
	voucher := models.Voucher{
		Code:         "SAVE50",
		Type:         models.VoucherTypeFixed,
		DiscountType: models.VoucherDiscountOrder,
		Discount:     50,
		UsageLimit:   1,
		Active:       true,
	}
	require.NoError(t, db.Create(&voucher).Error)

	place := func() *models.Order {
		order, err := PlaceOrder(db, PlaceOrderRequest{
			UserID:        user.ID,
			Items:         []OrderLine{{ProductID: product.ID, Quantity: 1, ChargedUnitPrice: 500}},
			Address:       testAddress(),
			PaymentMethod: models.PaymentMethodCOD,
			VoucherCode:   "save50",
			ShippingFee:   50,
		})
		require.NoError(t, err)
		return order
	}

	first := place()
	require.Equal(t, "SAVE50", first.VoucherCode)
	require.InDelta(t, 500, first.Total, 0.001) // 500 - 50 + 50 shipping

	// Second use exceeds the limit: the order still goes through, undiscounted.
	second := place()
	require.Empty(t, second.VoucherCode)
	require.InDelta(t, 550, second.Total, 0.001)

	var usage models.VoucherUsage
	require.NoError(t, db.Where("user_id = ? AND code = ?", user.ID, "SAVE50").First(&usage).Error)
	require.Equal(t, 1, usage.UsedCount)
}

func TestPlaceOrderConcurrentStockContention(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	const stock = 5
	const workers = 12
	product := seedProduct(t, db, "Limited Print", 150, stock)

	var wg sync.WaitGroup
	var succeeded, outOfStock int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := PlaceOrder(db, PlaceOrderRequest{
				UserID:        user.ID,
				Items:         []OrderLine{{ProductID: product.ID, Quantity: 1, ChargedUnitPrice: 150}},
				Address:       testAddress(),
				PaymentMethod: models.PaymentMethodCOD,
				ShippingFee:   50,
			})
			switch {
			case err == nil:
				atomic.AddInt64(&succeeded, 1)
			case errors.Is(err, ErrOutOfStock):
				atomic.AddInt64(&outOfStock, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// Total decremented quantity never exceeds the starting stock.
	require.Equal(t, int64(stock), succeeded)
	require.Equal(t, int64(workers-stock), outOfStock)

	var after models.Product
	require.NoError(t, db.First(&after, product.ID).Error)
	require.Equal(t, 0, after.Stock)
	require.Equal(t, stock, after.Sold)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.Equal(t, int64(stock), orderCount)
}

func TestPlaceOrderRederivesPriceInsideTransaction(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Wall Clock", 800, 3)

	// A stale client price must not leak into the stored order.
	order, err := PlaceOrder(db, PlaceOrderRequest{
		UserID:        user.ID,
		Items:         []OrderLine{{ProductID: product.ID, Quantity: 1, ChargedUnitPrice: 1}},
		Address:       testAddress(),
		PaymentMethod: models.PaymentMethodCOD,
		ShippingFee:   50,
	})
	require.NoError(t, err)
	require.InDelta(t, 800, order.OrderItems[0].Price, 0.001)
	require.InDelta(t, 850, order.Total, 0.001)
}
