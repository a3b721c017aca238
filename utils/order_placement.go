package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kiran-703/ShopNest/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderLine is one cart line submitted for order placement. ChargedUnitPrice
// is the price the client resolved at cart time and is informational only;
// the transaction re-derives the authoritative price from current product,
// offer and flash-sale state.
type OrderLine struct {
	ProductID        uint    `json:"product_id"`
	Quantity         int     `json:"quantity"`
	ChargedUnitPrice float64 `json:"charged_unit_price"`
}

// PlaceOrderRequest carries everything the order placement transaction needs
type PlaceOrderRequest struct {
	UserID               uint
	Items                []OrderLine
	Address              models.Address
	PaymentMethod        string
	VoucherCode          string
	TransactionID        string
	PaymentAccountNumber string
	ShippingFee          float64
	CODFee               float64
}

// PlaceOrder is the single write path that turns a cart into a persisted
// order. One transaction spans every referenced product row, the acting
// user's voucher usage row and the new order record:
//
//   - each product row is locked and its stock re-checked; the whole
//     transaction fails on the first out-of-stock or missing product
//   - the unit price is re-derived inside the transaction
//   - stock decrement, sold increment, voucher usage increment and the order
//     write all commit together or not at all
//
// No order exists without a successful stock decrement and no stock is
// decremented without an order.
func PlaceOrder(db *gorm.DB, req PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, BadRequestError("Quantity must be at least 1", nil)
		}
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var offers []models.CategoryOffer
		if err := tx.Where("active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
			Find(&offers).Error; err != nil {
			return WrapError(err, "failed to load active offers")
		}

		var (
			subtotal      float64
			offerSubtotal float64
			orderItems    []models.OrderItem
		)

		for _, line := range req.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrProductNotFound, line.ProductID)
				}
				return WrapError(err, "failed to load product")
			}

			if product.Stock < line.Quantity {
				return fmt.Errorf("%w: %s has %d left, %d requested",
					ErrOutOfStock, product.Name, product.Stock, line.Quantity)
			}

			// Category name is what offers match on
			if err := tx.First(&product.Category, product.CategoryID).Error; err != nil &&
				!errors.Is(err, gorm.ErrRecordNotFound) {
				return WrapError(err, "failed to load product category")
			}

			breakdown := ResolvePrice(product, offers, now)
			if math.Abs(breakdown.UnitPrice-line.ChargedUnitPrice) > 0.009 {
				LogDebug("Price drift for product %d: cart %.2f, authoritative %.2f",
					product.ID, line.ChargedUnitPrice, breakdown.UnitPrice)
			}

			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				UpdateColumns(map[string]interface{}{
					"stock": gorm.Expr("stock - ?", line.Quantity),
					"sold":  gorm.Expr("sold + ?", line.Quantity),
				}).Error; err != nil {
				return WrapError(err, "failed to update product stock")
			}

			subtotal += breakdown.OriginalPrice * float64(line.Quantity)
			offerSubtotal += breakdown.UnitPrice * float64(line.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:        product.ID,
				Name:             product.Name,
				ImageURL:         product.ImageURL,
				Price:            breakdown.UnitPrice,
				OriginalPrice:    breakdown.OriginalPrice,
				Quantity:         line.Quantity,
				ReturnPolicyDays: product.ReturnPolicyDays,
			})
		}

		var (
			voucherCode     string
			voucherDiscount float64
		)
		if req.VoucherCode != "" {
			code := strings.ToUpper(strings.TrimSpace(req.VoucherCode))
			var voucher models.Voucher
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("code = ?", code).First(&voucher).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return WrapError(err, "failed to load voucher")
				}
			} else {
				var usage models.VoucherUsage
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("user_id = ? AND code = ?", req.UserID, code).
					First(&usage).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return WrapError(err, "failed to load voucher usage")
				}

				discount := ComputeVoucherDiscount(voucher, usage.UsedCount, subtotal, req.ShippingFee)
				if discount.Eligible {
					voucherCode = code
					voucherDiscount = discount.OrderDiscount + discount.ShippingDiscount
					if usage.ID == 0 {
						usage = models.VoucherUsage{UserID: req.UserID, Code: code}
					}
					usage.UsedCount++
					usage.LastUsed = now
					if err := tx.Save(&usage).Error; err != nil {
						return WrapError(err, "failed to record voucher usage")
					}
				} else {
					LogInfo("Voucher %s not eligible for user %d, placing order without discount", code, req.UserID)
				}
			}
		}

		status := models.OrderStatusPending
		if req.PaymentMethod == models.PaymentMethodCOD {
			status = models.OrderStatusProcessing
		}

		order = models.Order{
			UserID:               req.UserID,
			OrderNumber:          GenerateOrderNumber(now),
			Subtotal:             subtotal,
			OfferSubtotal:        offerSubtotal,
			ShippingFee:          req.ShippingFee,
			CashOnDeliveryFee:    req.CODFee,
			VoucherCode:          voucherCode,
			VoucherDiscount:      voucherDiscount,
			Total:                RoundFinalPrice(offerSubtotal - voucherDiscount + req.ShippingFee + req.CODFee),
			PaymentMethod:        req.PaymentMethod,
			TransactionID:        req.TransactionID,
			PaymentAccountNumber: req.PaymentAccountNumber,
			Status:               status,
			ShippingName:         req.Address.Name,
			ShippingPhone:        req.Address.Phone,
			ShippingLine1:        req.Address.Line1,
			ShippingLine2:        req.Address.Line2,
			ShippingCity:         req.Address.City,
			ShippingState:        req.Address.State,
			ShippingPostalCode:   req.Address.PostalCode,
			OrderItems:           orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return WrapError(err, "failed to create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort side channels; never part of the caller's success result
	go func(o models.Order) {
		Notify(o.UserID, NotificationEvent{
			Icon:        "package",
			Title:       "Order placed",
			Description: fmt.Sprintf("Your order %s for %.2f has been placed.", o.OrderNumber, o.Total),
			Href:        fmt.Sprintf("/orders/%d", o.ID),
		})
		InvalidateOrderCaches(o.UserID)
		PublishOrderEvent("order.placed", o)
	}(order)

	return &order, nil
}
