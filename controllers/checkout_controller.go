package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

// GetCheckoutSummary returns the cart priced for checkout with shipping fee
// and COD surcharge resolved
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	details, err := utils.GetCartDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to get cart details for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", nil)
		return
	}
	utils.LogInfo("Retrieved cart for user %d, %d lines", user.ID, len(details.Lines))

	items := make([]gin.H, 0, len(details.Lines))
	for _, line := range details.Lines {
		item := gin.H{
			"product_id":     line.Product.ID,
			"name":           line.Product.Name,
			"image_url":      line.Product.ImageURL,
			"quantity":       line.Quantity,
			"unit_price":     fmt.Sprintf("%.2f", line.Breakdown.UnitPrice),
			"original_price": fmt.Sprintf("%.2f", line.Breakdown.OriginalPrice),
			"line_total":     fmt.Sprintf("%.2f", line.Breakdown.UnitPrice*float64(line.Quantity)),
		}
		if line.Breakdown.OfferPercent > 0 {
			item["offer_percent"] = line.Breakdown.OfferPercent
		}
		if line.Breakdown.FlashSaleApplied {
			item["flash_sale_percent"] = line.Breakdown.FlashSalePercent
		}
		items = append(items, item)
	}

	var defaultAddress models.Address
	hasAddress := config.DB.Where("user_id = ? AND is_default = ?", user.ID, true).
		First(&defaultAddress).Error == nil

	shippingFee := utils.ComputeShippingFee(details.ItemCount, details.AllFreeShip)
	codFee := utils.CODSurcharge()

	utils.Success(c, "Checkout summary retrieved successfully", gin.H{
		"can_checkout":    len(items) > 0 && hasAddress,
		"has_address":     hasAddress,
		"items":           items,
		"subtotal":        fmt.Sprintf("%.2f", details.Subtotal),
		"offer_subtotal":  fmt.Sprintf("%.2f", details.OfferSubtotal),
		"shipping_fee":    fmt.Sprintf("%.2f", shippingFee),
		"cod_fee":         fmt.Sprintf("%.2f", codFee),
		"estimated_total": fmt.Sprintf("%.2f", utils.RoundFinalPrice(details.OfferSubtotal+shippingFee)),
	})
}

// PlaceOrder turns the user's cart into an order through the single order
// placement transaction, then clears the cart
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		AddressID            uint            `json:"address_id"`
		Address              *models.Address `json:"address"`
		PaymentMethod        string          `json:"payment_method" binding:"required"`
		VoucherCode          string          `json:"voucher_code"`
		TransactionID        string          `json:"transaction_id"`
		PaymentAccountNumber string          `json:"payment_account_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if paymentMethod != models.PaymentMethodCOD && paymentMethod != models.PaymentMethodOnline {
		utils.BadRequest(c, "Invalid payment method. Must be cash-on-delivery or online", nil)
		return
	}
	if paymentMethod == models.PaymentMethodOnline && req.TransactionID == "" {
		utils.BadRequest(c, "Transaction ID is required for online payment", nil)
		return
	}

	var address models.Address
	switch {
	case req.Address != nil:
		address = *req.Address
		if errs := utils.ValidateAddress(address); len(errs) > 0 {
			utils.ValidationError(c, "Invalid address", errs)
			return
		}
		address.ID = 0
		address.UserID = user.ID
		address.IsDefault = false
		if err := config.DB.Create(&address).Error; err != nil {
			utils.LogError("Failed to save address for user %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to save address", nil)
			return
		}
	case req.AddressID != 0:
		if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, user.ID).
			First(&address).Error; err != nil {
			utils.NotFound(c, "Address not found")
			return
		}
	default:
		utils.BadRequest(c, "Provide either address_id or address object", nil)
		return
	}

	details, err := utils.GetCartDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to get cart details for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", nil)
		return
	}
	if len(details.Lines) == 0 {
		utils.BadRequest(c, "Cannot place order with empty cart", nil)
		return
	}

	shippingFee := utils.ComputeShippingFee(details.ItemCount, details.AllFreeShip)
	var codFee float64
	if paymentMethod == models.PaymentMethodCOD {
		codFee = utils.CODSurcharge()
		if details.OfferSubtotal+shippingFee+codFee > utils.CODLimit() {
			utils.BadRequest(c, fmt.Sprintf("Cash on delivery is not available for orders above %.0f", utils.CODLimit()), nil)
			return
		}
	}

	order, err := utils.PlaceOrder(config.DB, utils.PlaceOrderRequest{
		UserID:               user.ID,
		Items:                details.OrderLines(),
		Address:              address,
		PaymentMethod:        paymentMethod,
		VoucherCode:          req.VoucherCode,
		TransactionID:        req.TransactionID,
		PaymentAccountNumber: req.PaymentAccountNumber,
		ShippingFee:          shippingFee,
		CODFee:               codFee,
	})
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrOutOfStock):
			utils.LogError("Order placement failed for user %d: %v", user.ID, err)
			utils.BadRequest(c, err.Error(), nil)
		case errors.Is(err, utils.ErrProductNotFound):
			utils.LogError("Order placement failed for user %d: %v", user.ID, err)
			utils.NotFound(c, "One of the products in your cart no longer exists")
		case errors.Is(err, utils.ErrEmptyCart):
			utils.BadRequest(c, "Cannot place order with empty cart", nil)
		default:
			utils.LogError("Order placement failed for user %d: %v", user.ID, err)
			utils.RespondWithError(c, err)
		}
		return
	}
	utils.LogInfo("Placed order %d (%s) for user %d, total %.2f", order.ID, order.OrderNumber, user.ID, order.Total)

	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		utils.LogError("Failed to clear cart for user %d after order %d: %v", user.ID, order.ID, err)
	}

	utils.Created(c, "Order placed successfully", gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"total":        fmt.Sprintf("%.2f", order.Total),
	})
}
