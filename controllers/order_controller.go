package controllers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

func orderSummaryView(order models.Order) gin.H {
	return gin.H{
		"id":           order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"total":        fmt.Sprintf("%.2f", order.Total),
		"date":         order.CreatedAt.Format("2006-01-02 15:04:05"),
		"item_count":   len(order.OrderItems),
	}
}

func orderDetailView(order models.Order) gin.H {
	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, gin.H{
			"product_id":     item.ProductID,
			"name":           item.Name,
			"image_url":      item.ImageURL,
			"price":          fmt.Sprintf("%.2f", item.Price),
			"original_price": fmt.Sprintf("%.2f", item.OriginalPrice),
			"quantity":       item.Quantity,
			"line_total":     fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)),
		})
	}
	view := gin.H{
		"id":             order.ID,
		"order_number":   order.OrderNumber,
		"status":         order.Status,
		"payment_method": order.PaymentMethod,
		"subtotal":       fmt.Sprintf("%.2f", order.Subtotal),
		"offer_subtotal": fmt.Sprintf("%.2f", order.OfferSubtotal),
		"shipping_fee":   fmt.Sprintf("%.2f", order.ShippingFee),
		"total":          fmt.Sprintf("%.2f", order.Total),
		"date":           order.CreatedAt.Format("2006-01-02 15:04:05"),
		"items":          items,
		"shipping_address": gin.H{
			"name":        order.ShippingName,
			"phone":       order.ShippingPhone,
			"line1":       order.ShippingLine1,
			"line2":       order.ShippingLine2,
			"city":        order.ShippingCity,
			"state":       order.ShippingState,
			"postal_code": order.ShippingPostalCode,
		},
	}
	if order.VoucherCode != "" {
		view["voucher_code"] = order.VoucherCode
		view["voucher_discount"] = fmt.Sprintf("%.2f", order.VoucherDiscount)
	}
	if order.CashOnDeliveryFee > 0 {
		view["cod_fee"] = fmt.Sprintf("%.2f", order.CashOnDeliveryFee)
	}
	if order.ReturnVoucherCode != "" {
		view["return_voucher_code"] = order.ReturnVoucherCode
	}
	return view
}

// ListOrders returns the acting user's orders, newest first
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, limit := utils.GetPaginationParams(c)

	// First page is hot; cached until the next order write invalidates it.
	cacheKey := fmt.Sprintf("views:orders:user:%d", user.ID)
	if page == 1 {
		if cached, ok := utils.CacheGet(cacheKey); ok {
			var views []gin.H
			if err := json.Unmarshal([]byte(cached), &views); err == nil {
				var total int64
				config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total)
				utils.SuccessWithPagination(c, "Orders retrieved successfully", views, total, page, limit)
				return
			}
		}
	}

	var total int64
	config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total)

	var orders []models.Order
	if err := config.DB.Preload("OrderItems").Where("user_id = ?", user.ID).
		Order("created_at desc").Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderSummaryView(order))
	}

	if page == 1 {
		if payload, err := json.Marshal(views); err == nil {
			utils.CacheSet(cacheKey, string(payload), 5*time.Minute)
		}
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", views, total, page, limit)
}

// GetOrderDetails returns one of the acting user's orders in full
func GetOrderDetails(c *gin.Context) {
	utils.LogInfo("GetOrderDetails called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": orderDetailView(order)})
}

// CancelOrder cancels a COD order still in processing. Inventory is not
// restocked on cancellation.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	order, err := utils.TransitionOrder(config.DB, uint(orderID), user.ID, utils.TransitionRequest{
		Actor:  utils.ActorUser,
		Action: utils.ActionCancel,
		Reason: req.Reason,
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	utils.LogInfo("User %d cancelled order %d", user.ID, order.ID)

	utils.Success(c, "Order cancelled successfully", gin.H{"status": order.Status})
}

// RequestReturn asks for a return on a delivered order
func RequestReturn(c *gin.Context) {
	utils.LogInfo("RequestReturn called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Return reason is required", nil)
		return
	}

	order, err := utils.TransitionOrder(config.DB, uint(orderID), user.ID, utils.TransitionRequest{
		Actor:  utils.ActorUser,
		Action: utils.ActionRequestReturn,
		Reason: req.Reason,
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	utils.LogInfo("User %d requested return for order %d", user.ID, order.ID)

	utils.Success(c, "Return requested successfully", gin.H{"status": order.Status})
}

// ConfirmReturnShipment marks an approved return as shipped back
func ConfirmReturnShipment(c *gin.Context) {
	utils.LogInfo("ConfirmReturnShipment called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	order, err := utils.TransitionOrder(config.DB, uint(orderID), user.ID, utils.TransitionRequest{
		Actor:  utils.ActorUser,
		Action: utils.ActionConfirmReturnShipment,
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	utils.LogInfo("User %d confirmed return shipment for order %d", user.ID, order.ID)

	utils.Success(c, "Return shipment confirmed", gin.H{"status": order.Status})
}
