package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
	razorpay "github.com/razorpay/razorpay-go"
)

// InitiatePayment creates a Razorpay order for a pending online order
func InitiatePayment(c *gin.Context) {
	utils.LogInfo("InitiatePayment called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}
	if order.PaymentMethod != models.PaymentMethodOnline {
		utils.BadRequest(c, "Order does not use online payment", nil)
		return
	}
	if order.Status != models.OrderStatusPending {
		utils.BadRequest(c, "Order is not awaiting payment", nil)
		return
	}

	amountPaise := int(order.Total * 100)
	utils.LogInfo("Initiating payment of %d paise for order %d", amountPaise, order.ID)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         "order_rcptid_" + strconv.FormatUint(uint64(order.ID), 10),
		"payment_capture": 1,
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to initiate payment", nil)
		return
	}
	razorpayOrderID := fmt.Sprintf("%v", rzOrder["id"])

	payment := models.Payment{
		OrderID:         order.ID,
		UserID:          user.ID,
		Amount:          order.Total,
		Status:          "pending",
		RazorpayOrderID: razorpayOrderID,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		utils.LogError("Failed to record payment for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to initiate payment", nil)
		return
	}
	utils.LogInfo("Payment initiated for order %d, razorpay order %s", order.ID, razorpayOrderID)
	go utils.InvalidateOrderCaches(user.ID)

	utils.Success(c, "Payment initiated successfully", gin.H{
		"order_id":          order.ID,
		"order_number":      order.OrderNumber,
		"razorpay_order_id": razorpayOrderID,
		"amount":            fmt.Sprintf("%.2f", order.Total),
		"currency":          "INR",
		"key":               os.Getenv("RAZORPAY_KEY"),
	})
}

// VerifyPayment checks the Razorpay signature and marks the order as paid
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		OrderID           uint   `json:"order_id" binding:"required"`
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	data := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	h := hmac.New(sha256.New, []byte(os.Getenv("RAZORPAY_SECRET")))
	h.Write([]byte(data))
	if hex.EncodeToString(h.Sum(nil)) != req.RazorpaySignature {
		utils.LogError("Payment signature mismatch for order %d, user %d", req.OrderID, user.ID)
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
		return
	}

	// The state machine owns the pending -> processing move; only a pending
	// order owned by the acting user passes.
	order, err := utils.TransitionOrder(config.DB, req.OrderID, user.ID, utils.TransitionRequest{
		Actor:         utils.ActorPayment,
		Action:        utils.ActionVerifyPayment,
		TransactionID: req.RazorpayPaymentID,
	})
	if err != nil {
		utils.LogError("Payment verification failed for order %d: %v", req.OrderID, err)
		utils.RespondWithError(c, err)
		return
	}

	if err := config.DB.Model(&models.Payment{}).
		Where("order_id = ? AND razorpay_order_id = ?", order.ID, req.RazorpayOrderID).
		Updates(map[string]interface{}{
			"status":     "completed",
			"payment_id": req.RazorpayPaymentID,
		}).Error; err != nil {
		utils.LogError("Failed to complete payment record for order %d: %v", order.ID, err)
	}
	utils.LogInfo("Payment verified for order %d", order.ID)

	utils.Success(c, "Payment verified successfully", gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
	})
}

// ListMyPayments returns the user's payment history
func ListMyPayments(c *gin.Context) {
	utils.LogInfo("ListMyPayments called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, limit := utils.GetPaginationParams(c)
	cacheKey := fmt.Sprintf("views:payments:user:%d", user.ID)
	var total int64
	config.DB.Model(&models.Payment{}).Where("user_id = ?", user.ID).Count(&total)

	if page == 1 {
		if cached, ok := utils.CacheGet(cacheKey); ok {
			var rows []gin.H
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				utils.SuccessWithPagination(c, "Payments retrieved successfully", gin.H{"payments": rows}, total, page, limit)
				return
			}
		}
	}

	var payments []models.Payment
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&payments).Error; err != nil {
		utils.LogError("Failed to load payments for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load payments", nil)
		return
	}

	rows := make([]gin.H, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, gin.H{
			"id":         p.ID,
			"order_id":   p.OrderID,
			"amount":     fmt.Sprintf("%.2f", p.Amount),
			"status":     p.Status,
			"payment_id": p.PaymentID,
			"created_at": p.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	if page == 1 {
		if payload, err := json.Marshal(rows); err == nil {
			utils.CacheSet(cacheKey, string(payload), 5*time.Minute)
		}
	}
	utils.SuccessWithPagination(c, "Payments retrieved successfully", gin.H{"payments": rows}, total, page, limit)
}
