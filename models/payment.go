package models

import (
	"time"
)

// Payment tracks an online payment attempt against an order
type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderID         uint      `json:"order_id" gorm:"index"`
	UserID          uint      `json:"user_id"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status"` // pending, completed, failed
	RazorpayOrderID string    `json:"razorpay_order_id"`
	PaymentID       string    `json:"payment_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
