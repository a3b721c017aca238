package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending         = "pending"
	OrderStatusProcessing      = "processing"
	OrderStatusShipped         = "shipped"
	OrderStatusDelivered       = "delivered"
	OrderStatusCancelled       = "cancelled"
	OrderStatusReturnRequested = "return-requested"
	OrderStatusReturnApproved  = "return-approved"
	OrderStatusReturnDenied    = "return-denied"
	OrderStatusReturnShipped   = "return-shipped"
	OrderStatusReturned        = "returned"
)

// Payment method constants
const (
	PaymentMethodCOD    = "cash-on-delivery"
	PaymentMethodOnline = "online"
)

// Order is the immutable record of a placed order. Items and monetary totals
// never change after creation; only Status and the return-tracking fields do.
type Order struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	UserID               uint        `json:"user_id"`
	User                 User        `json:"user" gorm:"foreignKey:UserID"`
	OrderNumber          string      `json:"order_number"`
	Subtotal             float64     `json:"subtotal"`
	OfferSubtotal        float64     `json:"offer_subtotal"`
	ShippingFee          float64     `json:"shipping_fee"`
	CashOnDeliveryFee    float64     `json:"cash_on_delivery_fee"`
	VoucherCode          string      `json:"voucher_code,omitempty"`
	VoucherDiscount      float64     `json:"voucher_discount,omitempty"`
	Total                float64     `json:"total"`
	PaymentMethod        string      `json:"payment_method"`
	TransactionID        string      `json:"transaction_id,omitempty"`
	PaymentAccountNumber string      `json:"payment_account_number,omitempty"`
	Status               string      `json:"status"`
	ReturnReason         string      `json:"return_reason,omitempty"`
	ReturnDenyReason     string      `json:"return_deny_reason,omitempty"`
	CancellationReason   string      `json:"cancellation_reason,omitempty"`
	ReturnVoucherCode    string      `json:"return_voucher_code,omitempty"`
	ShippingName         string      `json:"shipping_name"`
	ShippingPhone        string      `json:"shipping_phone"`
	ShippingLine1        string      `json:"shipping_line1"`
	ShippingLine2        string      `json:"shipping_line2"`
	ShippingCity         string      `json:"shipping_city"`
	ShippingState        string      `json:"shipping_state"`
	ShippingPostalCode   string      `json:"shipping_postal_code"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
	OrderItems           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is a snapshot of a product line captured at order time. It is
// never re-derived from live Product state.
type OrderItem struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	OrderID          uint    `json:"order_id"`
	ProductID        uint    `json:"product_id"`
	Name             string  `json:"name"`
	ImageURL         string  `json:"image_url"`
	Price            float64 `json:"price"`
	OriginalPrice    float64 `json:"original_price"`
	Quantity         int     `json:"quantity"`
	ReturnPolicyDays int     `json:"return_policy_days"`
}
