package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiran-703/ShopNest/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Actors that may drive order status transitions. ActorPayment is the
// payment verification path acting on the order owner's behalf.
const (
	ActorUser    = "user"
	ActorAdmin   = "admin"
	ActorPayment = "payment"
)

// Actions on an order's status
const (
	ActionMarkShipped           = "mark-shipped"
	ActionMarkDelivered         = "mark-delivered"
	ActionCancel                = "cancel"
	ActionRequestReturn         = "request-return"
	ActionApproveReturn         = "approve-return"
	ActionDenyReturn            = "deny-return"
	ActionConfirmReturnShipment = "confirm-return-shipment"
	ActionFinalizeReturn        = "finalize-return"
	ActionVerifyPayment         = "verify-payment"
)

type transitionKey struct {
	From   string
	Actor  string
	Action string
}

// orderTransitions is the single authoritative transition table. No code
// path sets an order status outside of it. A denied return puts the order
// back to delivered so further return attempts remain possible.
var orderTransitions = map[transitionKey]string{
	{models.OrderStatusPending, ActorAdmin, ActionMarkShipped}:      models.OrderStatusShipped,
	{models.OrderStatusPending, ActorAdmin, ActionMarkDelivered}:    models.OrderStatusDelivered,
	{models.OrderStatusPending, ActorAdmin, ActionCancel}:           models.OrderStatusCancelled,
	{models.OrderStatusProcessing, ActorAdmin, ActionMarkShipped}:   models.OrderStatusShipped,
	{models.OrderStatusProcessing, ActorAdmin, ActionMarkDelivered}: models.OrderStatusDelivered,
	{models.OrderStatusProcessing, ActorAdmin, ActionCancel}:        models.OrderStatusCancelled,
	{models.OrderStatusShipped, ActorAdmin, ActionMarkDelivered}:    models.OrderStatusDelivered,

	// COD-only guard enforced in TransitionOrder
	{models.OrderStatusProcessing, ActorUser, ActionCancel}: models.OrderStatusCancelled,

	{models.OrderStatusDelivered, ActorUser, ActionRequestReturn}: models.OrderStatusReturnRequested,

	{models.OrderStatusReturnRequested, ActorAdmin, ActionApproveReturn}: models.OrderStatusReturnApproved,
	{models.OrderStatusReturnRequested, ActorAdmin, ActionDenyReturn}:    models.OrderStatusDelivered,

	{models.OrderStatusReturnApproved, ActorUser, ActionConfirmReturnShipment}: models.OrderStatusReturnShipped,

	{models.OrderStatusReturnShipped, ActorAdmin, ActionFinalizeReturn}: models.OrderStatusReturned,

	// Online payment confirmation releases a pending order for fulfilment
	{models.OrderStatusPending, ActorPayment, ActionVerifyPayment}: models.OrderStatusProcessing,
}

// NextStatus resolves the transition table for one (from, actor, action)
// combination. Second return is false for an illegal transition.
func NextStatus(from, actor, action string) (string, bool) {
	to, ok := orderTransitions[transitionKey{From: from, Actor: actor, Action: action}]
	return to, ok
}

// TransitionRequest describes one attempted status change. TransactionID is
// only read by ActionVerifyPayment.
type TransitionRequest struct {
	Actor         string
	Action        string
	Reason        string
	TransactionID string
}

// TransitionOrder moves an order along the status state machine. The status
// change and its compensating write (the return voucher mint on approval)
// commit in one transaction. Notifications are attempted after commit and
// never roll back the transition. Cancellation does not restock inventory.
func TransitionOrder(db *gorm.DB, orderID uint, userID uint, req TransitionRequest) (*models.Order, error) {
	var order models.Order
	var notice *NotificationEvent

	err := db.Transaction(func(tx *gorm.DB) error {
		query := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		if req.Actor != ActorAdmin {
			query = query.Where("user_id = ?", userID)
		}
		if err := query.First(&order, orderID).Error; err != nil {
			return NotFoundError("Order not found", err)
		}

		to, ok := NextStatus(order.Status, req.Actor, req.Action)
		if !ok {
			return ConflictError(
				fmt.Sprintf("Cannot %s an order that is %s", req.Action, order.Status), nil)
		}

		if req.Actor == ActorUser && req.Action == ActionCancel &&
			order.PaymentMethod != models.PaymentMethodCOD {
			return ConflictError("Only cash-on-delivery orders can be cancelled", nil)
		}

		updates := map[string]interface{}{"status": to, "updated_at": time.Now()}

		switch req.Action {
		case ActionCancel:
			if req.Reason != "" {
				updates["cancellation_reason"] = req.Reason
			}
		case ActionRequestReturn:
			if req.Reason == "" {
				return BadRequestError("Return reason is required", nil)
			}
			updates["return_reason"] = req.Reason
		case ActionDenyReturn:
			updates["return_deny_reason"] = req.Reason
			order.ReturnDenyReason = req.Reason
		case ActionVerifyPayment:
			updates["transaction_id"] = req.TransactionID
			order.TransactionID = req.TransactionID
		case ActionApproveReturn:
			voucher, err := mintReturnVoucher(tx, &order)
			if err != nil {
				return err
			}
			updates["return_voucher_code"] = voucher.Code
			order.ReturnVoucherCode = voucher.Code
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(updates).Error; err != nil {
			return WrapError(err, "failed to update order status")
		}
		order.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}

	notice = transitionNotice(req.Action, order)
	if notice != nil {
		go func(uid uint, n NotificationEvent) {
			Notify(uid, n)
			InvalidateOrderCaches(uid)
		}(order.UserID, *notice)
	}
	go PublishOrderEvent("order."+order.Status, order)
	if order.Status == models.OrderStatusDelivered {
		go RewardReferralOnDelivery(db, order)
	}

	return &order, nil
}

// transitionNotice builds the user-facing notification for a committed
// transition. Nil means the transition is silent.
func transitionNotice(action string, order models.Order) *NotificationEvent {
	href := fmt.Sprintf("/orders/%d", order.ID)
	switch action {
	case ActionRequestReturn, ActionFinalizeReturn:
		// No notification: a return request awaits the admin silently, and
		// the return voucher was already announced at approval time.
		return nil
	case ActionApproveReturn:
		return &NotificationEvent{
			Icon:  "ticket",
			Title: "Return approved",
			Description: fmt.Sprintf("Your return for order %s was approved. Voucher %s worth %.2f has been added to your account.",
				order.OrderNumber, order.ReturnVoucherCode, order.Total),
			Href: href,
		}
	case ActionDenyReturn:
		description := fmt.Sprintf("Your return request for order %s was declined.", order.OrderNumber)
		if order.ReturnDenyReason != "" {
			description = fmt.Sprintf("Your return request for order %s was declined: %s", order.OrderNumber, order.ReturnDenyReason)
		}
		return &NotificationEvent{
			Icon:        "x-circle",
			Title:       "Return declined",
			Description: description,
			Href:        href,
		}
	case ActionVerifyPayment:
		return &NotificationEvent{
			Icon:        "credit-card",
			Title:       "Payment received",
			Description: fmt.Sprintf("Payment for order %s was successful. We are preparing your order.", order.OrderNumber),
			Href:        href,
		}
	default:
		return &NotificationEvent{
			Icon:        "package",
			Title:       "Order update",
			Description: fmt.Sprintf("Your order %s is now %s.", order.OrderNumber, order.Status),
			Href:        href,
		}
	}
}

// mintReturnVoucher creates the store-credit voucher for an approved return:
// a fixed voucher worth the order's total with a minimum spend one unit above
// it, so it only applies once a future cart subtotal exceeds the old total.
func mintReturnVoucher(tx *gorm.DB, order *models.Order) (*models.Voucher, error) {
	code := strings.ToUpper("RET-" + uuid.New().String()[:8])
	voucher := models.Voucher{
		Code:            code,
		Type:            models.VoucherTypeFixed,
		DiscountType:    models.VoucherDiscountOrder,
		Discount:        order.Total,
		MinSpend:        order.Total + 1,
		UsageLimit:      1,
		IsReturnVoucher: true,
		Active:          true,
	}
	if err := tx.Create(&voucher).Error; err != nil {
		return nil, WrapError(err, "failed to mint return voucher")
	}
	grant := models.UserVoucher{
		UserID:    order.UserID,
		VoucherID: voucher.ID,
		Code:      voucher.Code,
		GrantedAt: time.Now(),
	}
	if err := tx.Create(&grant).Error; err != nil {
		return nil, WrapError(err, "failed to grant return voucher")
	}
	return &voucher, nil
}
