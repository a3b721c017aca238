package utils

import (
	"testing"
	"time"

	"github.com/kiran-703/ShopNest/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNextStatusLegalTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from   string
		actor  string
		action string
		want   string
	}{
		{models.OrderStatusPending, ActorAdmin, ActionMarkShipped, models.OrderStatusShipped},
		{models.OrderStatusProcessing, ActorAdmin, ActionMarkShipped, models.OrderStatusShipped},
		{models.OrderStatusProcessing, ActorAdmin, ActionCancel, models.OrderStatusCancelled},
		{models.OrderStatusShipped, ActorAdmin, ActionMarkDelivered, models.OrderStatusDelivered},
		{models.OrderStatusProcessing, ActorUser, ActionCancel, models.OrderStatusCancelled},
		{models.OrderStatusDelivered, ActorUser, ActionRequestReturn, models.OrderStatusReturnRequested},
		{models.OrderStatusReturnRequested, ActorAdmin, ActionApproveReturn, models.OrderStatusReturnApproved},
		{models.OrderStatusReturnRequested, ActorAdmin, ActionDenyReturn, models.OrderStatusDelivered},
		{models.OrderStatusReturnApproved, ActorUser, ActionConfirmReturnShipment, models.OrderStatusReturnShipped},
		{models.OrderStatusReturnShipped, ActorAdmin, ActionFinalizeReturn, models.OrderStatusReturned},
		{models.OrderStatusPending, ActorPayment, ActionVerifyPayment, models.OrderStatusProcessing},
	}
	for _, tc := range cases {
		got, ok := NextStatus(tc.from, tc.actor, tc.action)
		require.True(t, ok, "%s/%s/%s should be legal", tc.from, tc.actor, tc.action)
		require.Equal(t, tc.want, got)
	}
}

func TestNextStatusIllegalTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from   string
		actor  string
		action string
	}{
		// Users never ship, deliver or review returns.
		{models.OrderStatusProcessing, ActorUser, ActionMarkShipped},
		{models.OrderStatusShipped, ActorUser, ActionMarkDelivered},
		{models.OrderStatusReturnRequested, ActorUser, ActionApproveReturn},
		// Shipped orders cannot be cancelled by anyone.
		{models.OrderStatusShipped, ActorUser, ActionCancel},
		{models.OrderStatusShipped, ActorAdmin, ActionCancel},
		// Terminal states go nowhere.
		{models.OrderStatusCancelled, ActorAdmin, ActionMarkShipped},
		{models.OrderStatusReturned, ActorUser, ActionRequestReturn},
		// Returns must be approved before shipping back.
		{models.OrderStatusReturnRequested, ActorUser, ActionConfirmReturnShipment},
		// No return without a delivery.
		{models.OrderStatusProcessing, ActorUser, ActionRequestReturn},
		// Payment confirmation only releases a pending order.
		{models.OrderStatusProcessing, ActorPayment, ActionVerifyPayment},
		{models.OrderStatusCancelled, ActorPayment, ActionVerifyPayment},
	}
	for _, tc := range cases {
		_, ok := NextStatus(tc.from, tc.actor, tc.action)
		require.False(t, ok, "%s/%s/%s should be illegal", tc.from, tc.actor, tc.action)
	}
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, status string, total float64) models.Order {
	t.Helper()
	order := models.Order{
		UserID:        userID,
		OrderNumber:   GenerateOrderNumber(time.Now()),
		Total:         total,
		Status:        status,
		PaymentMethod: models.PaymentMethodCOD,
		OrderItems: []models.OrderItem{
			{Name: "Table Runner", Price: total, OriginalPrice: total, Quantity: 1},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestApproveReturnMintsVoucher(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user.ID, models.OrderStatusReturnRequested, 500)

	updated, err := TransitionOrder(db, order.ID, 0, TransitionRequest{
		Actor:  ActorAdmin,
		Action: ActionApproveReturn,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusReturnApproved, updated.Status)
	require.NotEmpty(t, updated.ReturnVoucherCode)

	var voucher models.Voucher
	require.NoError(t, db.Where("code = ?", updated.ReturnVoucherCode).First(&voucher).Error)
	require.Equal(t, models.VoucherTypeFixed, voucher.Type)
	require.InDelta(t, 500, voucher.Discount, 0.001)
	require.InDelta(t, 501, voucher.MinSpend, 0.001)
	require.Equal(t, 1, voucher.UsageLimit)
	require.True(t, voucher.IsReturnVoucher)

	var grant models.UserVoucher
	require.NoError(t, db.Where("user_id = ? AND voucher_id = ?", user.ID, voucher.ID).First(&grant).Error)
}

func TestOrderImmutableAcrossTransitions(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user.ID, models.OrderStatusProcessing, 460)

	_, err := TransitionOrder(db, order.ID, 0, TransitionRequest{Actor: ActorAdmin, Action: ActionMarkShipped})
	require.NoError(t, err)
	_, err = TransitionOrder(db, order.ID, 0, TransitionRequest{Actor: ActorAdmin, Action: ActionMarkDelivered})
	require.NoError(t, err)

	var after models.Order
	require.NoError(t, db.Preload("OrderItems").First(&after, order.ID).Error)
	require.Equal(t, models.OrderStatusDelivered, after.Status)
	require.InDelta(t, 460, after.Total, 0.001)
	require.Len(t, after.OrderItems, 1)
	require.InDelta(t, 460, after.OrderItems[0].Price, 0.001)
}

func TestUserCancelIsCODOnly(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user.ID, models.OrderStatusProcessing, 300)
	require.NoError(t, db.Model(&order).Update("payment_method", models.PaymentMethodOnline).Error)

	_, err := TransitionOrder(db, order.ID, user.ID, TransitionRequest{
		Actor:  ActorUser,
		Action: ActionCancel,
	})
	require.Error(t, err)

	require.NoError(t, db.Model(&order).Update("payment_method", models.PaymentMethodCOD).Error)
	updated, err := TransitionOrder(db, order.ID, user.ID, TransitionRequest{
		Actor:  ActorUser,
		Action: ActionCancel,
		Reason: "changed my mind",
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, updated.Status)
}

func TestVerifyPaymentReleasesPendingOrder(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user.ID, models.OrderStatusPending, 850)
	require.NoError(t, db.Model(&order).Update("payment_method", models.PaymentMethodOnline).Error)

	updated, err := TransitionOrder(db, order.ID, user.ID, TransitionRequest{
		Actor:         ActorPayment,
		Action:        ActionVerifyPayment,
		TransactionID: "pay_abc123",
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusProcessing, updated.Status)
	require.Equal(t, "pay_abc123", updated.TransactionID)

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	require.Equal(t, models.OrderStatusProcessing, after.Status)
	require.Equal(t, "pay_abc123", after.TransactionID)

	// Re-verification of a released order is rejected.
	_, err = TransitionOrder(db, order.ID, user.ID, TransitionRequest{
		Actor:         ActorPayment,
		Action:        ActionVerifyPayment,
		TransactionID: "pay_other",
	})
	require.Error(t, err)
}

func TestVerifyPaymentScopedToOrderOwner(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user.ID, models.OrderStatusPending, 850)

	_, err := TransitionOrder(db, order.ID, user.ID+1, TransitionRequest{
		Actor:         ActorPayment,
		Action:        ActionVerifyPayment,
		TransactionID: "pay_abc123",
	})
	require.Error(t, err)

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	require.Equal(t, models.OrderStatusPending, after.Status)
}

func TestTransitionNotices(t *testing.T) {
	t.Parallel()

	order := models.Order{ID: 7, OrderNumber: "26030712345"}

	require.Nil(t, transitionNotice(ActionRequestReturn, order))
	require.Nil(t, transitionNotice(ActionFinalizeReturn, order))

	order.ReturnDenyReason = "item shows heavy use"
	denied := transitionNotice(ActionDenyReturn, order)
	require.NotNil(t, denied)
	require.Equal(t, "Return declined", denied.Title)
	require.Contains(t, denied.Description, "declined")
	require.Contains(t, denied.Description, "item shows heavy use")
	require.NotContains(t, denied.Description, "is now")

	paid := transitionNotice(ActionVerifyPayment, order)
	require.NotNil(t, paid)
	require.Equal(t, "Payment received", paid.Title)

	order.Status = models.OrderStatusShipped
	generic := transitionNotice(ActionMarkShipped, order)
	require.NotNil(t, generic)
	require.Contains(t, generic.Description, "is now shipped")
}

func TestDeniedReturnAllowsRetry(t *testing.T) {
	t.Parallel()

	afterDeny, ok := NextStatus(models.OrderStatusReturnRequested, ActorAdmin, ActionDenyReturn)
	require.True(t, ok)
	require.Equal(t, models.OrderStatusDelivered, afterDeny)

	// A denied return lands back on delivered, so a new request stays possible.
	_, ok = NextStatus(afterDeny, ActorUser, ActionRequestReturn)
	require.True(t, ok)
}
