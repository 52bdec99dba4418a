package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/utils"
)

// pendingOrder menyiapkan satu order pending via jalur cart + checkout.
func pendingOrder(t *testing.T, db *gorm.DB, user *models.User) *models.Order {
	t.Helper()

	restaurant, menuA, _ := seedCatalog(t, db)
	_, err := NewCartService(db).AddItem(user, restaurant.ID, menuA.ID, 2, "")
	require.NoError(t, err)
	order, err := NewCheckoutService(db).Checkout(user, "")
	require.NoError(t, err)
	return order
}

func TestProcessPaymentMarksOrderPaid(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsurePaymentSettings(db))
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	order := pendingOrder(t, db, user)

	svc := NewPaymentService(db, nil)

	payment, err := svc.Process(context.Background(), user, order.ID, models.PaymentMethodQRIS, "")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, order.TotalPrice, payment.Amount)
	assert.NotEmpty(t, payment.TransactionID)
	require.NotNil(t, payment.PaidAt)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderPaymentPaid, reloaded.PaymentStatus)
}

func TestProcessPaymentTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsurePaymentSettings(db))
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	order := pendingOrder(t, db, user)

	svc := NewPaymentService(db, nil)

	_, err := svc.Process(context.Background(), user, order.ID, models.PaymentMethodQRIS, "")
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), user, order.ID, models.PaymentMethodBankTransfer, "")
	assert.Equal(t, utils.ErrAlreadyExists, appErrKind(t, err))

	// Order tetap paid dari pembayaran pertama
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderPaymentPaid, reloaded.PaymentStatus)

	var paymentCount int64
	db.Model(&models.Payment{}).Count(&paymentCount)
	assert.Equal(t, int64(1), paymentCount)
}

func TestProcessPaymentDuplicateOnPendingOrder(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsurePaymentSettings(db))
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	order := pendingOrder(t, db, user)

	// Payment sudah ada tapi order masih pending (mis. settlement manual
	// yang belum selesai) -> duplicate harus AlreadyExists.
	require.NoError(t, db.Create(&models.Payment{
		OrderID:       order.ID,
		UserID:        user.ID,
		Amount:        order.TotalPrice,
		PaymentMethod: models.PaymentMethodQRIS,
		Status:        models.PaymentStatusPending,
	}).Error)

	svc := NewPaymentService(db, nil)
	_, err := svc.Process(context.Background(), user, order.ID, models.PaymentMethodQRIS, "")
	assert.Equal(t, utils.ErrAlreadyExists, appErrKind(t, err))
}

func TestDuplicatePaymentInsertTranslatesToDuplicatedKey(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsurePaymentSettings(db))
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	order := pendingOrder(t, db, user)

	payment := models.Payment{
		OrderID:       order.ID,
		UserID:        user.ID,
		Amount:        order.TotalPrice,
		PaymentMethod: models.PaymentMethodQRIS,
		Status:        models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&payment).Error)

	// Insert kedua di order yang sama melanggar unique index order_id;
	// TranslateError membuatnya terbaca sebagai ErrDuplicatedKey, kategori
	// yang dipetakan Process ke AlreadyExists.
	dup := payment
	dup.ID = 0
	err := db.Create(&dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestProcessPaymentUnknownOrDisabledMethod(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsurePaymentSettings(db))
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	order := pendingOrder(t, db, user)

	svc := NewPaymentService(db, nil)

	_, err := svc.Process(context.Background(), user, order.ID, "cash", "")
	assert.Equal(t, utils.ErrValidationFailed, appErrKind(t, err))

	_, err = svc.UpdateSettings(context.Background(), map[string]interface{}{"qris_enabled": false})
	require.NoError(t, err)
	_, err = svc.Process(context.Background(), user, order.ID, models.PaymentMethodQRIS, "")
	assert.Equal(t, utils.ErrValidationFailed, appErrKind(t, err))
}

func TestProcessPaymentOrderOwnership(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsurePaymentSettings(db))
	owner := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	other := seedUser(t, db, "siti@example.com", models.RoleUser, "CRSD 2", nil)
	order := pendingOrder(t, db, owner)

	svc := NewPaymentService(db, nil)
	_, err := svc.Process(context.Background(), other, order.ID, models.PaymentMethodQRIS, "")
	assert.Equal(t, utils.ErrNotFound, appErrKind(t, err))
}

func TestShowPaymentNilWhenAbsent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsurePaymentSettings(db))
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	order := pendingOrder(t, db, user)

	svc := NewPaymentService(db, nil)

	payment, err := svc.Show(user, order.ID)
	require.NoError(t, err)
	assert.Nil(t, payment) // belum ada pembayaran: bukan error

	_, err = svc.Process(context.Background(), user, order.ID, models.PaymentMethodQRIS, "")
	require.NoError(t, err)

	payment, err = svc.Show(user, order.ID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
}

func TestAttachProof(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsurePaymentSettings(db))
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	order := pendingOrder(t, db, user)

	svc := NewPaymentService(db, nil)

	_, err := svc.AttachProof(user, order.ID, "https://files.example.com/bukti.jpg")
	assert.Equal(t, utils.ErrNotFound, appErrKind(t, err)) // belum ada payment

	_, err = svc.Process(context.Background(), user, order.ID, models.PaymentMethodBankTransfer, "")
	require.NoError(t, err)

	payment, err := svc.AttachProof(user, order.ID, "https://files.example.com/bukti.jpg")
	require.NoError(t, err)

	var reloaded models.Payment
	require.NoError(t, db.First(&reloaded, payment.ID).Error)
	assert.Equal(t, "https://files.example.com/bukti.jpg", reloaded.ProofUrl)
}

func TestEnsurePaymentSettingsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, EnsurePaymentSettings(db))
	require.NoError(t, EnsurePaymentSettings(db))

	var count int64
	db.Model(&models.PaymentSettings{}).Count(&count)
	assert.Equal(t, int64(1), count)

	svc := NewPaymentService(db, nil)
	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.QRISEnabled)
	assert.True(t, settings.TransferEnabled)
}

func TestGetAllPaymentsFiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsurePaymentSettings(db))
	superadmin := seedUser(t, db, "root@example.com", models.RoleSuperadmin, "", nil)
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	order := pendingOrder(t, db, user)

	svc := NewPaymentService(db, nil)
	_, err := svc.Process(context.Background(), user, order.ID, models.PaymentMethodQRIS, "")
	require.NoError(t, err)

	payments, total, err := svc.GetAllPayments(superadmin, models.PaymentStatusCompleted, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, payments, 1)
	assert.Equal(t, order.ID, payments[0].OrderID)

	_, total, err = svc.GetAllPayments(superadmin, models.PaymentStatusPending, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}
