package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/access"
	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/utils"
)

const settingsCacheKey = "payment:settings"

// PaymentService membuat dan mentransisikan pembayaran yang terikat 1:1 ke
// order. Penyelesaian pembayaran bersifat sinkron (tanpa callback gateway
// eksternal). Redis opsional untuk cache PaymentSettings; nil berarti
// selalu baca DB.
type PaymentService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewPaymentService(db *gorm.DB, rdb *redis.Client) *PaymentService {
	return &PaymentService{db: db, rdb: rdb}
}

// Process membuat pembayaran untuk order pending milik user lalu langsung
// menyelesaikannya: payment -> completed, order -> paid. Insert payment
// dan update status order dibungkus satu transaksi; keduanya terjadi atau
// tidak sama sekali.
func (s *PaymentService) Process(ctx context.Context, user *models.User, orderID uint, method, transactionID string) (*models.Payment, error) {
	var order models.Order
	err := s.db.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "order not found")
		}
		return nil, utils.WrapTransaction("failed to load order", err)
	}

	// Cek duplikat lebih dulu: order yang sudah dibayar juga gagal di
	// cek pending, tapi kategorinya duplikat, bukan salah state.
	var existing int64
	if err := s.db.Model(&models.Payment{}).
		Where("order_id = ?", order.ID).
		Count(&existing).Error; err != nil {
		return nil, utils.WrapTransaction("failed to check existing payment", err)
	}
	if existing > 0 {
		return nil, utils.NewAppError(utils.ErrAlreadyExists, "payment already exists for this order")
	}

	if !order.IsPending() {
		return nil, utils.NewAppError(utils.ErrInvalidState, "order is not awaiting payment")
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.MethodEnabled(method) {
		return nil, utils.NewValidationError("payment method not available", map[string]string{
			"payment_method": "method is disabled or unknown",
		})
	}

	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, utils.WrapTransaction("failed to begin transaction", tx.Error)
	}

	now := time.Now()
	payment := models.Payment{
		OrderID:       order.ID,
		UserID:        user.ID,
		Amount:        order.TotalPrice,
		PaymentMethod: method,
		Status:        models.PaymentStatusPending,
		TransactionID: transactionID,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		// Unique index di order_id menutup race antara Count di atas dan
		// insert di sini.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewAppError(utils.ErrAlreadyExists, "payment already exists for this order")
		}
		return nil, utils.WrapTransaction("failed to create payment", err)
	}

	payment.Status = models.PaymentStatusCompleted
	payment.PaidAt = &now
	if err := tx.Save(&payment).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapTransaction("failed to complete payment", err)
	}

	if err := tx.Model(&order).Update("payment_status", models.OrderPaymentPaid).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapTransaction("failed to mark order as paid", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.WrapTransaction("failed to commit payment", err)
	}

	return &payment, nil
}

// Show mengembalikan pembayaran untuk order milik user, atau nil jika
// belum ada (bukan error).
func (s *PaymentService) Show(user *models.User, orderID uint) (*models.Payment, error) {
	if _, err := s.ownedOrderID(user, orderID); err != nil {
		return nil, err
	}

	var payment models.Payment
	err := s.db.Where("order_id = ?", orderID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapTransaction("failed to load payment", err)
	}
	return &payment, nil
}

// AttachProof menempelkan referensi artefak bukti bayar (URL opaque, byte
// file diurus kolaborator storage) ke pembayaran milik user.
func (s *PaymentService) AttachProof(user *models.User, orderID uint, proofURL string) (*models.Payment, error) {
	payment, err := s.Show(user, orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, utils.NewAppError(utils.ErrNotFound, "payment not found")
	}

	if err := s.db.Model(payment).Update("proof_url", proofURL).Error; err != nil {
		return nil, utils.WrapTransaction("failed to attach payment proof", err)
	}
	return payment, nil
}

// GetAllPayments adalah tampilan admin: paginasi, filter status opsional,
// dibatasi evaluator akses divisi, dengan order + user ter-preload.
func (s *PaymentService) GetAllPayments(viewer *models.User, status string, page, perPage int) ([]models.Payment, int64, error) {
	offset, limit := utils.Paginate(page, perPage)
	scope := access.PaymentScope(viewer)

	query := s.db.Model(&models.Payment{}).Scopes(scope)
	if status != "" {
		query = query.Where("payments.status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, utils.WrapTransaction("failed to count payments", err)
	}

	var payments []models.Payment
	if err := query.
		Preload("Order").Preload("Order.User").
		Order("payments.created_at desc").
		Offset(offset).Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, 0, utils.WrapTransaction("failed to list payments", err)
	}
	return payments, total, nil
}

// GetSettings membaca record PaymentSettings (read-through cache).
func (s *PaymentService) GetSettings(ctx context.Context) (*models.PaymentSettings, error) {
	if s.rdb != nil {
		var cached models.PaymentSettings
		if hit, err := utils.GetCache(ctx, s.rdb, settingsCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	var settings models.PaymentSettings
	if err := s.db.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Baris default dibuat saat migrasi; absennya berarti bootstrap
			// terlewat, bukan kondisi yang diperbaiki diam-diam di sini.
			return nil, utils.NewAppError(utils.ErrNotFound, "payment settings not initialized")
		}
		return nil, utils.WrapTransaction("failed to load payment settings", err)
	}

	if s.rdb != nil {
		if err := utils.SetCache(ctx, s.rdb, settingsCacheKey, &settings, 10*time.Minute); err != nil {
			utils.ErrorLogger.Printf("failed to cache payment settings: %v", err)
		}
	}
	return &settings, nil
}

// UpdateSettings mengganti konfigurasi metode pembayaran (superadmin) dan
// membatalkan cache.
func (s *PaymentService) UpdateSettings(ctx context.Context, updates map[string]interface{}) (*models.PaymentSettings, error) {
	var settings models.PaymentSettings
	if err := s.db.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "payment settings not initialized")
		}
		return nil, utils.WrapTransaction("failed to load payment settings", err)
	}

	if err := s.db.Model(&settings).Updates(updates).Error; err != nil {
		return nil, utils.WrapTransaction("failed to update payment settings", err)
	}

	if s.rdb != nil {
		if err := utils.DeleteCache(ctx, s.rdb, settingsCacheKey); err != nil {
			utils.ErrorLogger.Printf("failed to invalidate settings cache: %v", err)
		}
	}
	return &settings, nil
}

// EnsurePaymentSettings membuat baris konfigurasi default bila belum ada.
// Dipanggil eksplisit saat migrasi/startup.
func EnsurePaymentSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PaymentSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.PaymentSettings{
		QRISEnabled:     true,
		TransferEnabled: true,
	}).Error
}

func (s *PaymentService) ownedOrderID(user *models.User, orderID uint) (uint, error) {
	var order models.Order
	err := s.db.Select("id").Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, utils.NewAppError(utils.ErrNotFound, "order not found")
		}
		return 0, utils.WrapTransaction("failed to load order", err)
	}
	return order.ID, nil
}
