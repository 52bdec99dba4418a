package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/utils"
)

// CheckoutService mengubah satu cart menjadi order immutable dalam satu
// transaksi.
type CheckoutService struct {
	db *gorm.DB
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{db: db}
}

// Checkout mengonversi cart user (satu cart aktif per pemanggilan, cart
// paling lama lebih dulu) menjadi order berstatus pending. Total dihitung
// dari snapshot harga item, bukan harga menu terkini. Insert order + item
// dan penghapusan cart + item berada dalam satu transaksi; kegagalan apa
// pun membatalkan semuanya.
func (s *CheckoutService) Checkout(user *models.User, notes string) (*models.Order, error) {
	var cart models.Cart
	err := s.db.Preload("Items").
		Where("user_id = ?", user.ID).
		Order("id asc").
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrEmptyCart, "cart is empty")
		}
		return nil, utils.WrapTransaction("failed to load cart", err)
	}
	if len(cart.Items) == 0 {
		return nil, utils.NewAppError(utils.ErrEmptyCart, "cart is empty")
	}

	total := cart.Total()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, utils.WrapTransaction("failed to begin transaction", tx.Error)
	}

	order := models.Order{
		Code:              GenerateOrderCode(time.Now()),
		UserID:            user.ID,
		RestaurantID:      cart.RestaurantID,
		TotalPrice:        total,
		PaymentStatus:     models.OrderPaymentPending,
		FulfillmentStatus: models.OrderFulfillmentPending,
		Notes:             notes,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapTransaction("checkout failed", err)
	}

	for _, item := range cart.Items {
		orderItem := models.OrderItem{
			OrderID:  order.ID,
			MenuID:   item.MenuID,
			Quantity: item.Quantity,
			Price:    item.Price, // salin snapshot dari cart item
			Notes:    item.Notes,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, utils.WrapTransaction("checkout failed", err)
		}
	}

	if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapTransaction("checkout failed", err)
	}
	if err := tx.Delete(&models.Cart{}, cart.ID).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapTransaction("checkout failed", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.WrapTransaction("checkout failed", err)
	}

	var created models.Order
	if err := s.db.Preload("Items.Menu").Preload("Restaurant").
		First(&created, order.ID).Error; err != nil {
		return nil, utils.WrapTransaction("failed to reload order", err)
	}
	return &created, nil
}

// GenerateOrderCode membangun kode order dari timestamp presisi detik plus
// sufiks acak. Sufiks menutup tabrakan antar checkout dalam detik yang
// sama; unique index di orders.code tetap jadi penjaga terakhir.
func GenerateOrderCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102150405"), suffix)
}
