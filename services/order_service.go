package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/access"
	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/utils"
)

// OrderService menjaga siklus hidup order: pending -> paid lewat
// pembayaran, atau pending -> dibatalkan (order beserta item dihapus).
// Tidak ada transisi keluar dari paid.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// ListForUser mengembalikan order milik user, terbaru dulu.
func (s *OrderService) ListForUser(user *models.User) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Items.Menu").Preload("Restaurant").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, utils.WrapTransaction("failed to list orders", err)
	}
	return orders, nil
}

// Show memuat satu order milik user dengan item + menu + pembayaran.
func (s *OrderService) Show(user *models.User, orderID uint) (*models.Order, error) {
	return s.ownedOrder(user, orderID, true)
}

// ListAll adalah tampilan admin atas seluruh order, dibatasi oleh
// evaluator akses divisi dan dipaginasi.
func (s *OrderService) ListAll(viewer *models.User, page, perPage int) ([]models.Order, int64, error) {
	offset, limit := utils.Paginate(page, perPage)
	scope := access.OrderScope(viewer)

	var total int64
	if err := s.db.Model(&models.Order{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, utils.WrapTransaction("failed to count orders", err)
	}

	var orders []models.Order
	if err := s.db.Scopes(scope).
		Preload("Items.Menu").Preload("Restaurant").Preload("User").Preload("Payment").
		Order("orders.created_at desc").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, utils.WrapTransaction("failed to list orders", err)
	}
	return orders, total, nil
}

// UpdateNotes mengganti catatan order; hanya selama masih pending.
func (s *OrderService) UpdateNotes(user *models.User, orderID uint, notes string) (*models.Order, error) {
	order, err := s.ownedOrder(user, orderID, false)
	if err != nil {
		return nil, err
	}
	if !order.IsPending() {
		return nil, utils.NewAppError(utils.ErrInvalidState, "order can no longer be modified")
	}

	if err := s.db.Model(order).Update("notes", notes).Error; err != nil {
		return nil, utils.WrapTransaction("failed to update order notes", err)
	}
	return s.Show(user, orderID)
}

// UpdateItemNotes mengganti catatan satu item order; hanya selama order
// masih pending.
func (s *OrderService) UpdateItemNotes(user *models.User, orderID, itemID uint, notes string) (*models.OrderItem, error) {
	order, err := s.ownedOrder(user, orderID, false)
	if err != nil {
		return nil, err
	}
	if !order.IsPending() {
		return nil, utils.NewAppError(utils.ErrInvalidState, "order can no longer be modified")
	}

	var item models.OrderItem
	if err := s.db.Where("id = ? AND order_id = ?", itemID, order.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "order item not found")
		}
		return nil, utils.WrapTransaction("failed to load order item", err)
	}

	if err := s.db.Model(&item).Update("notes", notes).Error; err != nil {
		return nil, utils.WrapTransaction("failed to update order item notes", err)
	}
	return &item, nil
}

// Cancel membatalkan order pending: item lalu order dihapus dalam satu
// transaksi. Order yang sudah dibayar tidak bisa dibatalkan.
func (s *OrderService) Cancel(user *models.User, orderID uint) error {
	order, err := s.ownedOrder(user, orderID, false)
	if err != nil {
		return err
	}
	if !order.IsPending() {
		return utils.NewAppError(utils.ErrInvalidState, "only pending orders can be canceled")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return utils.WrapTransaction("failed to begin transaction", tx.Error)
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return utils.WrapTransaction("failed to delete order items", err)
	}
	if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
		tx.Rollback()
		return utils.WrapTransaction("failed to delete order", err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.WrapTransaction("failed to commit order cancel", err)
	}
	return nil
}

// UpdateFulfillment mengubah status fulfillment (staff). Hanya order yang
// sudah dibayar yang diproses dapur.
func (s *OrderService) UpdateFulfillment(orderID uint, status string) (*models.Order, error) {
	switch status {
	case models.OrderFulfillmentPending, models.OrderFulfillmentProcessing, models.OrderFulfillmentCompleted:
	default:
		return nil, utils.NewValidationError("invalid fulfillment status", map[string]string{
			"status": "must be pending, processing, or completed",
		})
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "order not found")
		}
		return nil, utils.WrapTransaction("failed to load order", err)
	}
	if order.IsPending() {
		return nil, utils.NewAppError(utils.ErrInvalidState, "order has not been paid")
	}

	if err := s.db.Model(&order).Update("fulfillment_status", status).Error; err != nil {
		return nil, utils.WrapTransaction("failed to update fulfillment status", err)
	}
	return &order, nil
}

// CheckItem menandai satu item order sudah/belum disiapkan (staff).
func (s *OrderService) CheckItem(itemID uint, checked bool) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "order item not found")
		}
		return nil, utils.WrapTransaction("failed to load order item", err)
	}

	if err := s.db.Model(&item).Update("is_checked", checked).Error; err != nil {
		return nil, utils.WrapTransaction("failed to update order item", err)
	}
	return &item, nil
}

// ownedOrder memuat order milik user; order user lain dilaporkan NotFound.
func (s *OrderService) ownedOrder(user *models.User, orderID uint, eager bool) (*models.Order, error) {
	query := s.db.Where("id = ? AND user_id = ?", orderID, user.ID)
	if eager {
		query = query.Preload("Items.Menu").Preload("Restaurant").Preload("Payment")
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "order not found")
		}
		return nil, utils.WrapTransaction("failed to load order", err)
	}
	return &order, nil
}
