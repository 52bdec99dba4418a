package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/utils"
)

// CartService mengelola koleksi cart per user per restoran.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddItem memasukkan menu ke cart (user, restoran). Item dengan identitas
// (menu, notes) yang sama di-increment qty-nya; selain itu dibuat baris
// baru dengan snapshot harga menu saat ini. Seluruhnya satu transaksi agar
// penambahan bersamaan tidak menghasilkan baris ganda.
func (s *CartService) AddItem(user *models.User, restaurantID, menuID uint, quantity int, notes string) (*models.Cart, error) {
	if quantity < 1 {
		return nil, utils.NewValidationError("invalid quantity", map[string]string{
			"quantity": "must be at least 1",
		})
	}

	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "restaurant not found")
		}
		return nil, utils.WrapTransaction("failed to load restaurant", err)
	}

	var menu models.Menu
	if err := s.db.Where("id = ? AND restaurant_id = ?", menuID, restaurantID).First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "menu not found")
		}
		return nil, utils.WrapTransaction("failed to load menu", err)
	}

	if !menu.IsAvailable {
		return nil, utils.NewValidationError("menu is not available", map[string]string{
			"menu_id": "menu is currently unavailable",
		})
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, utils.WrapTransaction("failed to begin transaction", tx.Error)
	}

	var cart models.Cart
	if err := tx.Where(models.Cart{UserID: user.ID, RestaurantID: restaurantID}).
		FirstOrCreate(&cart).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapTransaction("failed to find or create cart", err)
	}

	var item models.CartItem
	err := tx.Where("cart_id = ? AND menu_id = ? AND notes = ?", cart.ID, menu.ID, notes).
		First(&item).Error
	switch {
	case err == nil:
		if err := tx.Model(&item).
			Update("quantity", gorm.Expr("quantity + ?", quantity)).Error; err != nil {
			tx.Rollback()
			return nil, utils.WrapTransaction("failed to increment cart item", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			CartID:   cart.ID,
			MenuID:   menu.ID,
			Quantity: quantity,
			Price:    menu.Price, // snapshot harga saat insert
			Notes:    notes,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, utils.WrapTransaction("failed to create cart item", err)
		}
	default:
		tx.Rollback()
		return nil, utils.WrapTransaction("failed to load cart item", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.WrapTransaction("failed to commit cart update", err)
	}

	return s.loadCart(cart.ID)
}

// UpdateItem mengubah qty dan/atau notes satu item. Hanya field yang
// dikirim yang berubah; item milik user lain diperlakukan sebagai tidak
// ditemukan.
func (s *CartService) UpdateItem(user *models.User, itemID uint, quantity *int, notes *string) (*models.CartItem, error) {
	item, err := s.ownedItem(user, itemID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if quantity != nil {
		if *quantity < 1 {
			return nil, utils.NewValidationError("invalid quantity", map[string]string{
				"quantity": "must be at least 1",
			})
		}
		updates["quantity"] = *quantity
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, utils.WrapTransaction("failed to update cart item", err)
		}
	}

	if err := s.db.Preload("Menu").First(item, item.ID).Error; err != nil {
		return nil, utils.WrapTransaction("failed to reload cart item", err)
	}
	return item, nil
}

// RemoveItem menghapus satu item; cart yang tersisa kosong ikut dihapus.
func (s *CartService) RemoveItem(user *models.User, itemID uint) error {
	item, err := s.ownedItem(user, itemID)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return utils.WrapTransaction("failed to begin transaction", tx.Error)
	}

	if err := tx.Delete(&models.CartItem{}, item.ID).Error; err != nil {
		tx.Rollback()
		return utils.WrapTransaction("failed to delete cart item", err)
	}

	var remaining int64
	if err := tx.Model(&models.CartItem{}).
		Where("cart_id = ?", item.CartID).
		Count(&remaining).Error; err != nil {
		tx.Rollback()
		return utils.WrapTransaction("failed to count cart items", err)
	}

	if remaining == 0 {
		if err := tx.Delete(&models.Cart{}, item.CartID).Error; err != nil {
			tx.Rollback()
			return utils.WrapTransaction("failed to delete empty cart", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.WrapTransaction("failed to commit cart removal", err)
	}
	return nil
}

// ListCarts membersihkan cart kosong milik user lalu mengembalikan sisanya
// beserta item, menu, dan restorannya.
func (s *CartService) ListCarts(user *models.User) ([]models.Cart, error) {
	if err := s.purgeEmptyCarts(user.ID); err != nil {
		return nil, err
	}

	var carts []models.Cart
	if err := s.db.Preload("Items.Menu").Preload("Restaurant").
		Where("user_id = ?", user.ID).
		Find(&carts).Error; err != nil {
		return nil, utils.WrapTransaction("failed to list carts", err)
	}
	return carts, nil
}

// Clear menghapus semua item lalu semua cart milik user.
func (s *CartService) Clear(user *models.User) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return utils.WrapTransaction("failed to begin transaction", tx.Error)
	}

	cartIDs := s.db.Model(&models.Cart{}).Select("id").Where("user_id = ?", user.ID)
	if err := tx.Where("cart_id IN (?)", cartIDs).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		return utils.WrapTransaction("failed to clear cart items", err)
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Cart{}).Error; err != nil {
		tx.Rollback()
		return utils.WrapTransaction("failed to clear carts", err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.WrapTransaction("failed to commit cart clear", err)
	}
	return nil
}

// ownedItem memuat item yang cart induknya milik user; item user lain
// dilaporkan NotFound, bukan Forbidden.
func (s *CartService) ownedItem(user *models.User, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, user.ID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "cart item not found")
		}
		return nil, utils.WrapTransaction("failed to load cart item", err)
	}
	return &item, nil
}

func (s *CartService) purgeEmptyCarts(userID uint) error {
	// NOT EXISTS supaya jalan di MySQL maupun SQLite
	if err := s.db.
		Where("user_id = ? AND NOT EXISTS (SELECT 1 FROM cart_items WHERE cart_items.cart_id = carts.id)", userID).
		Delete(&models.Cart{}).Error; err != nil {
		return utils.WrapTransaction("failed to purge empty carts", err)
	}
	return nil
}

func (s *CartService) loadCart(cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.Preload("Items.Menu").Preload("Restaurant").
		First(&cart, cartID).Error; err != nil {
		return nil, utils.WrapTransaction("failed to reload cart", err)
	}
	return &cart, nil
}
