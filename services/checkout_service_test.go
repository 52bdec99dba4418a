package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/utils"
)

func TestCheckoutTotalsFromSnapshots(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	restaurant, menuA, menuB := seedCatalog(t, db)

	carts := NewCartService(db)
	_, err := carts.AddItem(user, restaurant.ID, menuA.ID, 2, "sama")
	require.NoError(t, err)
	_, err = carts.AddItem(user, restaurant.ID, menuB.ID, 1, "sama")
	require.NoError(t, err)

	order, err := NewCheckoutService(db).Checkout(user, "catatan order")
	require.NoError(t, err)

	// 2 x 10000 + 1 x 5000
	assert.Equal(t, int64(25000), order.TotalPrice)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, models.OrderPaymentPending, order.PaymentStatus)
	assert.Equal(t, "catatan order", order.Notes)

	var sum int64
	for _, item := range order.Items {
		sum += item.Subtotal()
	}
	assert.Equal(t, order.TotalPrice, sum)
}

func TestCheckoutStableUnderMenuPriceChange(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	restaurant, menuA, menuB := seedCatalog(t, db)

	carts := NewCartService(db)
	_, err := carts.AddItem(user, restaurant.ID, menuA.ID, 2, "")
	require.NoError(t, err)
	_, err = carts.AddItem(user, restaurant.ID, menuB.ID, 1, "")
	require.NoError(t, err)

	// Restoran menaikkan harga menu A sebelum checkout
	require.NoError(t, db.Model(menuA).Update("price", int64(20000)).Error)

	order, err := NewCheckoutService(db).Checkout(user, "")
	require.NoError(t, err)

	// Tetap 25000 dari snapshot, bukan 45000 dari harga baru
	assert.Equal(t, int64(25000), order.TotalPrice)
}

func TestCheckoutConsumesCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	restaurant, menuA, _ := seedCatalog(t, db)

	carts := NewCartService(db)
	_, err := carts.AddItem(user, restaurant.ID, menuA.ID, 1, "")
	require.NoError(t, err)

	_, err = NewCheckoutService(db).Checkout(user, "")
	require.NoError(t, err)

	var cartCount, itemCount int64
	db.Model(&models.Cart{}).Count(&cartCount)
	db.Model(&models.CartItem{}).Count(&itemCount)
	assert.Zero(t, cartCount)
	assert.Zero(t, itemCount)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	restaurant, _, _ := seedCatalog(t, db)

	svc := NewCheckoutService(db)

	// Tidak ada cart sama sekali
	_, err := svc.Checkout(user, "")
	assert.Equal(t, utils.ErrEmptyCart, appErrKind(t, err))

	// Cart ada tapi kosong
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID, RestaurantID: restaurant.ID}).Error)
	_, err = svc.Checkout(user, "")
	assert.Equal(t, utils.ErrEmptyCart, appErrKind(t, err))

	// Tidak ada baris order yang tertulis
	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestCheckoutCopiesItemNotes(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi@example.com", models.RoleUser, "CRSD 1", nil)
	restaurant, menuA, _ := seedCatalog(t, db)

	carts := NewCartService(db)
	_, err := carts.AddItem(user, restaurant.ID, menuA.ID, 3, "tanpa sambal")
	require.NoError(t, err)

	order, err := NewCheckoutService(db).Checkout(user, "")
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "tanpa sambal", order.Items[0].Notes)
	assert.Equal(t, 3, order.Items[0].Quantity)
}

func TestGenerateOrderCode(t *testing.T) {
	now := time.Date(2024, 5, 17, 10, 30, 45, 0, time.UTC)

	codeA := GenerateOrderCode(now)
	codeB := GenerateOrderCode(now)

	assert.True(t, strings.HasPrefix(codeA, "ORD-20240517103045-"))
	// Sufiks acak membedakan dua checkout di detik yang sama
	assert.NotEqual(t, codeA, codeB)
}
