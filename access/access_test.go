package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/models"
)

func setupAccessDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Area{},
		&models.Restaurant{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// seedOrders membuat satu user + order per divisi.
func seedOrders(t *testing.T, db *gorm.DB) {
	t.Helper()

	area := models.Area{Name: "Pusat"}
	require.NoError(t, db.Create(&area).Error)
	restaurant := models.Restaurant{AreaID: area.ID, Name: "Warung", IsOpen: true}
	require.NoError(t, db.Create(&restaurant).Error)

	for i, divisi := range []string{"CRSD 1", "CRSD 2"} {
		user := models.User{
			Name:     divisi,
			Email:    divisi + "@example.com",
			Password: "x",
			Role:     models.RoleUser,
			Divisi:   divisi,
			IsActive: true,
		}
		require.NoError(t, db.Create(&user).Error)
		require.NoError(t, db.Create(&models.Order{
			Code:          "ORD-TEST-" + divisi,
			UserID:        user.ID,
			RestaurantID:  restaurant.ID,
			TotalPrice:    int64(10000 * (i + 1)),
			PaymentStatus: models.OrderPaymentPending,
		}).Error)
	}
}

func principal(role models.Role, set models.AccessSet) *models.User {
	return &models.User{ID: 99, Role: role, DataAccess: set, IsActive: true}
}

func TestEvaluateSuperadminUnrestricted(t *testing.T) {
	d := Evaluate(principal(models.RoleSuperadmin, nil))
	assert.Equal(t, Unrestricted, d.Mode)
}

func TestEvaluateBothTokensUnrestricted(t *testing.T) {
	d := Evaluate(principal(models.RoleAdmin, models.AccessSet{models.AccessCRSD1, models.AccessCRSD2}))
	assert.Equal(t, Unrestricted, d.Mode)
}

func TestEvaluateSingleTokenFiltered(t *testing.T) {
	d := Evaluate(principal(models.RoleAdmin, models.AccessSet{models.AccessCRSD1}))
	assert.Equal(t, FilteredByDivision, d.Mode)
	assert.Equal(t, []string{"CRSD 1"}, d.Divisions)
}

func TestEvaluateEmptyOrUnknownDeniesAll(t *testing.T) {
	d := Evaluate(principal(models.RoleAdmin, nil))
	assert.Equal(t, DenyAll, d.Mode)

	// Token tak dikenal tidak pernah membuka data
	d = Evaluate(principal(models.RoleAdmin, models.AccessSet{"crsd9"}))
	assert.Equal(t, DenyAll, d.Mode)
}

func TestHasMultipleAccess(t *testing.T) {
	assert.True(t, HasMultipleAccess(principal(models.RoleAdmin, models.AccessSet{models.AccessCRSD1, models.AccessCRSD2})))
	assert.False(t, HasMultipleAccess(principal(models.RoleAdmin, models.AccessSet{models.AccessCRSD1})))
	// Duplikat tidak dihitung dua kali
	assert.False(t, HasMultipleAccess(principal(models.RoleAdmin, models.AccessSet{models.AccessCRSD1, models.AccessCRSD1})))
}

func TestOrderScopeSingleDivision(t *testing.T) {
	db := setupAccessDB(t)
	seedOrders(t, db)

	viewer := principal(models.RoleAdmin, models.AccessSet{models.AccessCRSD1})

	var orders []models.Order
	require.NoError(t, db.Scopes(OrderScope(viewer)).Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(10000), orders[0].TotalPrice)
}

func TestOrderScopeDenyAllReturnsZeroRows(t *testing.T) {
	db := setupAccessDB(t)
	seedOrders(t, db)

	viewer := principal(models.RoleAdmin, nil)

	var orders []models.Order
	require.NoError(t, db.Scopes(OrderScope(viewer)).Find(&orders).Error)
	assert.Empty(t, orders)
}

func TestOrderScopeSuperadminSeesAll(t *testing.T) {
	db := setupAccessDB(t)
	seedOrders(t, db)

	viewer := principal(models.RoleSuperadmin, nil)

	var orders []models.Order
	require.NoError(t, db.Scopes(OrderScope(viewer)).Find(&orders).Error)
	assert.Len(t, orders, 2)
}
