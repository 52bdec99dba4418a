package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/config"
	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/router"
	"github.com/aryasaputra/food-order-app/services"
	"github.com/aryasaputra/food-order-app/utils"
)

func main() {
	utils.InitLogger()

	cfg := config.LoadConfig()

	db, err := cfg.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	rdb := cfg.InitRedis()
	if rdb == nil {
		utils.InfoLogger.Println("Redis not configured, catalog cache disabled")
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seed(db)

	r := router.SetupRouter(db, rdb)

	utils.InfoLogger.Printf("Listening on port %s", cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Area{},
		&models.Restaurant{},
		&models.Menu{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.PaymentSettings{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seed memastikan record konfigurasi pembayaran dan superadmin pertama
// ada. Minimal satu superadmin aktif harus selalu ada; bootstrap awal
// dibuat dari env SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD.
func seed(db *gorm.DB) {
	if err := services.EnsurePaymentSettings(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed payment settings: %v", err)
	}

	var superadmins int64
	if err := db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleSuperadmin, true).
		Count(&superadmins).Error; err != nil {
		utils.ErrorLogger.Fatalf("Failed to count superadmins: %v", err)
	}
	if superadmins > 0 {
		return
	}

	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.ErrorLogger.Fatal("No active superadmin found and SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD not set")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to hash superadmin password: %v", err)
	}

	if err := db.Create(&models.User{
		Name:     "Superadmin",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleSuperadmin,
		IsActive: true,
	}).Error; err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed superadmin: %v", err)
	}
	utils.InfoLogger.Printf("Seeded initial superadmin %s", email)
}
