package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/utils"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogController melayani pembacaan katalog (area, restoran, menu).
// Hanya jalur baca: cart mengambil harga dan ketersediaan dari sini saat
// add-to-cart. Redis opsional sebagai read-through cache.
type CatalogController struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewCatalogController(db *gorm.DB, rdb *redis.Client) *CatalogController {
	return &CatalogController{DB: db, RDB: rdb}
}

func (cc *CatalogController) GetAllAreas(c *gin.Context) {
	var areas []models.Area

	if cc.RDB != nil {
		if hit, err := utils.GetCache(c.Request.Context(), cc.RDB, "catalog:areas", &areas); err == nil && hit {
			utils.RespondJSON(c, http.StatusOK, "List of areas", areas)
			return
		}
	}

	if err := cc.DB.Order("name asc").Find(&areas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if cc.RDB != nil {
		if err := utils.SetCache(c.Request.Context(), cc.RDB, "catalog:areas", areas, catalogCacheTTL); err != nil {
			utils.ErrorLogger.Printf("failed to cache areas: %v", err)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "List of areas", areas)
}

func (cc *CatalogController) GetAllRestaurants(c *gin.Context) {
	areaID := c.Query("area_id")
	cacheKey := fmt.Sprintf("catalog:restaurants:%s", areaID)

	var restaurants []models.Restaurant

	if cc.RDB != nil {
		if hit, err := utils.GetCache(c.Request.Context(), cc.RDB, cacheKey, &restaurants); err == nil && hit {
			utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
			return
		}
	}

	query := cc.DB.Preload("Area").Order("name asc")
	if areaID != "" {
		query = query.Where("area_id = ?", areaID)
	}
	if err := query.Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if cc.RDB != nil {
		if err := utils.SetCache(c.Request.Context(), cc.RDB, cacheKey, restaurants, catalogCacheTTL); err != nil {
			utils.ErrorLogger.Printf("failed to cache restaurants: %v", err)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

// GetRestaurantMenus: daftar menu satu restoran beserta harga terkini.
func (cc *CatalogController) GetRestaurantMenus(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var restaurant models.Restaurant
	if err := cc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("restaurant not found"))
		return
	}

	cacheKey := fmt.Sprintf("catalog:menus:%d", restaurantID)
	var menus []models.Menu

	if cc.RDB != nil {
		if hit, err := utils.GetCache(c.Request.Context(), cc.RDB, cacheKey, &menus); err == nil && hit {
			utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
			return
		}
	}

	if err := cc.DB.Where("restaurant_id = ?", restaurantID).
		Order("name asc").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if cc.RDB != nil {
		if err := utils.SetCache(c.Request.Context(), cc.RDB, cacheKey, menus, catalogCacheTTL); err != nil {
			utils.ErrorLogger.Printf("failed to cache menus: %v", err)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}
