package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/middlewares"
	"github.com/aryasaputra/food-order-app/services"
	"github.com/aryasaputra/food-order-app/utils"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{carts: services.NewCartService(db)}
}

// AddItem memasukkan menu ke cart user.
func (cc *CartController) AddItem(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	type request struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		MenuID       uint   `json:"menu_id" binding:"required"`
		Quantity     int    `json:"quantity" binding:"required,min=1"`
		Notes        string `json:"notes"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.carts.AddItem(user, req.RestaurantID, req.MenuID, req.Quantity, req.Notes)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", cart)
}

// UpdateItem: patch qty/notes satu item.
func (cc *CartController) UpdateItem(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	type request struct {
		Quantity *int    `json:"quantity"`
		Notes    *string `json:"notes"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := cc.carts.UpdateItem(user, uint(itemID), req.Quantity, req.Notes)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart item updated", item)
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := cc.carts.RemoveItem(user, uint(itemID)); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart item removed", gin.H{"item_id": itemID})
}

func (cc *CartController) ListCarts(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	carts, err := cc.carts.ListCarts(user)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of carts", carts)
}

func (cc *CartController) Clear(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	if err := cc.carts.Clear(user); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}
