package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/services"
	"github.com/aryasaputra/food-order-app/utils"
)

// AdminUserController: administrasi user, khusus superadmin (route group
// sudah memakai RequireSuperadmin).
type AdminUserController struct {
	users *services.UserService
}

func NewAdminUserController(db *gorm.DB) *AdminUserController {
	return &AdminUserController{users: services.NewUserService(db)}
}

func (ac *AdminUserController) GetAllUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	users, total, err := ac.users.ListUsers(page, perPage)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All users", gin.H{
		"users": users,
		"total": total,
	})
}

// UpdateUser: patch parsial role/divisi/data-access/status aktif.
func (ac *AdminUserController) UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	type request struct {
		Role       *string   `json:"role"`
		Divisi     *string   `json:"divisi"`
		DataAccess *[]string `json:"data_access"`
		IsActive   *bool     `json:"is_active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	update := services.UserUpdate{
		Divisi:   req.Divisi,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		update.Role = &role
	}
	if req.DataAccess != nil {
		set := make(models.AccessSet, 0, len(*req.DataAccess))
		for _, token := range *req.DataAccess {
			set = append(set, models.AccessToken(token))
		}
		update.DataAccess = &set
	}

	user, err := ac.users.UpdateUser(uint(userID), update)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("User %d updated by superadmin", user.ID)
	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

func (ac *AdminUserController) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ac.users.DeleteUser(uint(userID)); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User deleted", gin.H{"user_id": userID})
}
