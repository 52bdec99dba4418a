package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aryasaputra/food-order-app/utils"
)

// RequireStaff meloloskan admin dan superadmin.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}
		if !user.Role.IsStaff() {
			utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperadmin meloloskan hanya superadmin.
func RequireSuperadmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}
		if !user.Role.CanManageUsers() {
			utils.RespondError(c, http.StatusForbidden, errors.New("superadmin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
