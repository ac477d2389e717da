package middleware

import (
	"net/http"

	"github.com/healthai/riskpanel/database/model"
	"github.com/healthai/riskpanel/web/entity"
	"github.com/healthai/riskpanel/web/locale"
	"github.com/healthai/riskpanel/web/session"

	"github.com/gin-gonic/gin"
)

// RoleRequired lets the request through only when the session user has one of roles.
// Anonymous requests get 401, other roles get 403.
func RoleRequired(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := session.Load(c)
		if !sc.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{Msg: locale.I18n(c, "pages.login.loginAgain")})
			return
		}
		if !sc.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{Msg: locale.I18n(c, "noPermission")})
			return
		}
		c.Next()
	}
}
