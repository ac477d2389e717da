// Package controller holds the HTTP handlers of the panel: sign-in and sign-up,
// the prediction history of the signed-in user and the administrator screens.
package controller

import (
	"net/http"

	"github.com/healthai/riskpanel/web/locale"
	"github.com/healthai/riskpanel/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers, including authentication checks.
type BaseController struct{}

// checkLogin aborts requests that do not carry an authenticated session.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.loginAgain"))
		c.Abort()
		return
	}
	c.Next()
}

// I18nWeb retrieves an internationalized message for the web interface based on the current locale.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.I18n(c, name, params...)
}
