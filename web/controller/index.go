package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/healthai/riskpanel/config"
	"github.com/healthai/riskpanel/database"
	"github.com/healthai/riskpanel/logger"
	"github.com/healthai/riskpanel/web/entity"
	"github.com/healthai/riskpanel/web/middleware"
	"github.com/healthai/riskpanel/web/service"
	"github.com/healthai/riskpanel/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles sign-in, sign-out and sign-up.
type IndexController struct {
	BaseController

	authService   *service.AuthService
	sessionMaxAge int
}

// NewIndexController creates an IndexController and registers its routes on g.
// sessionMaxAge is in minutes.
func NewIndexController(g *gin.RouterGroup, authService *service.AuthService, sessionMaxAge int) *IndexController {
	a := &IndexController{authService: authService, sessionMaxAge: sessionMaxAge}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/logout", a.logout)

	g.POST("/login", a.login)
	g.POST("/register", a.register)
}

// index reports the current identity, if any.
func (a *IndexController) index(c *gin.Context) {
	obj := gin.H{"version": config.GetVersion()}
	if u, ok := session.GetLoginUser(c); ok {
		obj["user"] = gin.H{"id": u.Id, "username": u.Username, "role": u.Role}
	}
	jsonObj(c, obj, nil)
}

func (a *IndexController) login(c *gin.Context) {
	var form entity.LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.emptyUsername"))
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.emptyPassword"))
		return
	}

	// signing in again replaces whatever identity the session held
	sc, err := session.Load(c).Logout().Login(c.Request.Context(), a.authService, form.Username, form.Password)
	if err != nil {
		logger.Warningf("wrong username: %q, IP: %q, request: %s", form.Username, getRemoteIp(c), middleware.GetRequestID(c))
		_ = session.Clear(c)
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.wrongUsernameOrPassword"))
		return
	}

	session.SetMaxAge(c, a.sessionMaxAge*60)
	if err := session.Save(c, sc); err != nil {
		logger.Warning("Unable to save session: ", err)
		pureJsonMsg(c, http.StatusInternalServerError, false, I18nWeb(c, "somethingWentWrong"))
		return
	}

	logger.Infof("%q logged in successfully, IP: %q, request: %s", form.Username, getRemoteIp(c), middleware.GetRequestID(c))
	jsonMsg(c, I18nWeb(c, "pages.login.toasts.successLogin"), nil)
}

func (a *IndexController) logout(c *gin.Context) {
	sc := session.Load(c)
	if u, ok := sc.User(); ok {
		logger.Infof("%q logged out successfully", u.Username)
	}
	if err := session.Save(c, sc.Logout()); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// register creates an identity with role user. It does not sign the new user in.
func (a *IndexController) register(c *gin.Context) {
	var form entity.RegisterForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.invalidFormData"))
		return
	}
	if key := form.CheckValid(); key != "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, key, "Min=="+strconv.Itoa(entity.MinPasswordLength)))
		return
	}

	u, err := a.authService.Register(c.Request.Context(), form.Username, form.Password, form.Email)
	switch {
	case errors.Is(err, database.ErrDuplicateIdentity):
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.duplicate"))
		return
	case errors.Is(err, service.ErrInvalidLogin):
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.emptyUsername"))
		return
	case err != nil:
		jsonMsg(c, I18nWeb(c, "somethingWentWrong"), err)
		return
	}

	logger.Infof("registered %q (id %d), IP: %q", u.Username, u.Id, getRemoteIp(c))
	jsonMsg(c, I18nWeb(c, "pages.register.toasts.success"), nil)
}
