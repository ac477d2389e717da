package controller

import (
	"errors"
	"strconv"

	"github.com/healthai/riskpanel/database/model"
	"github.com/healthai/riskpanel/logger"
	"github.com/healthai/riskpanel/web/middleware"
	"github.com/healthai/riskpanel/web/service"
	"github.com/healthai/riskpanel/web/session"

	"github.com/gin-gonic/gin"
)

const defaultLogCount = 100

// UserAdminController serves the administrator screens: identities, every
// prediction, and the recent server log.
type UserAdminController struct {
	userAdminService  *service.UserAdminService
	predictionService *service.PredictionService
}

func NewUserAdminController(g *gin.RouterGroup, userAdminService *service.UserAdminService, predictionService *service.PredictionService) *UserAdminController {
	a := &UserAdminController{userAdminService: userAdminService, predictionService: predictionService}
	a.initRouter(g)
	return a
}

func (a *UserAdminController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/admin")
	g.Use(middleware.RoleRequired(model.RoleAdmin))

	g.GET("/users", a.listUsers)
	g.POST("/users/:id/del", a.delUser)
	g.GET("/predictions", a.listPredictions)
	g.POST("/logs/:count", a.getLogs)
}

// listUsers lists identities; administrators are included with ?all=true.
func (a *UserAdminController) listUsers(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	users, err := a.userAdminService.ListUsers(c.Request.Context(), all)
	jsonObj(c, users, err)
}

func (a *UserAdminController) delUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.admin.toasts.invalidId"), err)
		return
	}
	actor, _ := session.GetLoginUser(c)

	err = a.userAdminService.DeleteUser(c.Request.Context(), actor.Id, id)
	switch {
	case errors.Is(err, service.ErrProtectedIdentity):
		jsonMsg(c, I18nWeb(c, "pages.admin.toasts.protected"), err)
	case errors.Is(err, service.ErrSelfDelete):
		jsonMsg(c, I18nWeb(c, "pages.admin.toasts.self"), err)
	case err != nil:
		jsonMsg(c, I18nWeb(c, "somethingWentWrong"), err)
	default:
		jsonMsg(c, I18nWeb(c, "pages.admin.toasts.deleted"), nil)
	}
}

func (a *UserAdminController) listPredictions(c *gin.Context) {
	predictions, err := a.predictionService.ListAll(c.Request.Context())
	jsonObj(c, predictions, err)
}

func (a *UserAdminController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count <= 0 {
		count = defaultLogCount
	}
	level := c.PostForm("level")
	if level == "" {
		level = "info"
	}
	jsonObj(c, logger.GetLogs(count, level), nil)
}
