package controller

import (
	"github.com/healthai/riskpanel/web/entity"
	"github.com/healthai/riskpanel/web/service"
	"github.com/healthai/riskpanel/web/session"

	"github.com/gin-gonic/gin"
)

// PredictionController serves the prediction history of the signed-in user.
type PredictionController struct {
	BaseController

	predictionService *service.PredictionService
}

func NewPredictionController(g *gin.RouterGroup, predictionService *service.PredictionService) *PredictionController {
	a := &PredictionController{predictionService: predictionService}
	a.initRouter(g)
	return a
}

func (a *PredictionController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/predictions")
	g.Use(a.checkLogin)

	g.GET("", a.list)
	g.POST("", a.record)
	g.GET("/summary", a.summary)
}

func (a *PredictionController) list(c *gin.Context) {
	u, _ := session.GetLoginUser(c)
	predictions, err := a.predictionService.ListForUser(c.Request.Context(), u.Id)
	jsonObj(c, predictions, err)
}

// record stores a finished prediction for the signed-in user.
func (a *PredictionController) record(c *gin.Context) {
	var form entity.PredictionForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.predictions.toasts.invalid"), err)
		return
	}
	if err := form.CheckValid(); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.predictions.toasts.invalid"), err)
		return
	}

	u, _ := session.GetLoginUser(c)
	p, err := a.predictionService.Record(c.Request.Context(), u.Id, form.DiseaseType, form.Result, form.Confidence)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.predictions.toasts.invalid"), err)
		return
	}
	jsonMsgObj(c, I18nWeb(c, "pages.predictions.toasts.recorded"), p, nil)
}

func (a *PredictionController) summary(c *gin.Context) {
	u, _ := session.GetLoginUser(c)
	s, err := a.predictionService.Summary(c.Request.Context(), u.Id)
	jsonObj(c, s, err)
}
