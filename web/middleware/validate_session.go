package middleware

import (
	"context"
	"net/http"

	"github.com/healthai/riskpanel/database/model"
	"github.com/healthai/riskpanel/logger"
	"github.com/healthai/riskpanel/web/entity"
	"github.com/healthai/riskpanel/web/locale"
	"github.com/healthai/riskpanel/web/session"

	"github.com/gin-gonic/gin"
)

// UserLookup finds a stored identity by id, returning nil when there is none.
type UserLookup interface {
	FindById(ctx context.Context, id int) (*model.User, error)
}

// ValidateSession checks an authenticated session against the store on every
// request. A session whose user no longer exists is cleared and the request
// continues as anonymous; a renamed or re-roled user gets a refreshed session.
func ValidateSession(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		su, ok := session.Load(c).User()
		if !ok {
			c.Next()
			return
		}

		u, err := users.FindById(c.Request.Context(), su.Id)
		if err != nil {
			logger.Warning("session user lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, entity.Msg{Msg: locale.I18n(c, "somethingWentWrong")})
			return
		}

		switch {
		case u == nil:
			logger.Infof("session of removed user %q dropped, request: %s", su.Username, GetRequestID(c))
			if err := session.Clear(c); err != nil {
				logger.Warning("Unable to clear session:", err)
			}
		case u.Username != su.Username || u.Role != su.Role:
			if err := session.Save(c, session.Authenticated(u)); err != nil {
				logger.Warning("Unable to refresh session:", err)
			}
		}
		c.Next()
	}
}
