// Package session keeps the identity state of browser sessions. Context is the
// state itself; the gin helpers load and store it in the request's session.
package session

import (
	"net/http"

	"github.com/healthai/riskpanel/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CookieName = "riskpanel"

	loginUserId   = "LOGIN_USER_ID"
	loginUsername = "LOGIN_USERNAME"
	loginRole     = "LOGIN_ROLE"
)

// Load returns the identity state stored in the request's session.
func Load(c *gin.Context) Context {
	s := sessions.Default(c)
	id, ok := s.Get(loginUserId).(int)
	if !ok {
		return Anonymous()
	}
	name, _ := s.Get(loginUsername).(string)
	role, _ := s.Get(loginRole).(string)
	return Context{user: &SessionUser{Id: id, Username: name, Role: model.Role(role)}}
}

// Save stores sc in the request's session. Saving an anonymous context clears it.
func Save(c *gin.Context, sc Context) error {
	u, ok := sc.User()
	if !ok {
		return Clear(c)
	}
	s := sessions.Default(c)
	s.Set(loginUserId, u.Id)
	s.Set(loginUsername, u.Username)
	s.Set(loginRole, string(u.Role))
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func GetLoginUser(c *gin.Context) (SessionUser, bool) {
	return Load(c).User()
}

func IsLogin(c *gin.Context) bool {
	return Load(c).IsAuthenticated()
}

// Clear drops everything stored in the session and expires its cookie.
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
