// Package entity defines the request and response shapes of the web layer.
package entity

import (
	"math"
	"strings"

	"github.com/healthai/riskpanel/util/common"
)

const MinPasswordLength = 6

// Msg represents a standard API response message with success status, message text, and optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterForm is the sign-up form. Confirm must repeat Password.
type RegisterForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Confirm  string `json:"confirm" form:"confirm"`
}

// PredictionForm carries a finished model run to be recorded for the signed-in user.
type PredictionForm struct {
	DiseaseType string   `json:"diseaseType" form:"diseaseType"`
	Result      string   `json:"result" form:"result"`
	Confidence  *float64 `json:"confidence" form:"confidence"`
}

// CheckValid reports the first problem with the form as a translation key.
func (f *RegisterForm) CheckValid() string {
	f.Username = strings.TrimSpace(f.Username)
	switch {
	case f.Username == "":
		return "pages.register.toasts.emptyUsername"
	case len(f.Password) < MinPasswordLength:
		return "pages.register.toasts.shortPassword"
	case f.Password != f.Confirm:
		return "pages.register.toasts.passwordMismatch"
	}
	return ""
}

func (f *PredictionForm) CheckValid() error {
	if strings.TrimSpace(f.DiseaseType) == "" {
		return common.NewError("disease type is empty")
	}
	if strings.TrimSpace(f.Result) == "" {
		return common.NewError("result is empty")
	}
	if f.Confidence != nil && (math.IsNaN(*f.Confidence) || *f.Confidence < 0 || *f.Confidence > 100) {
		return common.NewError("confidence is not in [0, 100]:", *f.Confidence)
	}
	return nil
}
