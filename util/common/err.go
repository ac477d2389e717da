package common

import (
	"errors"
	"fmt"

	"github.com/healthai/riskpanel/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprint(a...)
	return errors.New(msg)
}

// Combine joins the non-nil errors, returning nil when there are none.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, " panic: ", panicErr)
		}
	}
	return panicErr
}
