// Package common holds small error helpers shared by the server and the CLI.
package common

import (
	"errors"
	"fmt"

	"github.com/ifsp/cadastro/logger"
)

func NewErrorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func NewError(a ...any) error {
	return errors.New(fmt.Sprint(a...))
}

// Combine joins the non-nil errors, returning nil when there are none.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover logs a panic with msg and returns the recovered value. Use it as
// `defer common.Recover(msg)`; recover has no effect from a nested call.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil && msg != "" {
		logger.Error(msg, "panic:", panicErr)
	}
	return panicErr
}
