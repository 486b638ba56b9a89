package glume

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrWindowClosed is returned by Run on a window that has already run.
var ErrWindowClosed = errors.New("glume: window closed")

// ErrWindowExists is returned by BuildWindow while another window is alive.
var ErrWindowExists = errors.New("glume: a window already exists")

// ConfigurationError reports an invalid WindowConfiguration.
// It is always returned before any native resource is allocated.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("glume: invalid %s: %s", e.Field, e.Reason)
}

// PlatformError reports a failure of the native windowing system or context.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("glume: %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// catchPlatformPanic converts a panic raised by the native binding into a PlatformError.
// It must be deferred directly.
func catchPlatformPanic(op string, err *error) {
	v := recover()
	if v == nil {
		return
	}

	perr, ok := v.(error)
	if !ok {
		perr = fmt.Errorf("panic: %v\n%s", v, debug.Stack())
	}
	*err = &PlatformError{Op: op, Err: perr}
}
