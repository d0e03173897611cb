// construct.go - leaf failures and semantic constructors.
//
// Package-level constructors never capture a backtrace; build through a
// Diagnostics value with Rich set to opt in.
package xgxfault

import (
	"fmt"
	"time"
)

// leaf is a failure detected at its origin. It has no cause.
type leaf struct {
	msg  string
	code Code
	stk  Stack
}

func (e *leaf) Error() string    { return e.Message() }
func (e *leaf) Unwrap() error    { return nil }
func (e *leaf) Backtrace() Stack { return e.stk }
func (e *leaf) Code() Code       { return e.code }

func (e *leaf) Message() string {
	if e.msg != "" {
		return e.msg
	}
	if e.code != "" {
		return string(e.code)
	}
	return "error"
}

// New creates a leaf failure with msg.
func New(msg string) Failure {
	return &leaf{msg: msg}
}

// Newf creates a leaf failure with a formatted message.
func Newf(format string, args ...any) Failure {
	return &leaf{msg: fmt.Sprintf(format, args...)}
}

// Fail creates a leaf failure classified by code.
func Fail(code Code, msg string) Failure {
	return &leaf{msg: msg, code: code}
}

// NotFound creates a not_found failure for a missing entity.
func NotFound(entity string, id any) Failure {
	return &leaf{msg: fmt.Sprintf("%s %v not found", entity, id), code: CodeNotFound}
}

// Invalid indicates syntactically or semantically invalid input.
func Invalid(field, reason string) Failure {
	return &leaf{msg: fmt.Sprintf("invalid %s: %s", field, reason), code: CodeInvalid}
}

// Unavailable indicates a transient unavailability, e.g. a dependency down.
func Unavailable(service string) Failure {
	return &leaf{msg: service + " unavailable", code: CodeUnavailable}
}

// Timeout indicates an operation exceeded d.
func Timeout(op string, d time.Duration) Failure {
	return &leaf{msg: fmt.Sprintf("%s timed out after %s", op, d), code: CodeTimeout}
}

var _ Failure = (*leaf)(nil)
