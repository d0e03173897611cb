// predicates.go - classification questions answered over a chain.
//
// Retry policy itself is out of scope: IsRetryable is a hint for the leaf
// operations that own a retry loop.
package xgxfault

import "errors"

type coder interface{ Code() Code }

// CodeOf returns the first code found along err's chain, or "".
func CodeOf(err error) Code {
	for e := range ChainOf(err).All() {
		if c, ok := e.(coder); ok && c.Code() != "" {
			return c.Code()
		}
	}
	return ""
}

// HasCode reports whether any link of err's chain carries code.
func HasCode(err error, code Code) bool {
	for e := range ChainOf(err).All() {
		if c, ok := e.(coder); ok && c.Code() == code {
			return true
		}
	}
	return false
}

// IsRetryable reports whether err's code commonly denotes a transient
// condition: unavailable, timeout or too_many_requests.
func IsRetryable(err error) bool {
	switch CodeOf(err) {
	case CodeUnavailable, CodeTimeout, CodeTooManyRequests:
		return true
	default:
		return false
	}
}

// Has reports whether target appears anywhere in err's chain. It is a
// nil-safe errors.Is.
func Has(err, target error) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.Is(err, target)
}
