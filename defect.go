// defect.go - programming-defect reporting.
//
// Defects are contract violations by the caller. They abort the detecting
// goroutine with a short lowercase message and never become a Failure.
package xgxfault

import "fmt"

// defectPrefix is prepended to defects detected by this package.
const defectPrefix = "xgxfault: "

func defectMessage(msg string) string { return defectPrefix + msg }

func defectf(format string, args ...any) string {
	return defectPrefix + fmt.Sprintf(format, args...)
}

// Precondition panics with msg when cond is false. msg should name the
// violated contract, e.g. "negative worker count".
func Precondition(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

// Unreachable panics with msg. Use it in switch defaults that a correct
// program never reaches.
func Unreachable(msg string) {
	panic(msg)
}
