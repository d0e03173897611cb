//go:build nobacktrace

package xgxfault

// captureEnabled is false in builds tagged nobacktrace; no failure ever
// walks the stack, whatever Diagnostics says.
const captureEnabled = false
