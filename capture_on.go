//go:build !nobacktrace

package xgxfault

// captureEnabled is false only in builds tagged nobacktrace.
const captureEnabled = true
