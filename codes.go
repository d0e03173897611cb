// codes.go - the code vocabulary shipped with the core.
//
// A project may mint its own codes; IsBuiltin separates those from the
// stable set below, which log pipelines can index on.
package xgxfault

// Request and input problems.
const (
	CodeBadRequest      Code = "bad_request"
	CodeUnauthorized    Code = "unauthorized"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeInvalid         Code = "invalid"
	CodeTooManyRequests Code = "too_many_requests"
)

// Transient conditions; IsRetryable holds for these and CodeTooManyRequests.
const (
	CodeTimeout     Code = "timeout"
	CodeUnavailable Code = "unavailable"
)

// CodeInternal marks a failure the caller cannot act on.
const CodeInternal Code = "internal"

var builtinCodes = map[Code]bool{
	CodeBadRequest: true, CodeUnauthorized: true, CodeForbidden: true,
	CodeNotFound: true, CodeConflict: true, CodeInvalid: true,
	CodeTooManyRequests: true, CodeTimeout: true, CodeUnavailable: true,
	CodeInternal: true,
}

// IsBuiltin reports whether c belongs to the core vocabulary. The empty
// code is never built in.
func (c Code) IsBuiltin() bool { return builtinCodes[c] }
