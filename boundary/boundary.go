// Package boundary is the single sanctioned exit path for recoverable
// failures. A program funnels its final outcome through a Presenter exactly
// once; the Presenter renders the failure chain to the error sink and turns
// the outcome into a process exit status.
//
//	func main() {
//		p := boundary.New(os.Stderr)
//		os.Exit(p.Run(run))
//	}
//
// Panics are not recovered here: abrupt termination is reserved for
// programming defects and keeps the runtime's own report.
package boundary

import (
	"io"
	"os"

	"go.uber.org/zap"

	xgxfault "github.com/xgx-io/xgx-fault"
	"github.com/xgx-io/xgx-fault/xgxzap"
)

// Exit codes returned by Present.
const (
	// ExitSuccess indicates the program completed without a failure.
	ExitSuccess = 0

	// ExitFailure indicates a recoverable failure reached the boundary.
	ExitFailure = 1
)

// Presenter renders terminal outcomes.
type Presenter struct {
	out    io.Writer
	diag   xgxfault.Diagnostics
	logger *zap.Logger
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithDiagnostics sets the diagnostics the program was configured with. A
// backtrace is only rendered when d is rich.
func WithDiagnostics(d xgxfault.Diagnostics) Option {
	return func(p *Presenter) { p.diag = d }
}

// WithLogger records every presented failure at debug level. The default
// logger is a no-op.
func WithLogger(l *zap.Logger) Option {
	return func(p *Presenter) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a Presenter writing to out. A nil out is a programming defect.
func New(out io.Writer, opts ...Option) *Presenter {
	xgxfault.Precondition(out != nil, "boundary: nil error sink")
	p := &Presenter{out: out, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Diagnostics returns the configured diagnostics.
func (p *Presenter) Diagnostics() xgxfault.Diagnostics { return p.diag }

// Present renders err and returns the exit status. A nil err writes nothing
// and returns ExitSuccess.
func (p *Presenter) Present(err error) int {
	if err == nil {
		return ExitSuccess
	}
	werr := xgxfault.WriteRendering(p.out, err, p.diag.Enabled())
	if werr == nil {
		_, werr = io.WriteString(p.out, "\n")
	}
	if werr != nil {
		// The exit status still reports the failure.
		p.logger.Warn("error sink write failed", zap.Error(werr))
	}
	p.logger.Debug("failure presented", xgxzap.Field("failure", err))
	return ExitFailure
}

// Run calls fn and presents its outcome.
func (p *Presenter) Run(fn func() error) int {
	return p.Present(fn())
}

// Exit presents err and terminates the process with the resulting status.
func (p *Presenter) Exit(err error) {
	os.Exit(p.Present(err))
}
