// Command faultdemo loads a configuration file and reports any failure
// through the boundary presenter. It is the reference entry point for
// programs built on xgx-fault: every exit path goes through
// Presenter.Present exactly once.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xgx-io/xgx-fault/boundary"
	"github.com/xgx-io/xgx-fault/internal/demo"
	"github.com/xgx-io/xgx-fault/internal/settings"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app holds state resolved while the command runs; the presenter is built
// from it after Execute returns.
type app struct {
	loader settings.Loader
	logger *zap.Logger
	opts   []boundary.Option
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{logger: zap.NewNop()}
	root := newRootCmd(a, stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()

	p := boundary.New(stderr, append(a.opts, boundary.WithLogger(a.logger))...)
	code := p.Present(err)
	_ = a.logger.Sync()
	return code
}

func newRootCmd(a *app, stdout, stderr io.Writer) *cobra.Command {
	var (
		dir     string
		verbose bool
	)

	root := &cobra.Command{
		Use:           "faultdemo",
		Short:         "Load a configuration file and report failures as cause chains",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
# Load ./app.yaml
faultdemo load app.yaml

# Re-read with retries, printing a backtrace on failure
faultdemo reload app.yaml --rich-diagnostics
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				a.logger = newLogger(stderr)
			}
			a.loader.Flags = cmd.Flags()
			s, err := a.loader.Settings()
			if err != nil {
				return err
			}
			a.opts = append(a.opts, boundary.WithDiagnostics(s.Diagnostics()))
			a.logger.Debug("settings resolved",
				zap.Bool("rich_diagnostics", s.RichDiagnostics),
				zap.Int("max_frames", s.MaxFrames),
			)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dir, "dir", ".", "Directory configuration paths are relative to")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr at debug level")
	settings.BindFlags(root.PersistentFlags())

	newLoader := func() (*demo.Loader, error) {
		s, err := a.loader.Settings()
		if err != nil {
			return nil, err
		}
		return demo.NewLoader(os.DirFS(dir), s.Diagnostics()), nil
	}

	root.AddCommand(newLoadCmd("load", "Load a configuration file", stdout, newLoader, (*demo.Loader).Load))
	root.AddCommand(newLoadCmd("reload", "Re-read a configuration file, retrying transient failures", stdout, newLoader, (*demo.Loader).Reload))
	return root
}

// newLogger returns a development-style console logger writing to w.
func newLogger(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel))
}

func newLoadCmd(
	use, short string,
	stdout io.Writer,
	newLoader func() (*demo.Loader, error),
	load func(*demo.Loader, string) (demo.Config, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <path>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLoader()
			if err != nil {
				return err
			}
			cfg, err := load(l, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "name=%s workers=%d\n", cfg.Name, cfg.Workers)
			return err
		},
	}
}
