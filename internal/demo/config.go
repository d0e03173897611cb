// Package demo is a small configuration layer used by cmd/faultdemo. It
// shows the intended shape of a layer's error surface: leaf failures at the
// point of detection, one context per call site, and a two-variant sum type
// for callers.
package demo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gopkg.in/yaml.v3"

	xgxfault "github.com/xgx-io/xgx-fault"
)

// ConfigError is the sum type of failures returned by Loader.
type ConfigError int

const (
	// ConfigRead means the configuration file could not be read.
	ConfigRead ConfigError = iota + 1
	// ConfigParse means the file was read but its content is unusable.
	ConfigParse
)

func (k ConfigError) String() string {
	switch k {
	case ConfigRead:
		return "read"
	case ConfigParse:
		return "parse"
	default:
		return fmt.Sprintf("ConfigError(%d)", int(k))
	}
}

// ConfigErrors declares every ConfigError variant.
var ConfigErrors = xgxfault.Variants(ConfigRead, ConfigParse)

// Config is the demo configuration document.
type Config struct {
	Name    string `yaml:"name"`
	Workers int    `yaml:"workers"`
}

// decodeContext marks the single call site that decodes a document.
type decodeContext struct {
	Path string
}

func (c decodeContext) Describe() string {
	return fmt.Sprintf("cannot decode file %q", c.Path)
}

// invalidContext marks the single call site that validates a document.
type invalidContext struct {
	Path string
}

func (c invalidContext) Describe() string {
	return fmt.Sprintf("invalid configuration in %q", c.Path)
}

// Loader reads Config documents from a file system.
type Loader struct {
	fsys        fs.FS
	diag        xgxfault.Diagnostics
	parseErrors *xgxfault.Coalescer[ConfigError]
	newBackOff  func() backoff.BackOff
}

// Option configures a Loader.
type Option func(*Loader)

// WithBackOff sets the retry policy used by Reload.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(l *Loader) { l.newBackOff = fn }
}

// NewLoader returns a Loader over fsys. Failures are built under d.
func NewLoader(fsys fs.FS, d xgxfault.Diagnostics, opts ...Option) *Loader {
	xgxfault.Precondition(fsys != nil, "demo: nil file system")

	// Decoding and validation each have exactly one call site, so their
	// conversions may be implicit.
	parseErrors := xgxfault.NewCoalescer[ConfigError](d)
	xgxfault.Implicit[*xgxfault.Context[decodeContext]](parseErrors, ConfigParse)
	xgxfault.Implicit[*xgxfault.Context[invalidContext]](parseErrors, ConfigParse)

	l := &Loader{
		fsys:        fsys,
		diag:        d,
		parseErrors: parseErrors,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxElapsedTime = 2 * time.Second
			return backoff.WithMaxRetries(b, 3)
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and decodes the configuration at path.
func (l *Loader) Load(path string) (Config, error) {
	data, err := l.read(path)
	if err != nil {
		// Reading has two call sites (Load and Reload), so the conversion
		// is explicit and the context tells them apart.
		return Config{}, xgxfault.CoalesceWith(l.diag, xgxfault.WrapWith(l.diag, err, "loading configuration"), ConfigRead)
	}
	return l.decode(path, data)
}

// Reload re-reads the configuration at path, retrying while the read failure
// is transient. Decoding failures are never retried.
func (l *Loader) Reload(path string) (Config, error) {
	var data []byte
	op := func() error {
		var err error
		data, err = l.read(path)
		if err != nil && !xgxfault.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(op, l.newBackOff()); err != nil {
		return Config{}, xgxfault.CoalesceWith(l.diag, xgxfault.WrapWith(l.diag, err, "reloading configuration"), ConfigRead)
	}
	return l.decode(path, data)
}

// read is the leaf operation: it turns file-system errors into coded leaf
// failures.
func (l *Loader) read(path string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err == nil {
		return data, nil
	}
	code := xgxfault.CodeUnavailable
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = xgxfault.CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		code = xgxfault.CodeForbidden
	case errors.Is(err, fs.ErrInvalid):
		code = xgxfault.CodeInvalid
	}
	return nil, l.diag.Fail(code, fmt.Sprintf("cannot open file %q", path))
}

func (l *Loader) decode(path string, data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, l.coalesce(xgxfault.WrapWith(l.diag, err, decodeContext{Path: path}))
	}
	if err := validate(cfg); err != nil {
		return Config{}, l.coalesce(xgxfault.WrapWith(l.diag, err, invalidContext{Path: path}))
	}
	return cfg, nil
}

func (l *Loader) coalesce(err error) error {
	if sum, ok := l.parseErrors.From(err); ok {
		return sum
	}
	xgxfault.Unreachable("demo: parse failure without conversion")
	return nil
}

func validate(cfg Config) error {
	if cfg.Name == "" {
		return xgxfault.Invalid("name", "must not be empty")
	}
	if cfg.Workers < 0 {
		return xgxfault.Invalid("workers", "must not be negative")
	}
	return nil
}
