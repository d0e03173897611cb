// Package settings resolves the startup configuration of xgx-fault programs:
// the rich-diagnostics toggle and the backtrace depth.
//
// Sources, lowest priority first:
//  1. built-in defaults (rich diagnostics off)
//  2. a YAML file: --config if given, otherwise the first found of
//     $XDG_CONFIG_HOME/xgxfault/config.yaml and ./.xgxfault.yaml
//  3. XGXFAULT_RICH_DIAGNOSTICS
//  4. --rich-diagnostics
//
// A Loader resolves once; the result is read-only afterwards.
package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	xgxfault "github.com/xgx-io/xgx-fault"
)

// Names of the external configuration knobs.
const (
	EnvRichDiagnostics  = "XGXFAULT_RICH_DIAGNOSTICS"
	FlagRichDiagnostics = "rich-diagnostics"
	FlagConfig          = "config"
	FileName            = "config.yaml"
	LocalFileName       = ".xgxfault.yaml"
)

// Settings is the resolved configuration. Field names match snake_case YAML
// keys.
type Settings struct {
	RichDiagnostics bool `yaml:"rich_diagnostics"`
	MaxFrames       int  `yaml:"max_frames"`
}

// Diagnostics returns the failure diagnostics these settings select.
func (s Settings) Diagnostics() xgxfault.Diagnostics {
	return xgxfault.Diagnostics{Rich: s.RichDiagnostics, MaxDepth: s.MaxFrames}
}

// BindFlags registers --config and --rich-diagnostics on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Settings file (default: $XDG_CONFIG_HOME/xgxfault/config.yaml, then ./.xgxfault.yaml)")
	fs.Bool(FlagRichDiagnostics, false, "Capture and print backtraces for failures (default: $"+EnvRichDiagnostics+")")
}

// Loader resolves Settings once.
type Loader struct {
	// Flags holds flags registered by BindFlags; nil means no flags.
	Flags *pflag.FlagSet

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	once sync.Once
	s    Settings
	err  error
}

// Settings resolves the configuration on first use and returns the same
// result afterwards.
func (l *Loader) Settings() (Settings, error) {
	l.once.Do(func() {
		l.s, l.err = l.load()
	})
	return l.s, l.err
}

func (l *Loader) load() (Settings, error) {
	var s Settings

	path, explicit, err := l.configPath()
	if err != nil {
		return Settings{}, err
	}
	if path != "" {
		fileSettings, err := loadFile(path)
		switch {
		case err == nil:
			s = fileSettings
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return Settings{}, err
		}
	}

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if raw, ok := lookup(EnvRichDiagnostics); ok && raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Settings{}, xgxfault.Invalid(EnvRichDiagnostics, strconv.Quote(raw)+" is not a boolean")
		}
		s.RichDiagnostics = v
	}

	if l.Flags != nil && l.Flags.Changed(FlagRichDiagnostics) {
		v, err := l.Flags.GetBool(FlagRichDiagnostics)
		if err != nil {
			return Settings{}, xgxfault.WrapKV(err, "reading flag", "flag", FlagRichDiagnostics)
		}
		s.RichDiagnostics = v
	}
	return s, nil
}

// configPath returns the file to read and whether the user named it. It
// returns "" when no candidate exists.
func (l *Loader) configPath() (string, bool, error) {
	if l.Flags != nil {
		if p, err := l.Flags.GetString(FlagConfig); err == nil && p != "" {
			return p, true, nil
		}
	}
	var candidates []string
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "xgxfault", FileName))
	}
	candidates = append(candidates, LocalFileName)
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, false, nil
		}
	}
	return "", false, nil
}

func loadFile(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, xgxfault.Wrap(err, xgxfault.NewNote("reading settings file", "path", path))
	}
	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, xgxfault.Wrap(err, xgxfault.NewNote("decoding settings file", "path", path))
	}
	if s.MaxFrames < 0 {
		return Settings{}, xgxfault.Wrap(
			xgxfault.Invalid("max_frames", "must not be negative"),
			xgxfault.NewNote("validating settings file", "path", path),
		)
	}
	return s, nil
}
