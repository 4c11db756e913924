// Package config loads fanout's optional TOML settings file.
//
// Every setting has a default, so a missing file is not an error, and a
// file only needs to mention what it changes:
//
//	[runner]
//	batch_size = 5
//	min_seconds = 1
//	max_seconds = 4
//	policy = "concurrent" # or "reject", "queue"
//
//	[display]
//	color = "auto" # or "ascii", "ansi", "ansi256", "truecolor"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/fanout/internal/color"
	"github.com/amonks/fanout/runner"
	"github.com/amonks/fanout/tasks"
)

const DefaultPath = "fanout.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Runner  Runner  `toml:"runner"`
	Display Display `toml:"display"`
}

type Runner struct {
	BatchSize  int    `toml:"batch_size"`
	MinSeconds int    `toml:"min_seconds"`
	MaxSeconds int    `toml:"max_seconds"`
	Policy     string `toml:"policy"`
}

// Display controls how the front ends draw. Color picks the terminal color
// profile; "auto" detects it from the environment, and anything the
// terminal can't show falls back to plain text.
type Display struct {
	Color string `toml:"color"`
}

func Default() Config {
	return Config{
		Runner: Runner{
			BatchSize:  runner.DefaultBatchSize,
			MinSeconds: tasks.DefaultMinSeconds,
			MaxSeconds: tasks.DefaultMaxSeconds,
			Policy:     runner.PolicyConcurrent.String(),
		},
		Display: Display{Color: color.ProfileAuto},
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	bs, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(bs), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.Runner.Settings(); err != nil {
		return err
	}
	if _, err := color.ParseProfile(c.Display.Color); err != nil {
		return fmt.Errorf("%w: display: %w", ErrInvalid, err)
	}
	return nil
}

// Settings converts the runner section into runner settings.
func (r Runner) Settings() (runner.Settings, error) {
	policy, err := runner.ParsePolicy(r.Policy)
	if err != nil {
		return runner.Settings{}, fmt.Errorf("%w: runner: %w", ErrInvalid, err)
	}
	s := runner.Settings{
		BatchSize:  r.BatchSize,
		MinSeconds: r.MinSeconds,
		MaxSeconds: r.MaxSeconds,
		Policy:     policy,
	}
	if err := s.Validate(); err != nil {
		return runner.Settings{}, fmt.Errorf("%w: runner: %w", ErrInvalid, err)
	}
	return s, nil
}
