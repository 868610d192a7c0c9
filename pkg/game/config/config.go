// Package config loads the game's settings from defaults, environment
// variables (optionally from a .env file) and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"echomaze/pkg/game/generator"
	"echomaze/pkg/game/markers"
)

// EnvPrefix prefixes every environment variable the game reads.
const EnvPrefix = "ECHOMAZE_"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Audio output modes
const (
	AudioNone  = "none"
	AudioText  = "text"
	AudioSynth = "synth"
	AudioBoth  = "both"
)

// Config holds the game's settings.
type Config struct {
	Width             int     // Maze width in cells
	Height            int     // Maze height in cells
	Seed              int64   // Maze seed; 0 picks one from the clock
	TimeLimitSeconds  int     // Round length
	ExtraLoopFraction float64 // Fraction of surplus passages, 0 for a pure tree
	Generator         string  // Maze algorithm name
	DroneStepMillis   int     // Delay between drone cells
	RecallPolicy      string  // Which marker is recalled on a shared cell
	Audio             string  // none, text, synth or both
	LogLevel          string  // logrus level name
	LogFile           string  // Log destination; empty for stderr
	Language          string  // Translation language
	DumpPath          string  // Directory for end-of-round maze dumps; empty disables
	EnvFile           string  // .env file consulted before the process environment
	SkipMenu          bool    // Start the round without the title menu
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:             20,
		Height:            20,
		TimeLimitSeconds:  60,
		ExtraLoopFraction: 0,
		Generator:         generator.DefaultGenerator.Name(),
		DroneStepMillis:   500,
		RecallPolicy:      markers.MostRecent.String(),
		Audio:             AudioBoth,
		LogLevel:          log.InfoLevel.String(),
		Language:          "en",
		EnvFile:           ".env",
	}
}

// Load builds the configuration for a process started with args (without
// the program name).
func Load(args []string) (Config, error) {
	return load(args, os.LookupEnv, os.Stderr)
}

// lookupFunc reports an environment variable's value.
type lookupFunc func(key string) (string, bool)

func load(args []string, lookup lookupFunc, usage io.Writer) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvPrefix + "ENV_FILE"); ok {
		cfg.EnvFile = v
	}
	env, err := withEnvFile(cfg.EnvFile, lookup)
	if err != nil {
		return cfg, err
	}

	if err := cfg.applyEnv(env); err != nil {
		return cfg, err
	}

	flags := flag.NewFlagSet("echomaze", flag.ContinueOnError)
	flags.SetOutput(usage)
	cfg.bindFlags(flags)
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// withEnvFile layers the variables of a .env file under the process
// environment. A missing file is not an error.
func withEnvFile(path string, lookup lookupFunc) (lookupFunc, error) {
	if path == "" {
		return lookup, nil
	}

	file, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return lookup, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

func (c *Config) applyEnv(lookup lookupFunc) error {
	var errs []error

	envInt := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s must be an integer: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	envString := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	envInt("WIDTH", &c.Width)
	envInt("HEIGHT", &c.Height)
	envInt("TIME_LIMIT_SECONDS", &c.TimeLimitSeconds)
	envInt("DRONE_STEP_MILLIS", &c.DroneStepMillis)
	envString("GENERATOR", &c.Generator)
	envString("RECALL_POLICY", &c.RecallPolicy)
	envString("AUDIO", &c.Audio)
	envString("LOG_LEVEL", &c.LogLevel)
	envString("LOG_FILE", &c.LogFile)
	envString("LANGUAGE", &c.Language)
	envString("DUMP_PATH", &c.DumpPath)

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED must be an integer: %w", EnvPrefix, err))
		} else {
			c.Seed = n
		}
	}
	if v, ok := lookup(EnvPrefix + "SKIP_MENU"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSKIP_MENU must be a boolean: %w", EnvPrefix, err))
		} else {
			c.SkipMenu = b
		}
	}
	if v, ok := lookup(EnvPrefix + "EXTRA_LOOP_FRACTION"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sEXTRA_LOOP_FRACTION must be a number: %w", EnvPrefix, err))
		} else {
			c.ExtraLoopFraction = f
		}
	}

	return errors.Join(errs...)
}

// bindFlags registers one flag per setting, defaulting to the current value.
func (c *Config) bindFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.Width, "width", c.Width, "maze width in cells")
	flags.IntVar(&c.Height, "height", c.Height, "maze height in cells")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "maze seed (0 picks one from the clock)")
	flags.IntVar(&c.TimeLimitSeconds, "time", c.TimeLimitSeconds, "round length in seconds")
	flags.Float64Var(&c.ExtraLoopFraction, "loops", c.ExtraLoopFraction, "fraction of extra passages beyond the spanning tree (0-1)")
	flags.StringVar(&c.Generator, "generator", c.Generator, "maze algorithm: "+strings.Join(generator.Names(), ", "))
	flags.IntVar(&c.DroneStepMillis, "drone-step", c.DroneStepMillis, "milliseconds between drone cells")
	flags.StringVar(&c.RecallPolicy, "recall", c.RecallPolicy, "marker recalled on a shared cell: most-recent or earliest")
	flags.StringVar(&c.Audio, "audio", c.Audio, "cue output: none, text, synth or both")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
	flags.StringVar(&c.LogFile, "log-file", c.LogFile, "log file (default stderr)")
	flags.StringVar(&c.Language, "lang", c.Language, "language")
	flags.StringVar(&c.DumpPath, "dump", c.DumpPath, "directory to write the maze to when the round ends")
	flags.BoolVar(&c.SkipMenu, "play", c.SkipMenu, "start the round straight away, skipping the title menu")
}

// Validate checks every setting is in range.
func (c Config) Validate() error {
	var errs []error

	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: maze size %dx%d", ErrInvalid, c.Width, c.Height))
	} else if c.Width > generator.MaxCells/c.Height {
		errs = append(errs, fmt.Errorf("%w: maze size %dx%d exceeds %d cells", ErrInvalid, c.Width, c.Height, generator.MaxCells))
	}
	if c.TimeLimitSeconds <= 0 {
		errs = append(errs, fmt.Errorf("%w: time limit %ds", ErrInvalid, c.TimeLimitSeconds))
	}
	if c.DroneStepMillis <= 0 {
		errs = append(errs, fmt.Errorf("%w: drone step %dms", ErrInvalid, c.DroneStepMillis))
	}
	if c.ExtraLoopFraction < 0 || c.ExtraLoopFraction > 1 {
		errs = append(errs, fmt.Errorf("%w: loop fraction %g outside [0,1]", ErrInvalid, c.ExtraLoopFraction))
	}
	if _, err := generator.ByName(c.Generator, 0); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	if _, err := markers.ParseRecallPolicy(c.RecallPolicy); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	switch c.Audio {
	case AudioNone, AudioText, AudioSynth, AudioBoth:
	default:
		errs = append(errs, fmt.Errorf("%w: audio mode %q", ErrInvalid, c.Audio))
	}

	return errors.Join(errs...)
}

// TimeLimit returns the round length.
func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSeconds) * time.Second
}

// DroneInterval returns the delay between drone cells.
func (c Config) DroneInterval() time.Duration {
	return time.Duration(c.DroneStepMillis) * time.Millisecond
}

// Policy returns the parsed marker recall policy. Validate first.
func (c Config) Policy() markers.RecallPolicy {
	p, _ := markers.ParseRecallPolicy(c.RecallPolicy)
	return p
}

// MazeGenerator returns the configured generator with extra loops applied.
func (c Config) MazeGenerator() (generator.Generator, error) {
	return generator.ByName(c.Generator, c.ExtraLoopFraction)
}

// TextCues reports whether cues are written to the terminal.
func (c Config) TextCues() bool {
	return c.Audio == AudioText || c.Audio == AudioBoth
}

// SynthCues reports whether cues are played as sound.
func (c Config) SynthCues() bool {
	return c.Audio == AudioSynth || c.Audio == AudioBoth
}
