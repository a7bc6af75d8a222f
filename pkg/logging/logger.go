package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	EnvLogLevel = "ASSETGEN_LOG_LEVEL"
	EnvJSONLog  = "ASSETGEN_JSON_LOG"
	EnvLogPath  = "ASSETGEN_LOG_PATH"

	DefaultLevel = "info"

	// LinePrefix marks every text log line.
	LinePrefix = "🧱 "
)

// Config is a resolved logging setup.
type Config struct {
	Level  string // hclog level name
	Source string // where Level came from, for the startup debug line
	JSON   bool
}

// ResolveLevel picks the log level: the CLI flag, then ASSETGEN_LOG_LEVEL,
// then the default. A level spelled json or json:<level> switches to JSON
// output, as does ASSETGEN_JSON_LOG=1.
func ResolveLevel(cliLevel string) Config {
	var cfg Config

	if cliLevel != "" {
		cfg.Level = cliLevel
		cfg.Source = "CLI --log-level"
	} else if envLevel := os.Getenv(EnvLogLevel); envLevel != "" {
		cfg.Level = envLevel
		cfg.Source = EnvLogLevel
	} else {
		cfg.Level = DefaultLevel
		cfg.Source = "default"
	}

	cfg.JSON = os.Getenv(EnvJSONLog) == "1"
	if strings.HasPrefix(cfg.Level, "json") {
		cfg.JSON = true
		if _, level, ok := strings.Cut(cfg.Level, ":"); ok && level != "" {
			cfg.Level = level
		} else {
			cfg.Level = DefaultLevel
		}
	}

	return cfg
}

// NewLogger creates a logger with the standard settings. A nil output
// means stderr, or the file named by ASSETGEN_LOG_PATH when that opens.
func NewLogger(name string, cfg Config, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
		if logPath := os.Getenv(EnvLogPath); logPath != "" {
			if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				output = file
			}
		}
	}

	color := hclog.ColorOff
	if !cfg.JSON && isTerminal(output) {
		color = hclog.ForceColor
		if f, ok := output.(*os.File); ok {
			output = colorable.NewColorable(f)
		}
	}

	if !cfg.JSON {
		output = NewPrefixWriter(LinePrefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(cfg.Level),
		JSONFormat: cfg.JSON,
		Output:     output,
		Color:      color,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

func isTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
