// Package x_log configures zerolog for the trie tools: lipgloss-styled
// console output, optional rotated file output, and module-scoped loggers.
package x_log

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	ErrInvalidLevelValue  = errors.New("invalid_level_value")
	ErrInvalidFormatValue = errors.New("invalid_format_value")

	mu      sync.Mutex
	rotator *lumberjack.Logger
)

//
// ---------- Init ----------

// Init configures the global logger from LoadConfig("").
func Init() {
	cfg, err := LoadConfig("")
	if err != nil {
		cfg = DefaultConfig()
	}
	InitWithConfig(cfg, "")
}

// InitWithConfig configures the global logger and level. module, if set, is
// attached to every entry.
func InitWithConfig(cfg *Config, module string) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	applyDefaults(cfg)

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(buildOutput(cfg)).With().Timestamp()
	if module != "" {
		ctx = ctx.Str("module", module)
	}
	log.Logger = ctx.Logger()
}

// buildOutput returns the writer(s) selected by cfg.
func buildOutput(cfg *Config) io.Writer {
	mu.Lock()
	defer mu.Unlock()

	var writers []io.Writer
	if cfg.ToConsole {
		writers = append(writers, consoleOutput(cfg, os.Stdout))
	}
	if cfg.ToFile {
		if rotator != nil {
			_ = rotator.Close()
		}
		rotator = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writers = append(writers, rotator)
	}

	switch len(writers) {
	case 0:
		return os.Stdout
	case 1:
		return writers[0]
	default:
		return zerolog.MultiLevelWriter(writers...)
	}
}

func consoleOutput(cfg *Config, f *os.File) io.Writer {
	if strings.EqualFold(cfg.Format, FormatJSON) {
		return f
	}
	styles := DefaultStylesByName(cfg.Style)
	styles.Out = f
	styles.NoColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	return ConsoleWriterWithStyles(styles)
}

// Close flushes and closes the rotated log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

//
// ---------- Scoped Loggers ----------

// New returns a child of the global logger tagged with module.
func New(module string) zerolog.Logger {
	return log.Logger.With().Str("module", module).Logger()
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// From returns the logger stored in ctx, or the global logger.
func From(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }

//
// ---------- Parsing ----------

// ParseLevel maps "debug", "info", "warn", "error" to zerolog levels.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, ErrInvalidLevelValue
	}
}

// ParseFormat validates an output format name.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(s) {
	case FormatConsole:
		return FormatConsole, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatConsole, ErrInvalidFormatValue
	}
}
