package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/lessonbuilder/internal/config"
	"git.home.luguber.info/inful/lessonbuilder/internal/logfields"
	"git.home.luguber.info/inful/lessonbuilder/internal/metrics"
)

// LogLevelEnv overrides the log level when --verbose is not given.
const LogLevelEnv = "LESSONBUILDER_LOG_LEVEL"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"lessonbuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build      BuildCmd   `cmd:"" help:"Compile the lesson document into pages and an index"`
	Patch      PatchCmd   `cmd:"" help:"Retrofit legacy lesson pages with the shared header and sidebar"`
	Verify     VerifyCmd  `cmd:"" help:"Check internal links and fragments of a generated site"`
	Watch      WatchCmd   `cmd:"" help:"Rebuild whenever the lesson document or config changes"`
	Init       InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel gives --verbose precedence over LESSONBUILDER_LOG_LEVEL.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadConfig treats the default config path as optional; an explicitly
// named file must exist.
func loadConfig(root *CLI) (*config.Config, error) {
	if root.Config == "" || root.Config == config.DefaultPath {
		return config.LoadOrDefault(config.DefaultPath)
	}
	return config.Load(root.Config)
}

// newRecorder returns the Prometheus recorder when metrics.textfile is set,
// together with a flush func that writes the textfile.
func newRecorder(cfg *config.Config, logger *slog.Logger) (metrics.Recorder, func()) {
	path := cfg.Metrics.Textfile
	if path == "" {
		return metrics.NoopRecorder{}, func() {}
	}
	rec := metrics.NewPrometheusRecorder(nil)
	return rec, func() {
		if err := rec.WriteTextfile(path); err != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(err))
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
