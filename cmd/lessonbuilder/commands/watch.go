package commands

import (
	"context"
	"os"
	"time"

	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
	"git.home.luguber.info/inful/lessonbuilder/internal/logfields"
	"git.home.luguber.info/inful/lessonbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Input    string        `short:"i" help:"Lesson document (JSON or YAML); overrides config input"`
	Output   string        `short:"o" help:"Output directory; overrides output.directory"`
	Debounce time.Duration `help:"Quiet period before a rebuild" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	logger := g.logger()
	input := cfg.ResolveInput(w.Input)

	ctx, stop := signalContext()
	defer stop()

	// Config is reloaded on every pass so edits to it take effect.
	rebuild := func(ctx context.Context) error {
		current, err := loadConfig(root)
		if err != nil {
			return err
		}
		res, err := RunBuild(ctx, g, current, w.Input, w.Output)
		if err == nil && res.Status.IsSuccess() {
			logger.Info("Site rebuilt", logfields.Outcome(string(res.Status)), logfields.Path(res.OutputPath))
		}
		return err
	}
	if err := rebuild(ctx); err != nil {
		logger.Warn("Initial build failed", logfields.Error(err))
	}

	files := []string{input}
	if _, err := os.Stat(root.Config); err == nil {
		files = append(files, root.Config)
	}
	watcher, err := watch.New(files, w.Debounce, rebuild)
	if err != nil {
		return lberrors.WatchFailed(err)
	}
	logger.Info("Watching for changes; press Ctrl+C to stop", logfields.Path(input))
	if err := watcher.Run(ctx); err != nil {
		return lberrors.WatchFailed(err)
	}
	return nil
}
