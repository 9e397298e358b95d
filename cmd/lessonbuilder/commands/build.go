package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/lessonbuilder/internal/build"
	"git.home.luguber.info/inful/lessonbuilder/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Input  string `short:"i" help:"Lesson document (JSON or YAML); overrides config input"`
	Output string `short:"o" help:"Output directory; overrides output.directory"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	_, err = RunBuild(ctx, g, cfg, b.Input, b.Output)
	return err
}

// RunBuild runs one full pass and prints the report summary.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, input, output string) (*build.BuildResult, error) {
	logger := g.logger()
	rec, flush := newRecorder(cfg, logger)
	defer flush()

	svc := build.NewBuildService().WithRecorder(rec).WithLogger(logger)
	res, err := svc.Run(ctx, build.BuildRequest{Config: cfg, Input: input, OutputDir: output})
	if res != nil && res.Report != nil {
		_, _ = fmt.Fprintln(g.out(), res.Report.Summary())
	}
	return res, err
}
