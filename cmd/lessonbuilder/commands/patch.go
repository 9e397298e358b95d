package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/lessonbuilder/internal/config"
	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
	"git.home.luguber.info/inful/lessonbuilder/internal/metrics"
	"git.home.luguber.info/inful/lessonbuilder/internal/render"
	"git.home.luguber.info/inful/lessonbuilder/internal/retrofit"
)

// PatchCmd implements the 'patch' command.
type PatchCmd struct {
	Dir   string `short:"d" help:"Directory holding the legacy pages; defaults to output.directory/retrofit.pages_dir"`
	First int    `help:"First lesson number of the range (default from config)" default:"-1"`
	Last  int    `help:"Last lesson number of the range (default from config)" default:"-1"`
}

func (p *PatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	dir := p.Dir
	if dir == "" {
		dir = filepath.Join(cfg.Output.Directory, cfg.Retrofit.PagesDir)
	}
	rng := patchRange(cfg, p.First, p.Last)
	if err := rng.Validate(); err != nil {
		return lberrors.ValidationFailed("--first/--last", err.Error())
	}

	rec, flush := newRecorder(cfg, g.logger())
	defer flush()

	ctx, stop := signalContext()
	defer stop()
	res := RunPatch(ctx, g, dir, rng, patchOptions(cfg), rec)
	return res.Err()
}

// patchRange applies non-negative flag values over the configured bounds.
func patchRange(cfg *config.Config, first, last int) retrofit.Range {
	rng := retrofit.Range{}
	rng.First, rng.Last = cfg.Retrofit.Bounds()
	if first >= 0 {
		rng.First = first
	}
	if last >= 0 {
		rng.Last = last
	}
	return rng
}

func patchOptions(cfg *config.Config) retrofit.Options {
	return retrofit.Options{Marker: cfg.Retrofit.Marker, Labels: render.LabelsFor(cfg.Site.Lang)}
}

// RunPatch retrofits every page of rng in dir, printing one line per file
// followed by the list of modified files.
func RunPatch(ctx context.Context, g *Global, dir string, rng retrofit.Range, opts retrofit.Options, rec metrics.Recorder) *retrofit.BatchResult {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	res := retrofit.RunBatch(ctx, dir, rng, opts)
	out := g.out()
	for _, f := range res.Files {
		_, _ = fmt.Fprintln(out, retrofit.FormatLine(f))
		rec.IncPatchResult(string(f.Outcome))
	}
	_, _ = fmt.Fprintln(out, "\nDone. Modified files:")
	for _, name := range res.Modified() {
		_, _ = fmt.Fprintln(out, name)
	}
	g.logger().Info("Retrofit finished", "summary", res.Summary())
	return res
}
