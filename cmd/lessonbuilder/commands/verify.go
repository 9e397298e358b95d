package commands

import (
	"fmt"

	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
	"git.home.luguber.info/inful/lessonbuilder/internal/linkcheck"
	"git.home.luguber.info/inful/lessonbuilder/internal/logfields"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Output string `short:"o" help:"Site directory to check; defaults to output.directory"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rec, flush := newRecorder(cfg, g.logger())
	defer flush()

	res, err := RunVerify(g, cfg.ResolveOutputDir(v.Output))
	if err != nil {
		return err
	}
	rec.SetBrokenLinks(len(res.Broken))
	if !res.OK() {
		return lberrors.BrokenLinks(len(res.Broken))
	}
	return nil
}

// RunVerify checks dir and prints each broken link and a summary line.
func RunVerify(g *Global, dir string) (*linkcheck.Result, error) {
	res, err := linkcheck.Check(dir)
	if err != nil {
		return nil, lberrors.Wrap(err, lberrors.CategoryFileSystem, lberrors.SeverityFatal, "link check failed").
			WithContext("path", dir)
	}
	out := g.out()
	for _, b := range res.Broken {
		_, _ = fmt.Fprintf(out, "BROKEN %s -> %s (%s)\n", b.Source, b.Href, b.Reason)
	}
	_, _ = fmt.Fprintln(out, res.Summary())
	g.logger().Debug("Link check finished", logfields.Path(dir), logfields.Count(len(res.Broken)))
	return res, nil
}
