package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/lessonbuilder/cmd/lessonbuilder/commands"
	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
	"git.home.luguber.info/inful/lessonbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("lessonbuilder"),
		kong.Description("Compile a lesson book into static HTML pages and retrofit legacy pages."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	// AfterApply has already installed the configured logger.
	globals := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	if err := parser.Run(globals, cli); err != nil {
		lberrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
