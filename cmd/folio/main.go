package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/folio/cmd/folio/commands"
	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
	"git.home.luguber.info/inful/folio/internal/version"
)

func main() {
	cli := &commands.CLI{}
	globals := &commands.Global{Out: os.Stdout, Err: os.Stderr}

	parser := kong.Parse(cli,
		kong.Name("folio"),
		kong.Description("Resolve, list and serve a bilingual article store."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(globals),
	)

	if err := parser.Run(globals, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, globals.Logger).HandleError(err)
	}
}
