package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/folio/internal/content"
	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	JSON bool `help:"Emit issues as JSON"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	env, err := root.open(g)
	if err != nil {
		return err
	}
	issues, err := env.service.Check(context.Background())
	if err != nil {
		return err
	}

	out := g.out()
	if c.JSON {
		if issues == nil {
			issues = []content.Issue{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(issues); err != nil {
			return err
		}
	} else {
		for _, issue := range issues {
			fmt.Fprintln(out, issue.String())
		}
	}

	if len(issues) > 0 {
		return ferrors.DocsError(fmt.Sprintf("%d content issue(s) found", len(issues))).
			WithContext("path", env.cfg.Content.Root).
			Build()
	}
	if !c.JSON {
		fmt.Fprintln(out, "No issues found")
	}
	return nil
}
