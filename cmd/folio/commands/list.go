package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/folio/internal/content"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Locale string `short:"l" help:"Locale to list (en, fr)" default:"en"`
	JSON   bool   `help:"Emit JSON instead of a table"`
}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	loc, err := parseLocale(l.Locale)
	if err != nil {
		return err
	}
	env, err := root.open(g)
	if err != nil {
		return err
	}
	items, err := env.service.List(context.Background(), loc)
	if err != nil {
		return err
	}
	if l.JSON {
		if items == nil {
			items = []content.Summary{}
		}
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSLUG\tTITLE\tTRANSLATED")
	for _, item := range items {
		translated := "no"
		if item.HasTranslation {
			translated = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Date, item.Slug, item.Title, translated)
	}
	return tw.Flush()
}
