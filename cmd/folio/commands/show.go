package commands

import (
	"context"
	"fmt"

	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
	"git.home.luguber.info/inful/folio/internal/seo"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Slug   string `arg:"" help:"Article slug"`
	Locale string `short:"l" help:"Locale (en, fr)" default:"en"`
	HTML   bool   `help:"Print the rendered HTML instead of the Markdown source"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	loc, err := parseLocale(s.Locale)
	if err != nil {
		return err
	}
	env, err := root.open(g)
	if err != nil {
		return err
	}
	a, err := env.service.Get(context.Background(), s.Slug, loc)
	if err != nil {
		return err
	}

	out := g.out()
	fmt.Fprintf(out, "Title:       %s\n", a.Title)
	fmt.Fprintf(out, "Slug:        %s\n", a.Slug)
	fmt.Fprintf(out, "URL:         %s\n", env.site.URL(seo.ArticlePath(loc, a.Slug)))
	fmt.Fprintf(out, "Folder:      %s\n", a.Folder)
	fmt.Fprintf(out, "Locale:      %s\n", a.Locale)
	fmt.Fprintf(out, "Layout:      %s\n", a.Layout)
	fmt.Fprintf(out, "Source:      %s\n", a.Source)
	if a.BodySource != a.Source {
		fmt.Fprintf(out, "Body source: %s\n", a.BodySource)
	}
	fmt.Fprintf(out, "Date:        %s\n", a.Date)
	fmt.Fprintf(out, "Author:      %s\n", a.Author)
	fmt.Fprintf(out, "Description: %s\n", a.Description)
	fmt.Fprintf(out, "Translation: %t\n", a.HasTranslation)
	fmt.Fprintf(out, "Fingerprint: %s\n", a.Fingerprint)
	fmt.Fprintln(out)

	if !s.HTML {
		_, err := out.Write(a.Body.Source())
		return err
	}
	rendered, err := a.Body.Render()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDocs, "article cannot be rendered").
			WithContext("slug", s.Slug).
			WithContext("locale", loc.String()).
			Build()
	}
	_, err = out.Write(rendered.HTML)
	return err
}
