package commands

import (
	"context"
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/folio/internal/foundation/errors"
)

// OGImageCmd implements the 'og-image' command.
type OGImageCmd struct {
	Slug   string `arg:"" help:"Article slug"`
	Locale string `short:"l" help:"Locale (en, fr)" default:"en"`
}

func (o *OGImageCmd) Run(g *Global, root *CLI) error {
	loc, err := parseLocale(o.Locale)
	if err != nil {
		return err
	}
	env, err := root.open(g)
	if err != nil {
		return err
	}
	img, ok := env.service.PreviewImage(context.Background(), o.Slug, loc)
	if !ok {
		return ferrors.NotFoundError("no preview image").
			WithContext("slug", o.Slug).
			WithContext("locale", loc.String()).
			Build()
	}
	if !strings.HasPrefix(img, "http://") && !strings.HasPrefix(img, "https://") {
		img = env.site.URL(img)
	}
	_, err = fmt.Fprintln(g.out(), img)
	return err
}
