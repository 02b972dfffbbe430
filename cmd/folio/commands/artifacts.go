package commands

import (
	"context"

	"git.home.luguber.info/inful/folio/internal/site"
)

// SitemapCmd implements the 'sitemap' command.
type SitemapCmd struct{}

func (*SitemapCmd) Run(g *Global, root *CLI) error {
	return writeArtifact(g, root, func(ctx context.Context, a *site.Artifacts) ([]byte, error) {
		return a.Sitemap(ctx)
	})
}

// FeedCmd implements the 'feed' command.
type FeedCmd struct{}

func (*FeedCmd) Run(g *Global, root *CLI) error {
	return writeArtifact(g, root, func(ctx context.Context, a *site.Artifacts) ([]byte, error) {
		return a.Feed(ctx)
	})
}

// RobotsCmd implements the 'robots' command.
type RobotsCmd struct{}

func (*RobotsCmd) Run(g *Global, root *CLI) error {
	return writeArtifact(g, root, func(_ context.Context, a *site.Artifacts) ([]byte, error) {
		return a.Robots(), nil
	})
}

// LLMsCmd implements the 'llms' command.
type LLMsCmd struct{}

func (*LLMsCmd) Run(g *Global, root *CLI) error {
	return writeArtifact(g, root, func(ctx context.Context, a *site.Artifacts) ([]byte, error) {
		return a.LLMs(ctx)
	})
}

func writeArtifact(g *Global, root *CLI, build func(context.Context, *site.Artifacts) ([]byte, error)) error {
	env, err := root.open(g)
	if err != nil {
		return err
	}
	body, err := build(context.Background(), site.NewArtifacts(env.service, env.site, env.logger))
	if err != nil {
		return err
	}
	_, err = g.out().Write(body)
	return err
}
