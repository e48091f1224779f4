package engage

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

// fallbackComments and fallbackPromos are the canned pools used whenever
// the brain is unreachable or returns something unusable.
var fallbackComments = []string{
	"This looks really interesting! I love seeing innovative projects in the tabletop space. What inspired you to create this?",
	"Really cool concept! The gaming community always benefits from fresh ideas like this. How long has this been in development?",
	"The artwork and concept look fantastic! As a tabletop enthusiast, I'm always excited to see new projects like this.",
	"This is exactly the kind of project that makes the board game community so special. Love seeing creators pursuing their passion!",
}

var fallbackPromos = []string{
	"By the way, I'm working on Hand Cricket Showdown, a strategic card game inspired by cricket. Would love your thoughts sometime!",
	"Speaking of card games, our team is developing Hand Cricket Showdown, a strategic 2-player game coming to Kickstarter soon.",
	"As a fellow creator, I'm finishing up Hand Cricket Showdown - a strategic card game that brings cricket mechanics to tabletop gaming.",
	"If you're into strategic card games, we're launching Hand Cricket Showdown on Kickstarter soon - a unique cricket-inspired duel!",
}

// Generator wraps a brain with the fallback pools. Generate never fails:
// any brain error or empty output resolves to a randomly sampled canned
// response.
type Generator struct {
	brain ports.Brain
	rand  *rand.Rand
	log   zerolog.Logger
}

func NewGenerator(brain ports.Brain, rng *rand.Rand, log zerolog.Logger) *Generator {
	return &Generator{brain: brain, rand: rng, log: log}
}

func (g *Generator) Generate(ctx context.Context, title, body string) domain.Response {
	if g.brain != nil {
		resp, err := g.brain.GenerateEngagement(ctx, title, body)
		if err == nil && resp.Comment != "" && resp.Promo != "" {
			g.log.Info().Str("comment", resp.Comment).Str("promo", resp.Promo).Msg("Generated response")
			return resp
		}
		g.log.Warn().Err(err).Msg("Generation failed, using fallback response")
	}
	return g.fallback()
}

func (g *Generator) fallback() domain.Response {
	return domain.Response{
		Comment: fallbackComments[g.rand.Intn(len(fallbackComments))],
		Promo:   fallbackPromos[g.rand.Intn(len(fallbackPromos))],
	}
}
