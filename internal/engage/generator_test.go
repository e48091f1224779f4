package engage

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
)

func fixedRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestGenerate_PassesThroughBrainResponse(t *testing.T) {
	b := &fakeBrain{resp: domain.Response{
		Comment: "Love the card art, how long did the prototype take?",
		Promo:   "We are bringing Hand Cricket Showdown to Kickstarter soon, a cricket-inspired card duel.",
	}}
	g := NewGenerator(b, fixedRand(), zerolog.Nop())

	resp := g.Generate(context.Background(), "title", "body")
	require.Equal(t, b.resp, resp)
	require.Contains(t, resp.Combined(), "\n\n")
}

func TestGenerate_FallsBackOnBrainError(t *testing.T) {
	b := &fakeBrain{err: fmt.Errorf("backend unreachable")}
	g := NewGenerator(b, fixedRand(), zerolog.Nop())

	resp := g.Generate(context.Background(), "title", "body")
	require.NotEmpty(t, resp.Comment)
	require.NotEmpty(t, resp.Promo)
	require.Contains(t, fallbackComments, resp.Comment)
	require.Contains(t, fallbackPromos, resp.Promo)
}

func TestGenerate_FallsBackOnPartialResponse(t *testing.T) {
	// a brain that returns a comment but no promo must not leak through
	b := &fakeBrain{resp: domain.Response{Comment: "nice project"}}
	g := NewGenerator(b, fixedRand(), zerolog.Nop())

	resp := g.Generate(context.Background(), "title", "body")
	require.Contains(t, fallbackComments, resp.Comment)
	require.Contains(t, fallbackPromos, resp.Promo)
}

func TestGenerate_FallsBackWithoutBrain(t *testing.T) {
	g := NewGenerator(nil, fixedRand(), zerolog.Nop())

	for i := 0; i < 20; i++ {
		resp := g.Generate(context.Background(), "title", "body")
		require.NotEmpty(t, resp.Comment)
		require.NotEmpty(t, resp.Promo)
	}
}

func TestGenerate_FallbackIsDeterministicWithSeededRand(t *testing.T) {
	a := NewGenerator(nil, rand.New(rand.NewSource(7)), zerolog.Nop())
	b := NewGenerator(nil, rand.New(rand.NewSource(7)), zerolog.Nop())

	for i := 0; i < 5; i++ {
		require.Equal(t, a.Generate(context.Background(), "t", ""), b.Generate(context.Background(), "t", ""))
	}
}
