package engage

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

// Pacing bounds, in whole seconds, sampled uniformly inclusive.
const (
	interDelayMinSec = 30
	interDelayMaxSec = 120
	cooldownMinSec   = 60
	cooldownMaxSec   = 180
)

// Runner drives one full engagement cycle: collect candidates, then for
// each one generate, post, record, and pace. Strictly sequential — the
// pacing is the anti-spam design, not an accident.
type Runner struct {
	source   CandidateSource
	gen      *Generator
	poster   *Poster
	ledger   ports.Ledger
	notifier ports.Notifier // optional

	rand  *rand.Rand
	sleep func(time.Duration)
	now   func() time.Time
	log   zerolog.Logger
}

func NewRunner(source CandidateSource, gen *Generator, poster *Poster, ledger ports.Ledger, notifier ports.Notifier, rng *rand.Rand, log zerolog.Logger) *Runner {
	return &Runner{
		source:   source,
		gen:      gen,
		poster:   poster,
		ledger:   ledger,
		notifier: notifier,
		rand:     rng,
		sleep:    time.Sleep,
		now:      time.Now,
		log:      log,
	}
}

// Run processes every candidate the source yields. Per-candidate failures
// skip that candidate; only a failed candidate fetch aborts the run.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info().Msg("Searching for relevant posts about crowdfunding/board games...")
	posts, err := r.source.Collect(ctx)
	if err != nil {
		return fmt.Errorf("candidate fetch failed: %w", err)
	}
	if len(posts) == 0 {
		r.log.Info().Msg("No relevant posts found to process")
		return nil
	}
	r.log.Info().Int("count", len(posts)).Msg("Found relevant posts")

	for i, post := range posts {
		if i > 0 {
			delay := r.randBetween(interDelayMinSec, interDelayMaxSec)
			r.log.Info().Dur("delay", delay).Msg("Waiting before processing next post")
			r.sleep(delay)
		}

		r.log.Info().
			Int("n", i+1).Int("total", len(posts)).
			Str("subreddit", post.Subreddit).Str("title", post.Title).
			Msg("Processing post")

		resp := r.gen.Generate(ctx, post.Title, post.Body)

		var outcome domain.Outcome
		if resp.Comment == "" || resp.Promo == "" {
			outcome = domain.Outcome{Kind: domain.OutcomeSkipped, Reason: "empty comment/promo pair"}
		} else {
			outcome = r.poster.Post(ctx, post, resp.Combined())
		}

		switch outcome.Kind {
		case domain.OutcomePosted:
			r.record(ctx, post, resp)
			cooldown := r.randBetween(cooldownMinSec, cooldownMaxSec)
			r.log.Info().Dur("cooldown", cooldown).Msg("Cooling down after successful post")
			r.sleep(cooldown)
		case domain.OutcomeDeferred:
			r.log.Warn().Dur("wait", outcome.Wait).Str("post_id", post.ID).Msg("Post deferred by rate limit")
		case domain.OutcomeFailed:
			r.log.Warn().Str("post_id", post.ID).Str("reason", outcome.Reason).Msg("Post failed, skipping")
		case domain.OutcomeSkipped:
			r.log.Warn().Str("post_id", post.ID).Msg("Skipping post due to comment/promo generation failure")
		}
	}

	r.log.Info().Msg("Engagement run completed")
	return nil
}

// record writes the ledger row and pushes the optional operator
// notification. Neither failure aborts the run: the reply is already live
// on the platform.
func (r *Runner) record(ctx context.Context, post domain.Post, resp domain.Response) {
	entry := domain.LedgerEntry{
		Timestamp: r.now(),
		PostID:    post.ID,
		PostTitle: post.Title,
		Subreddit: post.Subreddit,
		Reply:     resp.Combined(),
		Promo:     resp.Promo,
	}
	if err := r.ledger.Append(ctx, entry); err != nil {
		r.log.Error().Err(err).Str("post_id", post.ID).Msg("Failed to record interaction")
	} else {
		r.log.Info().Str("post_id", post.ID).Msg("Saved interaction")
	}

	if r.notifier != nil {
		body := fmt.Sprintf("r/%s: %s\n\n%s", post.Subreddit, post.Title, resp.Combined())
		if err := r.notifier.Notify(ctx, "Replied to post", body); err != nil {
			r.log.Warn().Err(err).Msg("Operator notification failed")
		}
	}
}

func (r *Runner) randBetween(minSec, maxSec int) time.Duration {
	return time.Duration(minSec+r.rand.Intn(maxSec-minSec+1)) * time.Second
}
