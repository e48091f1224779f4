package engage

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

const (
	// prePostDelay is a courtesy pause before every submission.
	prePostDelay = 2 * time.Second
	// defaultRateLimitWait applies when the error carries no usable hint.
	defaultRateLimitWait = 600 * time.Second
)

var (
	minutesRe = regexp.MustCompile(`(\d+) minute`)
	secondsRe = regexp.MustCompile(`(\d+) second`)
)

// Poster submits replies and absorbs platform errors into outcomes. No
// error escapes past it.
type Poster struct {
	site  ports.Site
	sleep func(time.Duration)
	log   zerolog.Logger
}

func NewPoster(site ports.Site, sleep func(time.Duration), log zerolog.Logger) *Poster {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Poster{site: site, sleep: sleep, log: log}
}

// Post submits the reply after the courtesy delay. On a rate-limit error
// it serves the wait extracted from the message (or the default) and
// reports Deferred; the candidate is not retried this run.
func (p *Poster) Post(ctx context.Context, post domain.Post, text string) domain.Outcome {
	p.sleep(prePostDelay)

	err := p.site.SubmitReply(ctx, post.ID, text)
	if err == nil {
		p.log.Info().Str("title", post.Title).Msg("Posted comment")
		return domain.Outcome{Kind: domain.OutcomePosted}
	}

	if isRateLimited(err.Error()) {
		wait := ExtractWait(err.Error())
		p.log.Error().Err(err).Dur("wait", wait).Msg("Rate limited, backing off")
		p.sleep(wait)
		return domain.Outcome{Kind: domain.OutcomeDeferred, Wait: wait, Reason: err.Error()}
	}

	p.log.Error().Err(err).Str("post_id", post.ID).Msg("Error posting comment")
	return domain.Outcome{Kind: domain.OutcomeFailed, Reason: err.Error()}
}

func isRateLimited(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "ratelimit") ||
		strings.Contains(m, "rate limit") ||
		strings.Contains(m, "doing that too much")
}

// ExtractWait reads the wait hint out of a rate-limit message: a number
// followed by "minute" or "second". Without either it falls back to the
// ten minute default.
func ExtractWait(msg string) time.Duration {
	if m := minutesRe.FindStringSubmatch(msg); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return time.Duration(n) * time.Minute
		}
	}
	if m := secondsRe.FindStringSubmatch(msg); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return defaultRateLimitWait
}
