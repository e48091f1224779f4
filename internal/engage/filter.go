package engage

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

// maxScore caps the popularity of posts worth engaging. Anything hotter
// already has plenty of eyes on it and a promo reply is more likely to be
// reported than read.
const maxScore = 100

// relevanceKeywords mark a post as being about crowdfunding or tabletop
// games. Matched case-insensitively against title plus body.
var relevanceKeywords = []string{
	"kickstarter", "crowdfunding", "board game", "card game", "tabletop",
	"funding", "campaign", "stretch goal", "back this", "project",
	"indie game", "launch", "creator",
}

// Filter decides whether a candidate post is a valid engagement target.
type Filter struct {
	site ports.Site
	log  zerolog.Logger
}

func NewFilter(site ports.Site, log zerolog.Logger) *Filter {
	return &Filter{site: site, log: log}
}

// IsRelevant accepts a post when its score is at or under the ceiling, no
// existing reply was written by the bot itself, and the title or body
// mentions at least one relevance keyword. A failure to fetch the
// existing replies is logged and treated as inconclusive rather than
// disqualifying.
func (f *Filter) IsRelevant(ctx context.Context, post domain.Post) bool {
	if post.Score > maxScore {
		return false
	}

	authors, err := f.site.ReplyAuthors(ctx, post.ID)
	if err != nil {
		f.log.Warn().Err(err).Str("post_id", post.ID).Msg("Failed to check existing replies")
	} else {
		for _, author := range authors {
			if strings.EqualFold(author, f.site.Me()) {
				f.log.Info().Str("post_id", post.ID).Msg("Already replied to post")
				return false
			}
		}
	}

	combined := strings.ToLower(post.Title + " " + post.Body)
	for _, keyword := range relevanceKeywords {
		if strings.Contains(combined, keyword) {
			return true
		}
	}
	return false
}
