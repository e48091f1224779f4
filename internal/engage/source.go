package engage

import (
	"context"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

// searchSubreddits is the wide net used by the search strategy.
var searchSubreddits = []string{
	"kickstarter", "crowdfunding", "boardgameprojects", "tabletopgamedesign",
	"printandplaygames", "IndieDev", "boardgames", "cardgames",
	"boardgamedesign", "indiegames", "playtesters", "game_promo",
}

// searchKeywords form the OR query submitted to each subreddit's search.
var searchKeywords = []string{
	"kickstarter", "crowdfunding", "launching soon", "indie board game", "new card game",
}

// scanSubreddits is the shorter list the random strategy draws from.
var scanSubreddits = []string{
	"boardgames", "tabletopgames", "crowdfunding",
	"kickstarter", "boardgamedesign", "indiegames",
}

// CandidateSource produces the filtered posts one run will work through.
type CandidateSource interface {
	Collect(ctx context.Context) ([]domain.Post, error)
}

// SearchSource queries every subreddit in its list for the keyword set
// and keeps whatever survives the relevance filter. One subreddit
// erroring out does not stop the sweep.
type SearchSource struct {
	site   ports.Site
	filter *Filter
	limit  int
	log    zerolog.Logger
}

func NewSearchSource(site ports.Site, filter *Filter, limit int, log zerolog.Logger) *SearchSource {
	return &SearchSource{site: site, filter: filter, limit: limit, log: log}
}

var _ CandidateSource = (*SearchSource)(nil)

func (s *SearchSource) Collect(ctx context.Context) ([]domain.Post, error) {
	query := strings.Join(searchKeywords, " OR ")

	var posts []domain.Post
	for _, subreddit := range searchSubreddits {
		found, err := s.site.SearchPosts(ctx, subreddit, query, s.limit)
		if err != nil {
			s.log.Error().Err(err).Str("subreddit", subreddit).Msg("Error searching subreddit")
			continue
		}
		for _, post := range found {
			if s.filter.IsRelevant(ctx, post) {
				s.log.Info().Str("subreddit", subreddit).Str("title", post.Title).Msg("Found relevant search result")
				posts = append(posts, post)
			}
		}
	}
	return posts, nil
}

// RandomSource scans the newest posts of one randomly chosen subreddit,
// spreading the bot's presence instead of hammering a single community.
// If the first draw yields nothing relevant it tries one more subreddit.
type RandomSource struct {
	site   ports.Site
	filter *Filter
	limit  int
	rand   *rand.Rand
	log    zerolog.Logger
}

func NewRandomSource(site ports.Site, filter *Filter, limit int, rng *rand.Rand, log zerolog.Logger) *RandomSource {
	return &RandomSource{site: site, filter: filter, limit: limit, rand: rng, log: log}
}

var _ CandidateSource = (*RandomSource)(nil)

func (s *RandomSource) Collect(ctx context.Context) ([]domain.Post, error) {
	remaining := make([]string, len(scanSubreddits))
	copy(remaining, scanSubreddits)

	pick := s.rand.Intn(len(remaining))
	subreddit := remaining[pick]

	posts := s.scan(ctx, subreddit)
	if len(posts) == 0 && len(remaining) > 1 {
		remaining = append(remaining[:pick], remaining[pick+1:]...)
		subreddit = remaining[s.rand.Intn(len(remaining))]
		s.log.Info().Str("subreddit", subreddit).Msg("No relevant posts found, trying another subreddit")
		posts = s.scan(ctx, subreddit)
	}
	return posts, nil
}

func (s *RandomSource) scan(ctx context.Context, subreddit string) []domain.Post {
	s.log.Info().Str("subreddit", subreddit).Msg("Scanning newest posts")

	found, err := s.site.NewestPosts(ctx, subreddit, s.limit)
	if err != nil {
		s.log.Error().Err(err).Str("subreddit", subreddit).Msg("Error retrieving posts")
		return nil
	}

	var posts []domain.Post
	for _, post := range found {
		if s.filter.IsRelevant(ctx, post) {
			s.log.Info().Str("title", post.Title).Msg("Found relevant post")
			posts = append(posts, post)
		}
	}
	return posts
}
