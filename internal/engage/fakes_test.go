package engage

import (
	"context"
	"fmt"
	"time"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

// fakeSite is an in-memory ports.Site for pipeline tests.
type fakeSite struct {
	me string

	searchResults map[string][]domain.Post
	searchErr     map[string]error
	newestResults map[string][]domain.Post
	newestErr     map[string]error

	replyAuthors map[string][]string
	replyErr     error

	submitErr error
	submitted []string
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		me:            "promo_bot",
		searchResults: make(map[string][]domain.Post),
		searchErr:     make(map[string]error),
		newestResults: make(map[string][]domain.Post),
		newestErr:     make(map[string]error),
		replyAuthors:  make(map[string][]string),
	}
}

var _ ports.Site = (*fakeSite)(nil)

func (s *fakeSite) Name() string                         { return "fake" }
func (s *fakeSite) Initialize(ctx context.Context) error { return nil }
func (s *fakeSite) Me() string                           { return s.me }

func (s *fakeSite) SearchPosts(ctx context.Context, subreddit, query string, limit int) ([]domain.Post, error) {
	if err := s.searchErr[subreddit]; err != nil {
		return nil, err
	}
	return s.searchResults[subreddit], nil
}

func (s *fakeSite) NewestPosts(ctx context.Context, subreddit string, limit int) ([]domain.Post, error) {
	if err := s.newestErr[subreddit]; err != nil {
		return nil, err
	}
	return s.newestResults[subreddit], nil
}

func (s *fakeSite) ReplyAuthors(ctx context.Context, postID string) ([]string, error) {
	if s.replyErr != nil {
		return nil, s.replyErr
	}
	return s.replyAuthors[postID], nil
}

func (s *fakeSite) SubmitReply(ctx context.Context, postID, text string) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = append(s.submitted, postID)
	return nil
}

// fakeBrain returns a fixed response or error.
type fakeBrain struct {
	resp domain.Response
	err  error
}

var _ ports.Brain = (*fakeBrain)(nil)

func (b *fakeBrain) Name() string                   { return "fake" }
func (b *fakeBrain) Ping(ctx context.Context) error { return b.err }

func (b *fakeBrain) GenerateEngagement(ctx context.Context, title, body string) (domain.Response, error) {
	return b.resp, b.err
}

// fakeLedger records appended entries.
type fakeLedger struct {
	entries []domain.LedgerEntry
	err     error
}

var _ ports.Ledger = (*fakeLedger)(nil)

func (l *fakeLedger) Append(ctx context.Context, entry domain.LedgerEntry) error {
	if l.err != nil {
		return l.err
	}
	l.entries = append(l.entries, entry)
	return nil
}

// sleepRecorder captures every sleep instead of waiting.
type sleepRecorder struct {
	slept []time.Duration
}

func (s *sleepRecorder) Sleep(d time.Duration) {
	s.slept = append(s.slept, d)
}

// fixedSource returns a preset candidate list.
type fixedSource struct {
	posts []domain.Post
	err   error
}

var _ CandidateSource = (*fixedSource)(nil)

func (s *fixedSource) Collect(ctx context.Context) ([]domain.Post, error) {
	return s.posts, s.err
}

func relevantPost(id string, score int) domain.Post {
	return domain.Post{
		ID:        id,
		Subreddit: "boardgames",
		Title:     fmt.Sprintf("Check out our new Kickstarter for a card game! (%s)", id),
		Body:      "We just launched our crowdfunding campaign.",
		Author:    "some_creator",
		Score:     score,
	}
}
