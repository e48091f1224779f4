package engage

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
)

func TestIsRelevant_RejectsPopularPosts(t *testing.T) {
	site := newFakeSite()
	f := NewFilter(site, zerolog.Nop())

	// keyword-matching content must not rescue an over-popular post
	post := relevantPost("abc", 250)
	if f.IsRelevant(context.Background(), post) {
		t.Error("post with score 250 should be rejected")
	}

	post.Score = 101
	if f.IsRelevant(context.Background(), post) {
		t.Error("post with score 101 should be rejected")
	}

	post.Score = 100
	if !f.IsRelevant(context.Background(), post) {
		t.Error("post with score 100 should be accepted")
	}
}

func TestIsRelevant_RequiresKeyword(t *testing.T) {
	site := newFakeSite()
	f := NewFilter(site, zerolog.Nop())

	post := domain.Post{
		ID:    "xyz",
		Title: "My cat learned a new trick",
		Body:  "It was adorable.",
		Score: 10,
	}
	if f.IsRelevant(context.Background(), post) {
		t.Error("post without any keyword should be rejected")
	}

	cases := []struct {
		title, body string
	}{
		{"Check out our new Kickstarter for a card game!", ""},
		{"We need playtesters", "our CROWDFUNDING campaign starts soon"},
		{"Just hit our first stretch goal", ""},
		{"New tabletop project", "looking for feedback from the community"},
	}
	for _, tc := range cases {
		p := domain.Post{ID: "k", Title: tc.title, Body: tc.body, Score: 10}
		if !f.IsRelevant(context.Background(), p) {
			t.Errorf("post %q / %q should be accepted", tc.title, tc.body)
		}
	}
}

func TestIsRelevant_RejectsAlreadyRepliedPosts(t *testing.T) {
	site := newFakeSite()
	site.me = "promo_bot"
	site.replyAuthors["abc"] = []string{"somebody_else", "Promo_Bot"}
	f := NewFilter(site, zerolog.Nop())

	if f.IsRelevant(context.Background(), relevantPost("abc", 10)) {
		t.Error("post already carrying our own reply should be rejected")
	}
}

func TestIsRelevant_ReplyFetchFailureIsNotFatal(t *testing.T) {
	site := newFakeSite()
	site.replyErr = fmt.Errorf("503 from platform")
	f := NewFilter(site, zerolog.Nop())

	// the reply check is inconclusive; the keyword condition still decides
	if !f.IsRelevant(context.Background(), relevantPost("abc", 10)) {
		t.Error("keyword-matching post should survive a failed reply check")
	}

	offTopic := domain.Post{ID: "q", Title: "Nothing to see", Score: 5}
	if f.IsRelevant(context.Background(), offTopic) {
		t.Error("off-topic post should still be rejected")
	}
}
