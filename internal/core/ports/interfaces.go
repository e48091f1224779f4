package ports

import (
	"context"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
)

// Site is the platform adapter. Initialize must authenticate and resolve
// the bot's own identity before any other call is made.
type Site interface {
	Name() string
	Initialize(ctx context.Context) error
	// Me returns the authenticated account name. Valid after Initialize.
	Me() string
	SearchPosts(ctx context.Context, subreddit, query string, limit int) ([]domain.Post, error)
	NewestPosts(ctx context.Context, subreddit string, limit int) ([]domain.Post, error)
	// ReplyAuthors returns the author names of every existing reply on a
	// post, including nested ones.
	ReplyAuthors(ctx context.Context, postID string) ([]string, error)
	SubmitReply(ctx context.Context, postID, text string) error
}

// Brain generates the engagement comment and promo line for a post. A
// Brain is allowed to fail; the caller owns the fallback path.
type Brain interface {
	Name() string
	// Ping reports whether the backend is reachable. Used as a preflight
	// gate before the run starts.
	Ping(ctx context.Context) error
	GenerateEngagement(ctx context.Context, title, body string) (domain.Response, error)
}

// Ledger is the append-only record of successful posts.
type Ledger interface {
	Append(ctx context.Context, entry domain.LedgerEntry) error
}

// Notifier pushes a short status message to the operator. Implementations
// are best-effort; a failed notification never affects the pipeline.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
