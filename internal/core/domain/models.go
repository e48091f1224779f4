package domain

import "time"

// Post is an immutable snapshot of a platform post taken at fetch time.
type Post struct {
	ID        string
	Subreddit string
	Title     string
	Body      string
	Author    string
	URL       string
	Score     int
	CreatedAt time.Time
}

// Response is a generated two-part reply. Comment engages with the post,
// Promo carries the product mention.
type Response struct {
	Comment string
	Promo   string
}

// Combined is the reply text submitted to the platform: comment, blank
// line, promo.
func (r Response) Combined() string {
	return r.Comment + "\n\n" + r.Promo
}

// OutcomeKind classifies what happened to one posting attempt.
type OutcomeKind int

const (
	// OutcomePosted means the reply went through.
	OutcomePosted OutcomeKind = iota
	// OutcomeDeferred means the platform rate-limited us; the wait has
	// already been served and the candidate is dropped for this run.
	OutcomeDeferred
	// OutcomeFailed covers every other submission error.
	OutcomeFailed
	// OutcomeSkipped means the candidate was dropped before submission.
	OutcomeSkipped
)

// Outcome is the result of a single posting attempt.
type Outcome struct {
	Kind   OutcomeKind
	Wait   time.Duration // set for OutcomeDeferred
	Reason string        // set for OutcomeDeferred and OutcomeFailed
}

// LedgerEntry is one durable record of a successful engagement.
type LedgerEntry struct {
	Timestamp time.Time
	PostID    string
	PostTitle string
	Subreddit string
	Reply     string
	Promo     string
}
