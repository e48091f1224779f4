package reddit

import "encoding/json"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
	Error       string `json:"error"`
}

type meResponse struct {
	Name string `json:"name"`
}

// thing is the kind-tagged envelope Reddit wraps every object in.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

// linkData is the subset of a t3 (link) object the pipeline needs.
type linkData struct {
	ID         string  `json:"id"`
	Subreddit  string  `json:"subreddit"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

// commentData is the subset of a t1 (comment) object the pipeline needs.
// Replies is either an empty string or a nested listing, so it stays raw.
type commentData struct {
	Author  string          `json:"author"`
	Replies json.RawMessage `json:"replies"`
}

// commentResponse is the api_type=json envelope of /api/comment. Errors
// come back as [code, message, field] triples.
type commentResponse struct {
	JSON struct {
		Errors [][]string `json:"errors"`
	} `json:"json"`
}
