package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

const (
	DefaultAPIBaseURL  = "https://oauth.reddit.com"
	DefaultAuthBaseURL = "https://www.reddit.com"
)

// Credentials are the script-app credentials for the password grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
}

// Client is the adapter for the Reddit data API. It authenticates as a
// script app and keeps the bearer token fresh across calls.
type Client struct {
	BaseURL     string
	AuthBaseURL string
	HTTPClient  *http.Client

	creds   Credentials
	token   string
	expires time.Time
	me      string

	log zerolog.Logger
}

func NewClient(creds Credentials, log zerolog.Logger) *Client {
	return &Client{
		BaseURL:     DefaultAPIBaseURL,
		AuthBaseURL: DefaultAuthBaseURL,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		creds:       creds,
		log:         log,
	}
}

var _ ports.Site = (*Client)(nil)

func (c *Client) Name() string {
	return "reddit"
}

// Initialize obtains an access token and resolves the bot's own account
// name. Both must succeed before the pipeline starts.
func (c *Client) Initialize(ctx context.Context) error {
	if err := c.authenticate(ctx); err != nil {
		return fmt.Errorf("reddit authentication failed: %w", err)
	}

	var me meResponse
	if err := c.getJSON(ctx, "/api/v1/me", nil, &me); err != nil {
		return fmt.Errorf("reddit identity lookup failed: %w", err)
	}
	if me.Name == "" {
		return fmt.Errorf("reddit identity lookup returned no name")
	}
	c.me = me.Name
	c.log.Info().Str("username", c.me).Msg("Reddit API authentication successful")
	return nil
}

func (c *Client) Me() string {
	return c.me
}

func (c *Client) authenticate(ctx context.Context) error {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {c.creds.Username},
		"password":   {c.creds.Password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.AuthBaseURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return err
	}
	if tok.Error != "" || tok.AccessToken == "" {
		return fmt.Errorf("token request rejected: %s", tok.Error)
	}

	c.token = tok.AccessToken
	c.expires = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return nil
}

// ensureToken re-authenticates when the token is within a minute of
// expiry.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != "" && time.Until(c.expires) > time.Minute {
		return nil
	}
	return c.authenticate(ctx)
}

func (c *Client) SearchPosts(ctx context.Context, subreddit, query string, limit int) ([]domain.Post, error) {
	params := url.Values{
		"q":           {query},
		"restrict_sr": {"1"},
		"sort":        {"new"},
		"limit":       {strconv.Itoa(limit)},
	}
	var l listing
	if err := c.getJSON(ctx, "/r/"+subreddit+"/search", params, &l); err != nil {
		return nil, err
	}
	return c.mapPosts(l), nil
}

func (c *Client) NewestPosts(ctx context.Context, subreddit string, limit int) ([]domain.Post, error) {
	params := url.Values{
		"limit": {strconv.Itoa(limit)},
	}
	var l listing
	if err := c.getJSON(ctx, "/r/"+subreddit+"/new", params, &l); err != nil {
		return nil, err
	}
	return c.mapPosts(l), nil
}

func (c *Client) mapPosts(l listing) []domain.Post {
	var posts []domain.Post
	for _, child := range l.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var link linkData
		if err := json.Unmarshal(child.Data, &link); err != nil {
			continue
		}
		posts = append(posts, domain.Post{
			ID:        link.ID,
			Subreddit: link.Subreddit,
			Title:     link.Title,
			Body:      link.Selftext,
			Author:    link.Author,
			URL:       "https://www.reddit.com" + link.Permalink,
			Score:     link.Score,
			CreatedAt: time.Unix(int64(link.CreatedUTC), 0).UTC(),
		})
	}
	return posts
}

// ReplyAuthors walks the full comment tree of a post and returns every
// author name it finds.
func (c *Client) ReplyAuthors(ctx context.Context, postID string) ([]string, error) {
	params := url.Values{
		"limit": {"100"},
	}
	var pages []listing
	if err := c.getJSON(ctx, "/comments/"+postID, params, &pages); err != nil {
		return nil, err
	}
	// pages[0] is the link itself, pages[1] the comment tree
	if len(pages) < 2 {
		return nil, nil
	}

	var authors []string
	collectAuthors(pages[1], &authors)
	return authors, nil
}

func collectAuthors(l listing, out *[]string) {
	for _, child := range l.Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var comment commentData
		if err := json.Unmarshal(child.Data, &comment); err != nil {
			continue
		}
		if comment.Author != "" {
			*out = append(*out, comment.Author)
		}
		// replies is "" for leaf comments and a listing otherwise
		if len(comment.Replies) > 0 && comment.Replies[0] == '{' {
			var sub listing
			if err := json.Unmarshal(comment.Replies, &sub); err == nil {
				collectAuthors(sub, out)
			}
		}
	}
}

// SubmitReply posts a top-level comment. API-level errors, including the
// RATELIMIT error, are surfaced with their message text intact so the
// caller can read the wait hint out of them.
func (c *Client) SubmitReply(ctx context.Context, postID, text string) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	form := url.Values{
		"api_type": {"json"},
		"thing_id": {"t3_" + postID},
		"text":     {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/comment", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("comment failed with status %d", resp.StatusCode)
	}

	var res commentResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return err
	}
	if len(res.JSON.Errors) > 0 {
		e := res.JSON.Errors[0]
		if len(e) >= 2 {
			return fmt.Errorf("%s: %s", e[0], e[1])
		}
		return fmt.Errorf("comment rejected: %v", e)
	}
	return nil
}

// getJSON performs an authenticated GET against the data API and decodes
// the response into v.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v interface{}) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
