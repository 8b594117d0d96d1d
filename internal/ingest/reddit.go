// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/mercer/internal/httputil"
	"github.com/pdiddy/mercer/pkg/types"
)

// redditAPIBase is the Reddit public JSON endpoint. Declared as a var so
// tests can substitute an httptest server.
var redditAPIBase = "https://www.reddit.com"

// Reddit listings accepted by RedditSource.
var redditListings = map[string]bool{"hot": true, "new": true, "top": true, "rising": true}

const defaultRedditLimit = 25

// RedditSource learns the self-text of posts in a subreddit listing. Posts
// with a non-positive score or an empty body are skipped.
type RedditSource struct {
	Client    *http.Client
	HTTP      types.HTTPConfig
	Subreddit string
	Listing   string // hot (default), new, top, rising
	Limit     int    // posts requested, 1-100 (default 25)
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title    string `json:"title"`
	Selftext string `json:"selftext"`
	Score    int    `json:"score"`
	Stickied bool   `json:"stickied"`
}

// Name returns "r/<subreddit>".
func (s RedditSource) Name() string { return "r/" + s.subreddit() }

func (s RedditSource) subreddit() string {
	return strings.TrimPrefix(strings.TrimSpace(s.Subreddit), "r/")
}

// Fetch requests the listing and returns one block per qualifying post.
func (s RedditSource) Fetch(ctx context.Context) ([]string, error) {
	sub := s.subreddit()
	if sub == "" {
		return nil, fmt.Errorf("subreddit name is empty")
	}

	listing := s.Listing
	if listing == "" {
		listing = "hot"
	}
	if !redditListings[listing] {
		return nil, fmt.Errorf("unsupported reddit listing %q: use hot, new, top or rising", listing)
	}

	limit := s.Limit
	if limit <= 0 {
		limit = defaultRedditLimit
	}
	limit = min(limit, 100)

	u := fmt.Sprintf("%s/r/%s/%s.json?limit=%d&raw_json=1", redditAPIBase, url.PathEscape(sub), listing, limit)
	body, err := httputil.Fetch(ctx, s.client(), u, s.HTTP)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) && (se.StatusCode == http.StatusNotFound || se.StatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("r/%s: %w", sub, ErrSourceMissing)
		}
		return nil, fmt.Errorf("reddit: %w", err)
	}

	var l redditListing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("parsing reddit listing: %w", err)
	}

	var blocks []string
	for _, c := range l.Data.Children {
		p := c.Data
		text := strings.TrimSpace(p.Selftext)
		if p.Score <= 0 || p.Stickied || text == "" {
			continue
		}
		blocks = append(blocks, text)
	}
	return blocks, nil
}

func (s RedditSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return httputil.NewClient(s.HTTP)
}
