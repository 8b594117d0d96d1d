// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/pdiddy/mercer/internal/httputil"
	"github.com/pdiddy/mercer/pkg/types"
)

// ArticleSource learns the main text of a web page, with navigation and
// boilerplate removed by readability extraction.
type ArticleSource struct {
	Client *http.Client
	HTTP   types.HTTPConfig
	URL    string
}

// Name returns the page URL.
func (s ArticleSource) Name() string { return s.URL }

// Fetch downloads the page and returns one block per paragraph of the
// extracted article text.
func (s ArticleSource) Fetch(ctx context.Context) ([]string, error) {
	u, err := url.Parse(s.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid article URL %q", s.URL)
	}

	client := s.Client
	if client == nil {
		client = httputil.NewClient(s.HTTP)
	}
	body, err := httputil.Fetch(ctx, client, s.URL, s.HTTP)
	if err != nil {
		return nil, fmt.Errorf("article: %w", err)
	}
	return ExtractArticle(body, u)
}

// ExtractArticle runs readability over page and splits the article text
// into paragraphs.
func ExtractArticle(page []byte, pageURL *url.URL) ([]string, error) {
	article, err := readability.FromReader(bytes.NewReader(page), pageURL)
	if err != nil {
		return nil, fmt.Errorf("extracting article: %w", err)
	}

	var blocks []string
	for _, p := range strings.Split(article.TextContent, "\n") {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			blocks = append(blocks, p)
		}
	}
	return blocks, nil
}
