// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/mercer/internal/httputil"
	"github.com/pdiddy/mercer/pkg/types"
)

// FeedSource learns the items of an RSS 2.0, RSS 1.0 or Atom feed. Each
// item's body (full content when present, else the summary) becomes one
// block with its markup removed.
type FeedSource struct {
	Client *http.Client
	HTTP   types.HTTPConfig
	URL    string
}

// feedDoc covers all three feed shapes; only one of the slices fills.
type feedDoc struct {
	Channel struct {
		Items []feedItem `xml:"item"`
	} `xml:"channel"`
	Items   []feedItem  `xml:"item"`
	Entries []atomEntry `xml:"entry"`
}

type feedItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Content     string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
}

type atomEntry struct {
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
	Content string `xml:"content"`
}

// Name returns the feed URL.
func (s FeedSource) Name() string { return s.URL }

// Fetch downloads and parses the feed.
func (s FeedSource) Fetch(ctx context.Context) ([]string, error) {
	client := s.Client
	if client == nil {
		client = httputil.NewClient(s.HTTP)
	}
	body, err := httputil.Fetch(ctx, client, s.URL, s.HTTP)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	return ParseFeed(body)
}

// ParseFeed extracts one plain-text block per feed item.
func ParseFeed(data []byte) ([]string, error) {
	var doc feedDoc
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	var blocks []string
	add := func(candidates ...string) {
		for _, c := range candidates {
			if text := StripHTML(c); text != "" {
				blocks = append(blocks, text)
				return
			}
		}
	}
	for _, it := range append(doc.Channel.Items, doc.Items...) {
		add(it.Content, it.Description, it.Title)
	}
	for _, e := range doc.Entries {
		add(e.Content, e.Summary, e.Title)
	}
	return blocks, nil
}

// StripHTML returns the text nodes of an HTML fragment joined by single
// spaces, with entities decoded. Script and style contents are dropped.
func StripHTML(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var parts []string
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawTag(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawTag(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				parts = append(parts, string(z.Text()))
			}
		}
	}
}

func isRawTag(name []byte) bool {
	return string(name) == "script" || string(name) == "style"
}
