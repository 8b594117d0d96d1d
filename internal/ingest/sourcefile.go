// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"net/http"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mercer/pkg/types"
)

// SourceFile is the YAML list of things to learn in one run:
//
//	files: [corpus/a.txt]
//	subreddits:
//	  - name: writing
//	    listing: top
//	    limit: 50
//	feeds: [https://example.com/rss]
//	articles: [https://example.com/post]
type SourceFile struct {
	Files      []string          `yaml:"files"`
	Subreddits []SubredditConfig `yaml:"subreddits"`
	Feeds      []string          `yaml:"feeds"`
	Articles   []string          `yaml:"articles"`
}

// SubredditConfig names one subreddit listing.
type SubredditConfig struct {
	Name    string `yaml:"name"`
	Listing string `yaml:"listing"`
	Limit   int    `yaml:"limit"`
}

// ReadSourceFile loads a SourceFile from path.
func ReadSourceFile(path string) (*SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	var sf SourceFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing source file %s: %w", path, err)
	}
	return &sf, nil
}

// Sources builds the TextSources the file lists: files first, then
// subreddits, feeds and articles.
func (sf *SourceFile) Sources(client *http.Client, cfg types.HTTPConfig) []TextSource {
	var out []TextSource
	for _, f := range sf.Files {
		out = append(out, FileSource{Path: f})
	}
	for _, r := range sf.Subreddits {
		out = append(out, RedditSource{Client: client, HTTP: cfg, Subreddit: r.Name, Listing: r.Listing, Limit: r.Limit})
	}
	for _, u := range sf.Feeds {
		out = append(out, FeedSource{Client: client, HTTP: cfg, URL: u})
	}
	for _, u := range sf.Articles {
		out = append(out, ArticleSource{Client: client, HTTP: cfg, URL: u})
	}
	return out
}
