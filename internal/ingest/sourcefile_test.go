// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mercer/pkg/types"
)

func TestReadSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
files:
  - corpus/a.txt
  - corpus/b.txt
subreddits:
  - name: writing
    listing: top
    limit: 50
feeds:
  - https://example.com/rss
articles:
  - https://example.com/post
`), 0o644))

	sf, err := ReadSourceFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"corpus/a.txt", "corpus/b.txt"}, sf.Files)
	assert.Equal(t, []SubredditConfig{{Name: "writing", Listing: "top", Limit: 50}}, sf.Subreddits)

	cfg := types.HTTPConfig{UserAgent: "ua"}
	sources := sf.Sources(http.DefaultClient, cfg)
	require.Len(t, sources, 5)
	assert.IsType(t, FileSource{}, sources[0])
	assert.IsType(t, RedditSource{}, sources[2])
	assert.IsType(t, FeedSource{}, sources[3])
	assert.IsType(t, ArticleSource{}, sources[4])
	assert.Equal(t, "r/writing", sources[2].Name())
}

func TestReadSourceFile_Errors(t *testing.T) {
	_, err := ReadSourceFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("files: [unclosed"), 0o644))
	_, err = ReadSourceFile(path)
	assert.ErrorContains(t, err, "parsing source file")
}
