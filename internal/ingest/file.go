// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// FileSource reads a plain text file; every non-blank line is one block.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s FileSource) Name() string { return s.Path }

// Fetch reads the file line by line.
func (s FileSource) Fetch(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("opening %s: %w", s.Path, ErrSourceMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	defer f.Close()

	var blocks []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			blocks = append(blocks, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return blocks, nil
}

// TextBlock is a source holding literal text, used for `learn --text`.
type TextBlock string

// Name returns a fixed label.
func (t TextBlock) Name() string { return "inline text" }

// Fetch returns the text as a single block.
func (t TextBlock) Fetch(context.Context) ([]string, error) {
	if strings.TrimSpace(string(t)) == "" {
		return nil, nil
	}
	return []string{string(t)}, nil
}
