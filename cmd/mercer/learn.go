// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mercer/internal/httputil"
	"github.com/pdiddy/mercer/internal/ingest"
)

var learnCmd = &cobra.Command{
	Use:   "learn [files...]",
	Short: "Learn word adjacency from files, text, Reddit, feeds, or web pages",
	Long: `Learn reads text and records, for every word, which words came right
before and after it. Each line of a file is learned on its own. Sources
that fail (a missing file, an unreachable feed) are reported and skipped;
everything else is learned and the dictionary is saved.

A sources file lists several inputs at once:

  files: [corpus/a.txt]
  subreddits:
    - name: writing
      listing: top
  feeds: [https://example.com/rss]
  articles: [https://example.com/post]`,
	RunE: runLearn,
}

func init() {
	learnCmd.Flags().String("text", "", "learn this text directly")
	learnCmd.Flags().StringSlice("reddit", nil, "subreddit(s) whose posts to learn")
	learnCmd.Flags().String("listing", "hot", "reddit listing: hot, new, top, or rising")
	learnCmd.Flags().Int("limit", 25, "posts to request per subreddit (max 100)")
	learnCmd.Flags().StringSlice("rss", nil, "RSS or Atom feed URL(s) to learn")
	learnCmd.Flags().StringSlice("url", nil, "web article URL(s) to learn")
	learnCmd.Flags().String("sources", "", "YAML file listing files, subreddits, feeds and articles")

	rootCmd.AddCommand(learnCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	sources, err := learnSources(cmd, args, s)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("nothing to learn: provide files, --text, --reddit, --rss, --url, or --sources")
	}

	summary, err := ingest.Run(ctx, s.model, sources, s.log)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Learned %d word(s) from %d block(s); dictionary holds %d word(s).\n",
		summary.Observations, summary.Blocks, s.model.Len())
	for _, f := range summary.Failed {
		fmt.Fprintf(out, "  failed: %v\n", f)
	}
	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d of %d source(s) failed", len(summary.Failed), summary.Sources)
	}
	return nil
}

func learnSources(cmd *cobra.Command, args []string, s *session) ([]ingest.TextSource, error) {
	text, _ := cmd.Flags().GetString("text")
	subreddits, _ := cmd.Flags().GetStringSlice("reddit")
	listing, _ := cmd.Flags().GetString("listing")
	limit, _ := cmd.Flags().GetInt("limit")
	feeds, _ := cmd.Flags().GetStringSlice("rss")
	articles, _ := cmd.Flags().GetStringSlice("url")
	sourcesFile, _ := cmd.Flags().GetString("sources")

	sf := &ingest.SourceFile{Files: args, Feeds: feeds, Articles: articles}
	for _, name := range subreddits {
		sf.Subreddits = append(sf.Subreddits, ingest.SubredditConfig{Name: name, Listing: listing, Limit: limit})
	}
	if sourcesFile != "" {
		fromFile, err := ingest.ReadSourceFile(sourcesFile)
		if err != nil {
			return nil, err
		}
		sf.Files = append(sf.Files, fromFile.Files...)
		sf.Subreddits = append(sf.Subreddits, fromFile.Subreddits...)
		sf.Feeds = append(sf.Feeds, fromFile.Feeds...)
		sf.Articles = append(sf.Articles, fromFile.Articles...)
	}

	var sources []ingest.TextSource
	if text != "" {
		sources = append(sources, ingest.TextBlock(text))
	}
	client := httputil.NewClient(s.cfg.HTTP)
	return append(sources, sf.Sources(client, s.cfg.HTTP)...), nil
}
