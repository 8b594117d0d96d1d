// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/mercer/internal/adjacency"
	"github.com/pdiddy/mercer/pkg/types"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <word> <type>",
	Short: "Tag a learned word as a noun, adjective, verb, or unknown",
	Long: `Annotate sets the type tag of a word already in the dictionary. The
type is one of noun, adjective, verb, or unknown; --reset clears the tag
back to unknown. mercer never infers types itself.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().Bool("reset", false, "reset the word's type to unknown")

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	reset, _ := cmd.Flags().GetBool("reset")

	word := strings.ToLower(args[0])
	wt := types.WordType(adjacency.Boundary)
	switch {
	case reset && len(args) == 1:
	case !reset && len(args) == 2:
		parsed, err := types.ParseWordType(args[1])
		if err != nil {
			return err
		}
		wt = parsed
	default:
		return fmt.Errorf("provide a word and a type (noun, adjective, verb, unknown), or a word with --reset")
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.model.SetWordType(word, wt); err != nil {
		s.log.Warn("Could not set word type.", zap.String("word", word), zap.Error(err))
		return err
	}
	if err := s.save(cmd.Context()); err != nil {
		return err
	}

	entry, _ := s.model.Entry(word)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", word, entry.Type)
	return nil
}
