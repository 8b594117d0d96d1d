// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sentenceCmd = &cobra.Command{
	Use:   "sentence",
	Short: "Generate one sentence from the dictionary",
	Long: `Sentence picks a random starting word and follows the dictionary one
word at a time, up to --max-length words. Positions where no continuation
is found are skipped, so sentences may come out shorter.`,
	RunE: runSentence,
}

func init() {
	sentenceCmd.Flags().Int("max-length", 5, "maximum words in the sentence")
	sentenceCmd.Flags().IntP("count", "n", 1, "number of sentences to print")

	rootCmd.AddCommand(sentenceCmd)
}

func runSentence(cmd *cobra.Command, args []string) error {
	maxLength, _ := cmd.Flags().GetInt("max-length")
	count, _ := cmd.Flags().GetInt("count")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	g, err := s.generator()
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		sentence, err := g.CreateSentence(maxLength)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sentence)
	}
	return nil
}
