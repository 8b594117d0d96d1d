// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Generate several sentences of text",
	Long: `Write generates --sentences sentences, one per line. Each sentence's
length is drawn between the configured minimum (default 4) and
--max-length. With --out the text replaces the named file instead of
being printed.`,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().Int("sentences", 7, "number of sentences")
	writeCmd.Flags().Int("max-length", 7, "maximum words per sentence")
	writeCmd.Flags().String("out", "", "write the text to this file")

	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("sentences")
	maxLength, _ := cmd.Flags().GetInt("max-length")
	outPath, _ := cmd.Flags().GetString("out")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	g, err := s.generator()
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := g.WriteTextToFile(outPath, count, maxLength); err != nil {
			return err
		}
		s.log.Info("Text written.", zap.String("path", outPath), zap.Int("sentences", count))
		return nil
	}

	text, err := g.WriteText(count, maxLength)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
