// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many words the dictionary holds, by type",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Bool("json", false, "print the counts as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	stats := s.model.Stats()
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	fmt.Fprint(cmd.OutOrStdout(), stats.Summary())
	return nil
}
