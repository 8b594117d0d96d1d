// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/mercer/internal/codec"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the whole dictionary as JSON or YAML",
	Long: `Dump writes every word with its type and its leading and trailing
neighbors, most common first. JSON matches the dictionary file format.`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("format", "json", "output format: json or yaml")
	dumpCmd.Flags().String("out", "", "write to this file instead of stdout")

	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	var buf bytes.Buffer
	if err := codec.Export(&buf, s.model, codec.Format(format)); err != nil {
		return err
	}

	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	s.log.Info("Dictionary dumped.", zap.String("path", outPath), zap.String("format", format))
	return nil
}
