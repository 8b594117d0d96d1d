//go:build mage

// Package main contains Mage build targets for mercer developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "mercer"
	cmdPkg     = "./cmd/mercer"
	corpusDir  = "corpus"
	outputDir  = "output"
	sampleText = "corpus/sample.txt"
)

// sampleCorpus seeds corpus/ so `mage sample` has something to learn.
const sampleCorpus = `The old lighthouse stood at the edge of the cliff.
Every night the keeper climbed the stairs to light the lamp.
The ships passed the rocks safely because the lamp was bright.
In the morning the keeper slept and the gulls cried over the sea.
The sea was grey in winter and blue in summer.
`

// Init creates the corpus and output directories and a sample corpus file.
func Init() error {
	for _, dir := range []string{corpusDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if _, err := os.Stat(sampleText); os.IsNotExist(err) {
		if err := os.WriteFile(sampleText, []byte(sampleCorpus), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", sampleText, err)
		}
		fmt.Println("  ", sampleText)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/, stamping the version from git
// when available.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs every package's tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes the binary and generated output.
func Clean() error {
	for _, p := range []string{binDir, outputDir} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	fmt.Println("Cleaned.")
	return nil
}

// Sample teaches a scratch dictionary the sample corpus and writes a few
// sentences from it to output/sample.txt.
func Sample() error {
	mg.Deps(Init, Build)

	bin := filepath.Join(binDir, binName)
	dict := filepath.Join(outputDir, "sample.mercer")
	if err := sh.RunV(bin, "learn", sampleText, "--dictionary", dict); err != nil {
		return err
	}
	out := filepath.Join(outputDir, "sample.txt")
	if err := sh.RunV(bin, "write", "--dictionary", dict, "--sentences", "5", "--out", out); err != nil {
		return err
	}
	text, err := os.ReadFile(out)
	if err != nil {
		return err
	}
	fmt.Print(string(text))
	return nil
}

// Stats prints production and test line counts for the Go sources.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// countGoLines counts non-blank lines in .go files under root, split into
// production and test files. Hidden and underscore directories are skipped
// the way the go tool skips them.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}
