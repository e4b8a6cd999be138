// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Command gendocs generates LLM-friendly markdown documentation for the schemagen CLI.
//
// Usage:
//
//	go run ./cmd/gendocs [output-dir]
//
// Default output directory is ./docs/cli.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra/doc"

	"github.com/dacolabs/schemagen/internal/commands"
	"github.com/dacolabs/schemagen/internal/translate"
	"github.com/dacolabs/schemagen/internal/translate/gotypes"
	"github.com/dacolabs/schemagen/internal/translate/jsonschema"
	"github.com/dacolabs/schemagen/internal/translate/markdown"
	"github.com/dacolabs/schemagen/internal/translate/protobuf"
	"github.com/dacolabs/schemagen/internal/translate/pydantic"
	"github.com/dacolabs/schemagen/internal/translate/typescript"
)

func main() {
	dir := "./docs/cli"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	// Help texts list the available targets, so register all of them.
	translators := make(translate.Register)
	translators["typescript"] = &typescript.Translator{}
	translators["go"] = &gotypes.Translator{}
	translators["protobuf"] = &protobuf.Translator{}
	translators["pydantic"] = &pydantic.Translator{}
	translators["jsonschema"] = &jsonschema.Translator{}
	translators["markdown"] = &markdown.Translator{}

	rootCmd := commands.NewRootCmd(translators)
	rootCmd.DisableAutoGenTag = true

	if err := os.MkdirAll(dir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output dir: %v\n", err)
		os.Exit(1)
	}

	if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	// Rename schemagen.md to index.md
	oldPath := filepath.Join(dir, "schemagen.md")
	newPath := filepath.Join(dir, "index.md")
	if err := os.Rename(oldPath, newPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error renaming %s to %s: %v\n", oldPath, newPath, err)
		os.Exit(1)
	}

	fmt.Printf("Documentation generated in %s\n", dir)
}
