// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/schemagen/internal/commands"
	"github.com/dacolabs/schemagen/internal/translate"
	"github.com/dacolabs/schemagen/internal/translate/gotypes"
	"github.com/dacolabs/schemagen/internal/translate/jsonschema"
	"github.com/dacolabs/schemagen/internal/translate/markdown"
	"github.com/dacolabs/schemagen/internal/translate/protobuf"
	"github.com/dacolabs/schemagen/internal/translate/pydantic"
	"github.com/dacolabs/schemagen/internal/translate/typescript"
)

// Translators returns every target the CLI can generate, keyed by name.
func Translators() translate.Register {
	translators := make(translate.Register)
	for _, t := range []translate.Translator{
		&typescript.Translator{},
		&gotypes.Translator{},
		&protobuf.Translator{},
		&pydantic.Translator{},
		&jsonschema.Translator{},
		&markdown.Translator{},
	} {
		translators[t.Name()] = t
	}
	return translators
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, arguments).
func Run(ctx context.Context, args []string) error {
	rootCmd := commands.NewRootCmd(Translators())
	rootCmd.SilenceErrors = true
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
