// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/logging"
	"github.com/dacolabs/schemagen/internal/translate"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(translators translate.Register) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "schemagen",
		Short: "Generate typed clients and codecs from a message schema",
		Long: `schemagen reads a language-neutral message schema and generates
type definitions for several target languages. The same schema drives a
runtime codec that encodes and decodes messages on the command line.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.New(cmd.ErrOrStderr(), verbose)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(translators),
		newValidateCmd(),
		newDescribeCmd(),
		newGenerateCmd(translators),
		newTargetsCmd(translators),
		newEncodeCmd(),
		newDecodeCmd(),
		newBumpCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
