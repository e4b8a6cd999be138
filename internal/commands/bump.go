// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/dacolabs/schemagen/internal/session"
)

type bumpOptions struct {
	part string
}

func newBumpCmd() *cobra.Command {
	opts := &bumpOptions{}

	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Bump the artifact version in schemagen.yaml",
		Long: `Bump the artifact version stamped into generated code by major, minor, or patch.
In interactive mode, a form is shown to select the bump type.`,
		Example: `  # Interactive mode
  schemagen bump

  # Non-interactive
  schemagen bump --part minor`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("part") {
				if err := prompts.RunBumpForm(&opts.part, ctx.Config.ArtifactVersion); err != nil {
					return err
				}
			}
			return runBump(cmd.OutOrStdout(), ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.part, "part", "p", "", "Part to bump: major, minor, or patch")

	return cmd
}

func runBump(out io.Writer, ctx *session.Context, opts *bumpOptions) error {
	if opts.part == "" {
		return errors.New("bump must be one of: major, minor, patch")
	}
	current := ctx.Config.ArtifactVersion
	next, err := config.BumpVersion(current, opts.part)
	if err != nil {
		return err
	}

	cfg := *ctx.Config
	cfg.ArtifactVersion = next
	if err := cfg.Save(filepath.Join(ctx.Dir, config.FileName)); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}
	ctx.Config = &cfg

	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Previous version", Value: current},
		{Label: "New version", Value: next},
	}, "Artifact version bumped")
	return nil
}
