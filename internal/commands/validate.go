// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/dacolabs/schemagen/internal/session"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the project configuration and schema",
		Long: `Load schemagen.yaml and the schema it points to, and report any problem.
Every structural problem in the schema is listed, not only the first one.`,
		Example: `  # Validate the project in the current directory
  schemagen validate`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), ctx)
		},
	}
	return cmd
}

func runValidate(out io.Writer, ctx *session.Context) error {
	s := ctx.Schema

	var wellKnown []string
	for _, k := range s.WellKnownKinds() {
		wellKnown = append(wellKnown, k.String())
	}
	wk := "-"
	if len(wellKnown) > 0 {
		wk = strings.Join(wellKnown, ", ")
	}

	pkg := s.Package()
	if pkg == "" {
		pkg = "-"
	}

	targets := make([]string, 0, len(ctx.Config.Targets))
	for _, t := range ctx.Config.Targets {
		targets = append(targets, t.Name)
	}

	fields := []prompts.ResultField{
		{Label: "Schema", Value: ctx.Config.Schema},
		{Label: "Package", Value: pkg},
		{Label: "Enums", Value: strconv.Itoa(len(s.Enums()))},
		{Label: "Messages", Value: strconv.Itoa(len(s.Messages()))},
		{Label: "Well-known types", Value: wk},
		{Label: "Artifact version", Value: ctx.Config.ArtifactVersion},
		{Label: "Targets", Value: fmt.Sprintf("%d (%s)", len(targets), strings.Join(targets, ", "))},
	}
	for _, w := range s.Warnings() {
		fields = append(fields, prompts.ResultField{Label: "Warning", Value: w})
	}
	prompts.PrintResult(out, fields, "Schema is valid")
	return nil
}
