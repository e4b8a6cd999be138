// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/session"
	"github.com/dacolabs/schemagen/internal/translate"
)

func newTargetsCmd(translators translate.Register) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the available generation targets",
		Long: `List every target schemagen can generate. Inside a project, the output
directories configured in schemagen.yaml are shown as well.`,
		Example: `  # List targets
  schemagen targets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Outside a project the list is still useful.
			var cfg *config.Config
			if ctx, err := session.Load(cmd.Context()); err == nil {
				cfg = session.From(ctx).Config
			}
			return runTargets(cmd.OutOrStdout(), translators, cfg)
		},
	}
	return cmd
}

func runTargets(out io.Writer, translators translate.Register, cfg *config.Config) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TARGET\tCONFIGURED OUTPUT")
	for _, name := range translators.Available() {
		var dirs []string
		if cfg != nil {
			for _, t := range cfg.Targets {
				if t.Name == name {
					dirs = append(dirs, t.Out)
				}
			}
		}
		configured := "-"
		if len(dirs) > 0 {
			configured = strings.Join(dirs, ", ")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", name, configured)
	}
	return w.Flush()
}
