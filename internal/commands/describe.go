// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/session"
)

func newDescribeCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "describe [TYPE]",
		Short: "Show the messages and enums of the schema",
		Long: `Without arguments, list every enum and message of the schema.
With a type name, show its fields (or values) with their wire numbers.`,
		Example: `  # Overview
  schemagen describe

  # One message
  schemagen describe Venue

  # Pick a type interactively
  schemagen describe -i`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}

			var name string
			switch {
			case len(args) > 0:
				name = args[0]
			case interactive:
				if name, err = selectType(ctx.Schema); err != nil {
					return err
				}
			default:
				return describeSchema(cmd.OutOrStdout(), ctx.Schema)
			}
			return describeType(cmd.OutOrStdout(), ctx.Schema, name)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Select the type to describe from a list")

	return cmd
}

func selectType(s *schema.Schema) (string, error) {
	var options []huh.Option[string]
	for _, e := range s.Enums() {
		options = append(options, huh.NewOption(e.Name+" (enum)", e.Name))
	}
	for _, m := range s.Messages() {
		options = append(options, huh.NewOption(m.Name, m.Name))
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no types defined")
	}

	var selected string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select type to describe").
				Options(options...).
				Filtering(true).
				Value(&selected).
				Height(10),
		),
	).WithTheme(prompts.Theme()).Run(); err != nil {
		return "", err
	}
	return selected, nil
}

func describeSchema(out io.Writer, s *schema.Schema) error {
	if len(s.Enums()) == 0 && len(s.Messages()) == 0 {
		_, _ = fmt.Fprintln(out, "No types defined.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tNAME\tMEMBERS\tDESCRIPTION")
	for _, e := range s.Enums() {
		_, _ = fmt.Fprintf(w, "enum\t%s\t%d\t%s\n", e.Name, len(e.Values), truncate(e.Description))
	}
	for _, m := range s.Messages() {
		_, _ = fmt.Fprintf(w, "message\t%s\t%d\t%s\n", m.Name, len(m.Fields), truncate(m.Description))
	}
	return w.Flush()
}

func describeType(out io.Writer, s *schema.Schema, name string) error {
	if e, ok := s.Enum(name); ok {
		_, _ = fmt.Fprintf(out, "enum %s\n", e.Name)
		if e.Description != "" {
			_, _ = fmt.Fprintf(out, "%s\n", e.Description)
		}
		_, _ = fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NUMBER\tLABEL")
		for _, v := range e.Ordered() {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", v.Number, v.Label)
		}
		return w.Flush()
	}

	m, ok := s.Message(name)
	qualified := name
	if ok && s.Package() != "" {
		qualified = s.Package() + "." + name
	}
	if !ok {
		m, ok = wellKnownByName(name)
	}
	if !ok {
		return fmt.Errorf("type %q not found in schema", name)
	}

	_, _ = fmt.Fprintf(out, "message %s\n", qualified)
	if m.Description != "" {
		_, _ = fmt.Fprintf(out, "%s\n", m.Description)
	}
	_, _ = fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NUMBER\tNAME\tTYPE\tFLAGS\tDESCRIPTION")
	for _, f := range m.Fields {
		var flags []string
		if f.Optional {
			flags = append(flags, "optional")
		}
		if f.Repeated {
			flags = append(flags, "repeated")
		}
		fl := "-"
		if len(flags) > 0 {
			fl = strings.Join(flags, ",")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", strconv.Itoa(f.Number), f.Name, f.Type, fl, truncate(f.Description))
	}
	return w.Flush()
}

// wellKnownByName finds a well-known composite by its type keyword, in
// any case ("money" or "Money").
func wellKnownByName(name string) (*schema.Message, bool) {
	for _, k := range []schema.Kind{schema.KindUUID, schema.KindMoney, schema.KindAddress} {
		if k.String() == strings.ToLower(name) {
			return schema.WellKnown(k)
		}
	}
	return nil, false
}

func truncate(desc string) string {
	if desc == "" {
		return "-"
	}
	desc = strings.Join(strings.Fields(desc), " ")
	if utf8.RuneCountInString(desc) > 40 {
		desc = string([]rune(desc)[:37]) + "..."
	}
	return desc
}
