// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

type initOptions struct {
	prompts.InitAnswers
	nonInteractive bool
}

func newInitCmd(translators translate.Register) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new schemagen project",
		Long: `Initialize a new schemagen project with a schemagen.yaml configuration file.
A starter schema is written unless the schema file already exists.`,
		Example: `  # Interactive mode
  schemagen init

  # Non-interactive
  schemagen init --package shop --target typescript,go --non-interactive

  # Start from a TOML schema
  schemagen init --schema schema.toml --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), translators, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "schema.yaml", "Schema file (.yaml, .json or .toml)")
	cmd.Flags().StringVarP(&opts.Package, "package", "p", "example", "Schema package")
	cmd.Flags().StringVar(&opts.ArtifactVersion, "artifact-version", "0.1.0", "Initial artifact version")
	cmd.Flags().StringSliceVarP(&opts.Targets, "target", "t", []string{"typescript"}, "Target(s) to configure")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "gen", "Output directory; each target writes to <out>/<target>")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(out io.Writer, translators translate.Register, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Check that the current directory isn't already initialized
	cfgPath := filepath.Join(cwd, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("schemagen.yaml already exists; project already initialized")
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.InitAnswers, translators.Available()); err != nil {
			return err
		}
	}

	if err := prompts.PackageValidator(opts.Package); err != nil {
		return fmt.Errorf("invalid package %q: %w", opts.Package, err)
	}
	if _, ok := schema.ParserFor(opts.Schema); !ok {
		return fmt.Errorf("unsupported schema file %q: use .yaml, .json or .toml", opts.Schema)
	}

	cfg := config.Config{
		Version:         config.CurrentConfigVersion,
		Schema:          opts.Schema,
		ArtifactVersion: opts.ArtifactVersion,
	}
	for _, name := range opts.Targets {
		if _, err := translators.Get(name); err != nil {
			return fmt.Errorf("unsupported target %q. Available targets: %s",
				name, strings.Join(translators.Available(), ", "))
		}
		cfg.Targets = append(cfg.Targets, config.Target{
			Name: name,
			Out:  filepath.ToSlash(filepath.Join(opts.Out, name)),
		})
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	schemaPath := opts.Schema
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(cwd, schemaPath)
	}
	created := false
	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		if err := writeStarterSchema(schemaPath, opts.Package); err != nil {
			return fmt.Errorf("failed to write schema file: %w", err)
		}
		created = true
	}
	if _, err := schema.Load(schemaPath); err != nil {
		return err
	}

	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	schemaState := "existing"
	if created {
		schemaState = "created"
	}
	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Config", Value: config.FileName},
		{Label: "Schema", Value: fmt.Sprintf("%s (%s)", opts.Schema, schemaState)},
		{Label: "Targets", Value: strings.Join(opts.Targets, ", ")},
	}, "Initialization completed")
	return nil
}

// starter* mirror the definition source layout for the starter schema.
type starterSchema struct {
	Package  string           `yaml:"package" json:"package" toml:"package"`
	Enums    []starterEnum    `yaml:"enums" json:"enums" toml:"enums"`
	Messages []starterMessage `yaml:"messages" json:"messages" toml:"messages"`
}

type starterEnum struct {
	Name   string         `yaml:"name" json:"name" toml:"name"`
	Values []starterValue `yaml:"values" json:"values" toml:"values"`
}

type starterValue struct {
	Name   string `yaml:"name" json:"name" toml:"name"`
	Number int32  `yaml:"number" json:"number" toml:"number"`
}

type starterMessage struct {
	Name        string         `yaml:"name" json:"name" toml:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Fields      []starterField `yaml:"fields" json:"fields" toml:"fields"`
}

type starterField struct {
	Name     string `yaml:"name" json:"name" toml:"name"`
	Type     string `yaml:"type" json:"type" toml:"type"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty" toml:"optional,omitempty"`
	Repeated bool   `yaml:"repeated,omitempty" json:"repeated,omitempty" toml:"repeated,omitempty"`
}

func starter(pkg string) starterSchema {
	return starterSchema{
		Package: pkg,
		Enums: []starterEnum{{
			Name: "SortOrder",
			Values: []starterValue{
				{Name: "SORT_ORDER_UNSPECIFIED", Number: 0},
				{Name: "SORT_ORDER_ASC", Number: 1},
				{Name: "SORT_ORDER_DESC", Number: 2},
			},
		}},
		Messages: []starterMessage{
			{
				Name:        "PaginationRequest",
				Description: "Page selection for list calls.",
				Fields: []starterField{
					{Name: "page", Type: "int"},
					{Name: "pageSize", Type: "int"},
					{Name: "sortBy", Type: "string", Optional: true},
					{Name: "sortOrder", Type: "SortOrder", Optional: true},
				},
			},
			{
				Name:        "Venue",
				Description: "A place that takes orders.",
				Fields: []starterField{
					{Name: "id", Type: "uuid"},
					{Name: "name", Type: "string"},
					{Name: "address", Type: "address"},
					{Name: "averageBill", Type: "money", Optional: true},
					{Name: "tags", Type: "string", Repeated: true},
				},
			},
		},
	}
}

func writeStarterSchema(path, pkg string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	doc := starter(pkg)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case ".toml":
		return toml.NewEncoder(f).Encode(doc)
	default:
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
}
