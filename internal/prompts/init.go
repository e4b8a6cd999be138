// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"

	"github.com/dacolabs/schemagen/internal/config"
)

// InitAnswers collects the values asked by the init form.
type InitAnswers struct {
	Schema          string
	Package         string
	ArtifactVersion string
	Targets         []string
	Out             string
}

// RunInitForm runs the interactive form for the init command. Fields that
// already hold a value are shown pre-filled.
func RunInitForm(a *InitAnswers, available []string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schema file").
				Description("YAML, JSON or TOML definition source").
				Placeholder("schema.yaml").
				Validate(requiredValidator("schema file")).
				Value(&a.Schema),
			huh.NewInput().
				Title("Package").
				Placeholder("gastroflow.common").
				Validate(PackageValidator).
				Value(&a.Package),
			huh.NewInput().
				Title("Artifact version").
				Placeholder("0.1.0").
				Validate(SemverValidator).
				Value(&a.ArtifactVersion),
		),
		huh.NewGroup(
			TargetMultiSelect(&a.Targets, available),
			huh.NewInput().
				Title("Output directory").
				Description("Each target writes to <dir>/<target>").
				Placeholder("gen").
				Validate(requiredValidator("output directory")).
				Value(&a.Out),
		),
	).WithTheme(Theme()).Run()
}

// SemverValidator checks a MAJOR.MINOR.PATCH version.
func SemverValidator(s string) error {
	_, err := config.BumpVersion(s, "")
	return err
}
