// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/dacolabs/schemagen/internal/config"
)

// RunBumpForm runs the interactive form for selecting a version bump type.
func RunBumpForm(bumpType *string, currentVersion string) error {
	options := []huh.Option[string]{
		huh.NewOption(fmt.Sprintf("patch  (%s)", previewBump(currentVersion, "patch")), "patch"),
		huh.NewOption(fmt.Sprintf("minor  (%s)", previewBump(currentVersion, "minor")), "minor"),
		huh.NewOption(fmt.Sprintf("major  (%s)", previewBump(currentVersion, "major")), "major"),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Current artifact version: %s, select bump type", currentVersion)).
				Options(options...).
				Value(bumpType),
		),
	).WithTheme(Theme()).Run()
}

// previewBump returns the bumped version string for display purposes.
func previewBump(version, bumpType string) string {
	v, err := config.BumpVersion(version, bumpType)
	if err != nil {
		return "?"
	}
	return v
}
