// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// TargetMultiSelect returns a multi-select field for choosing emitter targets.
func TargetMultiSelect(value *[]string, targets []string) *huh.MultiSelect[string] {
	options := make([]huh.Option[string], len(targets))
	for i, t := range targets {
		options[i] = huh.NewOption(t, t)
	}
	return huh.NewMultiSelect[string]().
		Title("Targets").
		Options(options...).
		Validate(func(selected []string) error {
			if len(selected) == 0 {
				return errors.New("select at least one target")
			}
			return nil
		}).
		Value(value)
}

// RunTargetForm asks which targets to generate when none were configured.
func RunTargetForm(value *[]string, targets []string) error {
	return huh.NewForm(
		huh.NewGroup(TargetMultiSelect(value, targets)),
	).WithTheme(Theme()).Run()
}
