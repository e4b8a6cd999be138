// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// BumpVersion increments one part of a MAJOR.MINOR.PATCH version. A
// pre-release or build suffix is dropped. An empty part only validates
// the version and returns its core.
func BumpVersion(version, part string) (string, error) {
	core := version
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid version format %q: expected X.Y.Z", version)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (len(p) > 1 && p[0] == '0') {
			return "", fmt.Errorf("invalid version format %q: %q is not a number", version, p)
		}
		nums[i] = n
	}

	switch part {
	case "major":
		nums = [3]int{nums[0] + 1, 0, 0}
	case "minor":
		nums = [3]int{nums[0], nums[1] + 1, 0}
	case "patch":
		nums[2]++
	case "":
	default:
		return "", fmt.Errorf("bump must be one of: major, minor, patch")
	}
	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]), nil
}
