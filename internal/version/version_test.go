// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()
	assert.Contains(t, info, "schemagen version "+Version)
	assert.Contains(t, info, "commit: "+Commit)
	assert.Contains(t, info, runtime.Version())
	assert.Equal(t, Version, Short())
}

func TestFromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
		},
	}

	tests := []struct {
		name                string
		version, commit, dt string
		want                [3]string
	}{
		{
			name:    "defaults are filled",
			version: "dev", commit: "none", dt: "unknown",
			want: [3]string{"v0.4.1", "0123456", "2026-10-01T12:00:00Z"},
		},
		{
			name:    "ldflags win",
			version: "1.0.0", commit: "feedbee", dt: "2026-01-01",
			want: [3]string{"1.0.0", "feedbee", "2026-01-01"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c, d := fromBuildInfo(info, tt.version, tt.commit, tt.dt)
			assert.Equal(t, tt.want, [3]string{v, c, d})
		})
	}

	v, _, _ := fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev", "none", "unknown")
	assert.Equal(t, "dev", v)
}
