// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/schemagen/internal/schema"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		dir         string // relative to testdata, empty means use t.TempDir()
		wantErr     error
		wantPackage string // only checked if wantErr is nil
		wantSchema  string // only checked if wantErr is nil
	}{
		{
			name:    "not initialized",
			dir:     "", // empty dir with no schemagen.yaml
			wantErr: ErrNotInitialized,
		},
		{
			name:    "invalid config",
			dir:     "testdata/invalid-config",
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "schema not found",
			dir:     "testdata/missing-schema",
			wantErr: ErrSchemaNotFound,
		},
		{
			name:    "invalid schema",
			dir:     "testdata/invalid-schema",
			wantErr: ErrInvalidSchema,
		},
		{
			name:        "valid",
			dir:         "testdata/valid",
			wantErr:     nil,
			wantPackage: "shop",
			wantSchema:  "schema/shop.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var testDir string
			if tt.dir == "" {
				testDir = t.TempDir()
			} else {
				var err error
				testDir, err = filepath.Abs(tt.dir)
				require.NoError(t, err)
			}

			origDir, _ := os.Getwd()
			defer func() { _ = os.Chdir(origDir) }()
			require.NoError(t, os.Chdir(testDir))

			ctx, err := Load(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			sctx := From(ctx)
			require.NotNil(t, sctx)
			assert.Equal(t, tt.wantSchema, sctx.Config.Schema)
			assert.Equal(t, tt.wantPackage, sctx.Schema.Package())
			assert.Equal(t, filepath.Join(testDir, tt.wantSchema), sctx.SchemaPath)
		})
	}
}

func TestLoadDir_InvalidSchemaKeepsCause(t *testing.T) {
	dir, err := filepath.Abs("testdata/invalid-schema")
	require.NoError(t, err)

	_, err = LoadDir(context.Background(), dir)
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.ErrorIs(t, err, schema.ErrUnknownType)
	assert.Contains(t, err.Error(), "shop.Order.status")
}

func TestLoadDir_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schemagen.yaml"),
		[]byte("version: 1\nschema: s.yaml\nartifactVersion: 1.0.0\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s.yaml"), []byte("package: x\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SCHEMAGEN_SESSION_TEST=1\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SCHEMAGEN_SESSION_TEST") })

	_, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "1", os.Getenv("SCHEMAGEN_SESSION_TEST"))
}

func TestContext_Resolve(t *testing.T) {
	c := &Context{Dir: "/work/project"}
	assert.Equal(t, filepath.Join("/work/project", "gen/ts"), c.Resolve("gen/ts"))
	assert.Equal(t, "/abs/out", c.Resolve("/abs/out"))
}

func TestFrom_NoContextStored(t *testing.T) {
	assert.Nil(t, From(context.Background()))
}
