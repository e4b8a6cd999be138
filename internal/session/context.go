// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/schema"
)

var (
	// ErrNotInitialized indicates no schemagen.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a schemagen project (schemagen.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSchemaNotFound indicates the schema file referenced by config doesn't exist.
	ErrSchemaNotFound = errors.New("schema file not found")

	// ErrInvalidSchema indicates the schema file exists but couldn't be parsed.
	ErrInvalidSchema = errors.New("invalid schema")
)

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the project configuration and the parsed schema.
type Context struct {
	// Dir is the project directory holding schemagen.yaml.
	Dir string

	// Config is the project configuration as written on disk.
	Config *config.Config

	// SchemaPath is the absolute path of the definition source.
	SchemaPath string

	// Schema is the validated schema.
	Schema *schema.Schema
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the schemagen Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadDir(ctx, cwd)
}

// LoadDir is Load for an explicit project directory. A .env file next to
// schemagen.yaml is read into the environment first.
func LoadDir(ctx context.Context, dir string) (context.Context, error) {
	configPath := filepath.Join(dir, config.FileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	if err := config.LoadEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, fmt.Errorf("%w: .env: %v", ErrInvalidConfig, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	schemaPath := cfg.Schema
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(dir, schemaPath)
	}

	s, err := LoadSchema(schemaPath)
	if err != nil {
		return nil, err
	}

	sctx := &Context{
		Dir:        dir,
		Config:     cfg,
		SchemaPath: schemaPath,
		Schema:     s,
	}
	return context.WithValue(ctx, contextKey{}, sctx), nil
}

// LoadSchema parses the definition source at path, mapping failures onto
// ErrSchemaNotFound and ErrInvalidSchema.
func LoadSchema(path string) (*schema.Schema, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
	}
	s, err := schema.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return s, nil
}

// Resolve makes p absolute relative to the project directory.
func (c *Context) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// From extracts the schemagen Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sctx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sctx
	}
	return nil
}
