// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles schemagen project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the name of the project configuration file.
const FileName = "schemagen.yaml"

// EnvPrefix prefixes every environment override, e.g. SCHEMAGEN_COMMIT.
const EnvPrefix = "SCHEMAGEN"

// Override keys shared by flags and environment variables.
const (
	KeyPackage         = "package"
	KeyArtifactVersion = "artifact-version"
	KeyCommit          = "commit"
)

// Config represents the schemagen.yaml project configuration file.
type Config struct {
	Version int `yaml:"version"`
	// Schema is the definition source, relative to the config file.
	Schema string `yaml:"schema" validate:"required"`
	// Package overrides the schema package in generated code.
	Package string `yaml:"package,omitempty"`
	// ArtifactVersion is the semantic version stamped into generated code.
	ArtifactVersion string `yaml:"artifactVersion" validate:"required,semver"`
	// Commit is the build identifier stamped into generated code.
	Commit  string   `yaml:"commit,omitempty" validate:"omitempty,printascii"`
	Targets []Target `yaml:"targets,omitempty" validate:"dive"`
}

// Target selects one emitter and where its files go.
type Target struct {
	Name string `yaml:"name" validate:"required,oneof=typescript go protobuf pydantic jsonschema markdown"`
	Out  string `yaml:"out" validate:"required"`
	// Package overrides Config.Package for this target only.
	Package string `yaml:"package,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return describe(verrs)
		}
		return err
	}
	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		key := t.Name + "\x00" + t.Out
		if seen[key] {
			return fmt.Errorf("target %s is configured twice for %s", t.Name, t.Out)
		}
		seen[key] = true
	}
	return nil
}

func describe(verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "semver":
			msgs = append(msgs, fmt.Sprintf("%s %q is not a semantic version", field, fe.Value()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s %q must be one of: %s", field, fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s fails %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// For returns the targets to generate: every configured target, or only
// those whose name is in names when names is not empty.
func (c *Config) For(names []string) ([]Target, error) {
	if len(names) == 0 {
		return c.Targets, nil
	}
	var out []Target
	for _, name := range names {
		found := false
		for _, t := range c.Targets {
			if t.Name == name {
				out = append(out, t)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("target %q is not configured in %s", name, FileName)
		}
	}
	return out, nil
}

// PackageFor resolves the package for t.
func (c *Config) PackageFor(t Target) string {
	if t.Package != "" {
		return t.Package
	}
	return c.Package
}

// LoadEnv reads KEY=value pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// NewViper returns a viper instance reading SCHEMAGEN_* environment
// variables. Dashes in keys map to underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies the override keys set in v onto c. Bound flags
// that were not changed on the command line do not count as set.
func (c *Config) ApplyOverrides(v *viper.Viper) {
	if v.IsSet(KeyPackage) {
		c.Package = v.GetString(KeyPackage)
	}
	if v.IsSet(KeyArtifactVersion) {
		c.ArtifactVersion = v.GetString(KeyArtifactVersion)
	}
	if v.IsSet(KeyCommit) {
		c.Commit = v.GetString(KeyCommit)
	}
}
