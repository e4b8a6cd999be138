// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/dacolabs/schemagen/internal/schema"
)

const (
	// DefaultCommit is the build identifier used when none is supplied.
	DefaultCommit = "unknown"
	// DefaultGenerator names the generator in file headers.
	DefaultGenerator = "schemagen"
)

// Options are the explicit inputs of a generation run besides the schema.
// Nothing here is read from the environment by the emitter itself.
type Options struct {
	// Package is the target package/namespace. Defaults to the schema package.
	Package string `validate:"omitempty,max=200"`
	// Version is the semantic version exposed by the generated artifact.
	Version string `validate:"required,semver"`
	// Commit is the build identifier exposed by the generated artifact.
	Commit string `validate:"omitempty,printascii,max=100"`
	// Generator identifies the generator in file headers.
	Generator string `validate:"omitempty,printascii"`
}

// File is one generated artifact.
type File struct {
	Path    string // relative, slash separated
	Content []byte
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize fills defaults and validates the options against s.
func (o Options) Normalize(s *schema.Schema) (Options, error) {
	if o.Package == "" {
		o.Package = s.Package()
	}
	if o.Commit == "" {
		o.Commit = DefaultCommit
	}
	if o.Generator == "" {
		o.Generator = DefaultGenerator
	}
	if err := validate.Struct(o); err != nil {
		return o, errors.Wrap(err, "invalid generation options")
	}
	return o, nil
}

// Emit renders s with t. Output is deterministic and sorted by path. Any
// failure aborts the run: either every file is returned or none is.
func Emit(s *schema.Schema, t Translator, opts Options) ([]File, error) {
	opts, err := opts.Normalize(s)
	if err != nil {
		return nil, err
	}

	files, err := t.Translate(s, opts)
	if err != nil {
		return nil, errors.WithMessagef(err, "target %s", t.Name())
	}

	seen := make(map[string]bool, len(files))
	for i, f := range files {
		clean := path.Clean(f.Path)
		if f.Path == "" || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
			return nil, fmt.Errorf("target %s: invalid output path %q", t.Name(), f.Path)
		}
		if seen[clean] {
			return nil, fmt.Errorf("target %s: duplicate output path %q", t.Name(), clean)
		}
		seen[clean] = true
		files[i].Path = clean
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// WriteFiles writes files below dir. Every file is first staged next to its
// destination and only renamed into place once all of them were written, so
// a failed run leaves no partial output behind.
func WriteFiles(dir string, files []File) error {
	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range files {
		dest := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
			cleanup()
			return errors.Wrap(err, "create output directory")
		}
		tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
		if err != nil {
			cleanup()
			return errors.Wrap(err, "stage output file")
		}
		staged = append(staged, tmp.Name())
		if _, err := tmp.Write(f.Content); err != nil {
			_ = tmp.Close()
			cleanup()
			return errors.Wrapf(err, "write %s", f.Path)
		}
		if err := tmp.Close(); err != nil {
			cleanup()
			return errors.Wrapf(err, "write %s", f.Path)
		}
	}

	for i, f := range files {
		dest := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.Rename(staged[i], dest); err != nil {
			cleanup()
			return errors.Wrapf(err, "move %s into place", f.Path)
		}
	}
	return nil
}
