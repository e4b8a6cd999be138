// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/logging"
	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/session"
	"github.com/dacolabs/schemagen/internal/translate"
)

// watchSettle coalesces the burst of events an editor save produces.
const watchSettle = 150 * time.Millisecond

type generateOptions struct {
	targets []string
	out     string
	watch   bool
	dryRun  bool
}

// generateJob is one target rendered into one directory.
type generateJob struct {
	translator translate.Translator
	dir        string
	opts       translate.Options
}

func newGenerateCmd(translators translate.Register) *cobra.Command {
	opts := &generateOptions{}
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code for the configured targets",
		Long: fmt.Sprintf(`Generate type definitions from the project schema.

Targets and output directories come from schemagen.yaml unless --target is
given. Package, artifact version and commit can be overridden with flags or
with the SCHEMAGEN_PACKAGE, SCHEMAGEN_ARTIFACT_VERSION and SCHEMAGEN_COMMIT
environment variables (also read from a .env file next to schemagen.yaml).

Available targets: %s`, strings.Join(translators.Available(), ", ")),
		Example: `  # Generate every configured target
  schemagen generate

  # Only one configured target
  schemagen generate --target typescript

  # A target that is not configured, into an explicit directory
  schemagen generate --target protobuf --out gen/proto

  # Stamp the build commit into the generated files
  schemagen generate --commit "$(git rev-parse --short HEAD)"

  # Regenerate whenever the schema file changes
  schemagen generate --watch`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, translators, v, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.targets, "target", "t", nil, fmt.Sprintf("Target(s) to generate (%s)", strings.Join(translators.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory (a subdirectory per target when several are selected)")
	cmd.Flags().String(config.KeyPackage, "", "Package/namespace of the generated code")
	cmd.Flags().String(config.KeyArtifactVersion, "", "Semantic version stamped into the generated code")
	cmd.Flags().String(config.KeyCommit, "", "Build identifier stamped into the generated code")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate when the schema file changes")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "List the files that would be written without writing them")

	for _, key := range []string{config.KeyPackage, config.KeyArtifactVersion, config.KeyCommit} {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(key))
	}

	return cmd
}

func runGenerate(cmd *cobra.Command, translators translate.Register, v *viper.Viper, opts *generateOptions) error {
	sctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	cfg := *sctx.Config
	cfg.ApplyOverrides(v)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrInvalidConfig, err)
	}

	if len(opts.targets) == 0 && len(cfg.Targets) == 0 && opts.out != "" {
		if err := prompts.RunTargetForm(&opts.targets, translators.Available()); err != nil {
			return err
		}
	}

	jobs, err := planJobs(sctx, &cfg, translators, opts, v.IsSet(config.KeyPackage))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := generate(cmd.Context(), out, sctx.Schema, jobs, opts.dryRun); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log := logging.From(ctx)
	_, _ = fmt.Fprintf(out, "\nWatching %s for changes (Ctrl+C to stop)\n", sctx.SchemaPath)
	return watchFile(ctx, sctx.SchemaPath, watchSettle, func() {
		s, err := session.LoadSchema(sctx.SchemaPath)
		if err != nil {
			log.Error().Err(err).Msg("schema reload failed; keeping previous output")
			return
		}
		if err := generate(ctx, out, s, jobs, opts.dryRun); err != nil {
			log.Error().Err(err).Msg("generation failed")
		}
	})
}

// planJobs resolves which targets run and where they write. With --out,
// targets need not be configured; otherwise --target filters the
// configured ones.
func planJobs(sctx *session.Context, cfg *config.Config, translators translate.Register, opts *generateOptions, packageFlag bool) ([]generateJob, error) {
	var targets []config.Target
	switch {
	case opts.out != "":
		names := opts.targets
		if len(names) == 0 {
			for _, t := range cfg.Targets {
				names = append(names, t.Name)
			}
		}
		if len(names) == 0 {
			return nil, errors.New("no targets selected; use --target")
		}
		for _, name := range names {
			dir := opts.out
			if len(names) > 1 {
				dir = filepath.Join(opts.out, name)
			}
			targets = append(targets, config.Target{Name: name, Out: dir})
		}
	default:
		var err error
		if targets, err = cfg.For(opts.targets); err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("no targets configured in %s; use --target with --out", config.FileName)
		}
	}

	jobs := make([]generateJob, 0, len(targets))
	for _, t := range targets {
		translator, err := translators.Get(t.Name)
		if err != nil {
			return nil, fmt.Errorf("unsupported target %q. Available targets: %s",
				t.Name, strings.Join(translators.Available(), ", "))
		}
		pkg := cfg.PackageFor(t)
		if packageFlag {
			pkg = cfg.Package
		}
		jobs = append(jobs, generateJob{
			translator: translator,
			dir:        sctx.Resolve(t.Out),
			opts: translate.Options{
				Package: pkg,
				Version: cfg.ArtifactVersion,
				Commit:  cfg.Commit,
			},
		})
	}
	return jobs, nil
}

// generate renders every job before writing any of them, so a failing
// target leaves all output directories untouched.
func generate(ctx context.Context, out io.Writer, s *schema.Schema, jobs []generateJob, dryRun bool) error {
	log := logging.From(ctx)
	for _, w := range s.Warnings() {
		log.Warn().Msg(w)
	}

	rendered := make([][]translate.File, len(jobs))
	for i, job := range jobs {
		start := time.Now()
		files, err := translate.Emit(s, job.translator, job.opts)
		if err != nil {
			return err
		}
		log.Debug().
			Str("target", job.translator.Name()).
			Int("files", len(files)).
			Dur("took", time.Since(start)).
			Msg("rendered")
		rendered[i] = files
	}

	results := make([]prompts.ResultField, 0, len(jobs))
	for i, job := range jobs {
		if dryRun {
			for _, f := range rendered[i] {
				_, _ = fmt.Fprintf(out, "%s (%d bytes)\n", filepath.Join(job.dir, filepath.FromSlash(f.Path)), len(f.Content))
			}
			continue
		}
		if err := translate.WriteFiles(job.dir, rendered[i]); err != nil {
			return fmt.Errorf("target %s: %w", job.translator.Name(), err)
		}
		results = append(results, prompts.ResultField{
			Label: job.translator.Name(),
			Value: fmt.Sprintf("%d file(s) in %s", len(rendered[i]), job.dir),
		})
	}

	if !dryRun {
		prompts.PrintResult(out, results, "Generation completed")
	}
	return nil
}
