package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	sgdiff "github.com/sourcegraph/go-diff/diff"
	"github.com/spf13/cobra"

	"mergepick/internal/app"
	"mergepick/internal/config"
	"mergepick/internal/diffview"
	"mergepick/internal/logging"
	"mergepick/internal/report"
	"mergepick/internal/resolver"
	"mergepick/internal/rewrite"
)

var errNoTargets = errors.New("no files given; pass paths or use --all")

func runResolve(cmd *cobra.Command, deps Deps, opts *options, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Get("cli")

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	threshold := cfg.ThresholdOffset
	if cmd.Flags().Changed("threshold") {
		if opts.threshold < 0 {
			return fmt.Errorf("--threshold must not be negative, got %d", opts.threshold)
		}
		threshold = opts.threshold
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	paths, err := targets(ctx, deps, opts, cwd, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No conflicted files.")
		return nil
	}

	rw := rewrite.New(resolver.New(resolver.Options{Threshold: threshold}))
	files, err := rw.Plan(ctx, paths)
	if err != nil {
		return err
	}
	entries := report.FromFiles(files, time.Now())
	logger.Info().Int("files", len(files)).Int("conflicts", len(entries)).Int("threshold", threshold).Msg("Plan ready")

	if opts.diff {
		return printDiff(cmd, files, cfg.PreviewContext)
	}

	dryRun := opts.dryRun
	if opts.interactive && !dryRun {
		accepted, err := review(cmd, files, entries, cfg.PreviewContext)
		if err != nil {
			return err
		}
		if !accepted {
			fmt.Fprintln(cmd.ErrOrStderr(), "Aborted, no files written.")
			return nil
		}
	}

	if !dryRun {
		if err := rw.Apply(ctx, files); err != nil {
			return err
		}
	}

	if err := printEntries(cmd, entries, len(files) > 1, opts.json); err != nil {
		return err
	}
	if !opts.json {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Summary(entries, len(files), dryRun))
	}

	if dryRun {
		return nil
	}
	stage := cfg.Stage
	if cmd.Flags().Changed("stage") {
		stage = opts.stage
	}
	if stage {
		if err := deps.Stage.Stage(ctx, cwd, changedPaths(files)...); err != nil {
			return fmt.Errorf("stage resolved files: %w", err)
		}
	}
	saveLastRun(ctx, deps, cwd, entries, logger)
	return nil
}

func loadConfig(path string) (config.AppConfig, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	cfg, _, err := config.Load()
	return cfg, err
}

// targets returns the explicit paths, or with --all the unmerged paths of the repository
// containing cwd. A file named twice is only returned once.
func targets(ctx context.Context, deps Deps, opts *options, cwd string, args []string) ([]string, error) {
	if !opts.all {
		if len(args) == 0 {
			return nil, errNoTargets
		}
		return uniquePaths(cwd, args), nil
	}

	root, err := deps.RepoRoot(ctx, cwd)
	if err != nil {
		return nil, fmt.Errorf("locate repository: %w", err)
	}
	rel, err := deps.Status.ListConflictedFiles(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("list conflicted files: %w", err)
	}

	paths := append([]string{}, args...)
	for _, p := range rel {
		paths = append(paths, filepath.Join(root, p))
	}
	return uniquePaths(cwd, paths), nil
}

// uniquePaths drops later paths that name the same file as an earlier one after
// cleaning and anchoring them at cwd.
func uniquePaths(cwd string, paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if !filepath.IsAbs(key) {
			key = filepath.Join(cwd, key)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

func printEntries(cmd *cobra.Command, entries []report.Entry, withPath, asJSON bool) error {
	if asJSON {
		return report.WriteJSON(cmd.OutOrStdout(), entries)
	}
	return report.WriteText(cmd.OutOrStdout(), entries, withPath)
}

func printDiff(cmd *cobra.Command, files []rewrite.File, contextLines int) error {
	raw, err := diffview.UnifiedDiff(fileDiffs(files, contextLines)...)
	if err != nil {
		return fmt.Errorf("render diff: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(raw)
	return err
}

func review(cmd *cobra.Command, files []rewrite.File, entries []report.Entry, contextLines int) (bool, error) {
	if !logging.IsTerminal(cmd.OutOrStdout()) {
		return false, errors.New("--interactive needs a terminal on stdout")
	}

	byPath := make(map[string][]report.Entry)
	for _, e := range entries {
		byPath[e.Path] = append(byPath[e.Path], e)
	}

	reviews := make([]app.FileReview, 0, len(files))
	for _, f := range files {
		if !f.Changed() {
			continue
		}
		rows, err := diffview.PreviewRows(diffview.BuildFileDiff(f.Path, f.Original, f.Result, contextLines))
		if err != nil {
			return false, fmt.Errorf("preview %s: %w", f.Path, err)
		}
		reviews = append(reviews, app.FileReview{Path: f.Path, Rows: rows, Entries: byPath[f.Path]})
	}
	if len(reviews) == 0 {
		return true, nil
	}
	return app.Review(reviews)
}

func fileDiffs(files []rewrite.File, contextLines int) []*sgdiff.FileDiff {
	out := make([]*sgdiff.FileDiff, 0, len(files))
	for _, f := range files {
		out = append(out, diffview.BuildFileDiff(f.Path, f.Original, f.Result, contextLines))
	}
	return out
}

func changedPaths(files []rewrite.File) []string {
	var out []string
	for _, f := range files {
		if f.Changed() {
			out = append(out, f.Path)
		}
	}
	return out
}

// saveLastRun keeps the decisions next to the repository so `mergepick last` can show
// them. Outside a repository there is nowhere to keep them.
func saveLastRun(ctx context.Context, deps Deps, cwd string, entries []report.Entry, logger zerolog.Logger) {
	gitDir, err := deps.GitDir(ctx, cwd)
	if err != nil {
		logger.Debug().Err(err).Msg("Not in a git repository, last run not saved")
		return
	}
	store := report.NewStore(gitDir)
	if err := store.Save(entries); err != nil {
		logger.Warn().Err(err).Str("path", store.Path()).Msg("Failed to save last run")
	}
}

func newLastCmd(deps Deps, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the decisions of the last run in this repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			gitDir, err := deps.GitDir(cmd.Context(), cwd)
			if err != nil {
				return fmt.Errorf("locate git directory: %w", err)
			}
			entries, err := report.NewStore(gitDir).Load()
			if err != nil {
				return fmt.Errorf("load last run: %w", err)
			}
			return printEntries(cmd, entries, true, opts.json)
		},
	}
}
