package rewrite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"mergepick/internal/logging"
	"mergepick/internal/resolver"
)

// File is one target after the read and resolve phase.
type File struct {
	Path     string
	// Target is Path with symlinks resolved. Writes go there so a link keeps pointing
	// at the rewritten file.
	Target   string
	Mode     fs.FileMode
	Original []string
	Result   resolver.Result
}

// Changed reports whether the file had at least one conflict block.
func (f File) Changed() bool {
	return f.Result.Changed()
}

// Content returns the resolved file content.
func (f File) Content() []byte {
	return []byte(strings.Join(f.Result.Lines, ""))
}

// WriteFunc replaces path with data. The default swaps in a temp file with a rename.
type WriteFunc func(path string, data []byte, perm fs.FileMode) error

type Rewriter struct {
	resolver  *resolver.Resolver
	writeFile WriteFunc
	log       zerolog.Logger
}

type Option func(*Rewriter)

func WithWriteFunc(fn WriteFunc) Option {
	return func(r *Rewriter) {
		r.writeFile = fn
	}
}

func New(res *resolver.Resolver, opts ...Option) *Rewriter {
	if res == nil {
		res = resolver.Default()
	}
	r := &Rewriter{
		resolver:  res,
		writeFile: atomicWrite,
		log:       logging.Get("rewrite"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan reads and resolves every path without touching any of them. The first failure
// aborts the whole plan.
func (r *Rewriter) Plan(ctx context.Context, paths []string) ([]File, error) {
	defer logging.Start(r.log, "plan")()

	files := make([]File, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := r.planFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (r *Rewriter) planFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, &AccessError{Op: OpRead, Path: path, Err: err}
	}
	if info.IsDir() {
		return File{}, &AccessError{Op: OpRead, Path: path, Err: errors.New("is a directory")}
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return File{}, &AccessError{Op: OpRead, Path: path, Err: err}
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return File{}, &AccessError{Op: OpRead, Path: path, Err: err}
	}

	lines := resolver.SplitLines(string(data))
	res, err := r.resolver.Resolve(lines)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}

	for _, d := range res.Decisions {
		r.log.Debug().
			Str("path", path).
			Int("offset", d.Offset).
			Stringer("side", d.Side).
			Int("head_lines", len(d.Block.Head)).
			Int("theirs_lines", len(d.Block.Theirs)).
			Msg("Conflict decided")
	}
	r.log.Info().Str("path", path).Int("conflicts", len(res.Decisions)).Msg("File resolved")

	return File{Path: path, Target: target, Mode: info.Mode().Perm(), Original: lines, Result: res}, nil
}

// Apply writes every changed file. Unchanged files are left alone.
func (r *Rewriter) Apply(ctx context.Context, files []File) error {
	defer logging.Start(r.log, "apply")()

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !f.Changed() {
			r.log.Debug().Str("path", f.Path).Msg("No conflicts, skipping write")
			continue
		}
		target := f.Target
		if target == "" {
			target = f.Path
		}
		if err := r.writeFile(target, f.Content(), f.Mode); err != nil {
			return &AccessError{Op: OpWrite, Path: f.Path, Err: err}
		}
		r.log.Info().Str("path", f.Path).Msg("File rewritten")
	}
	return nil
}

// Run plans every path and, unless dryRun is set, applies the plan.
func (r *Rewriter) Run(ctx context.Context, paths []string, dryRun bool) ([]File, error) {
	files, err := r.Plan(ctx, paths)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return files, nil
	}
	if err := r.Apply(ctx, files); err != nil {
		return files, err
	}
	return files, nil
}

func atomicWrite(path string, data []byte, perm fs.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
