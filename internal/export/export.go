package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vango-go/dashboard/internal/errors"
	"github.com/vango-go/dashboard/pkg/router"
	"github.com/vango-go/dashboard/pkg/ui"
)

// Stylesheet location inside the output directory.
const StylesheetFile = "_dashboard/styles.css"

// ManifestFile is the name of the manifest written at the output root.
const ManifestFile = "manifest.json"

// Source is the application being exported.
type Source interface {
	Routes() []*router.Route
	RenderRoute(ctx context.Context, path string) ([]byte, error)
}

// Options configures an export.
type Options struct {
	// Output is the output directory. It is removed and recreated, so it
	// must not contain StaticDir, Root or the working directory.
	Output string

	// Root is the project directory.
	Root string

	// StaticDir is copied into the output when set and present.
	StaticDir string

	// StaticPrefix is the URL prefix static files are served under.
	StaticPrefix string

	// Uploader receives every output file after a successful export.
	Uploader Uploader

	// Logger receives progress. Nil uses slog.Default().
	Logger *slog.Logger
}

// Result describes a finished export.
type Result struct {
	Duration time.Duration
	Output   string

	// Pages are the exported route paths, sorted.
	Pages []string

	// Manifest maps output-relative file paths to their SHA-256.
	Manifest map[string]string

	// Uploaded is the number of files pushed by the Uploader.
	Uploaded int
}

// Files returns the manifest paths in sorted order.
func (r *Result) Files() []string {
	files := make([]string, 0, len(r.Manifest))
	for f := range r.Manifest {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Exporter writes a static copy of an application.
type Exporter struct {
	src    Source
	opts   Options
	logger *slog.Logger
}

// New creates an exporter for src.
func New(src Source, opts Options) *Exporter {
	if opts.Output == "" {
		opts.Output = "dist"
	}
	if opts.StaticPrefix == "" {
		opts.StaticPrefix = "/"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{src: src, opts: opts, logger: logger.With("component", "export")}
}

// Export renders all routes, copies static assets and writes the manifest,
// then uploads when an Uploader is set.
func (e *Exporter) Export(ctx context.Context) (*Result, error) {
	start := time.Now()
	out := e.opts.Output
	res := &Result{Output: out, Manifest: make(map[string]string)}

	if err := e.checkOutput(); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(out); err != nil {
		return nil, errors.New(errors.CodeOutputDir).WithDetail(out).Wrap(err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, errors.New(errors.CodeOutputDir).WithDetail(out).Wrap(err)
	}

	if err := e.copyStatic(res); err != nil {
		return nil, err
	}

	for _, route := range e.src.Routes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		html, err := e.src.RenderRoute(ctx, route.Path)
		if err != nil {
			return nil, err
		}
		rel := PageFile(route.Path)
		if err := e.writeFile(res, rel, html); err != nil {
			return nil, err
		}
		res.Pages = append(res.Pages, route.Path)
		e.logger.Debug("page exported", "path", route.Path, "file", rel)
	}
	sort.Strings(res.Pages)

	if err := e.writeFile(res, StylesheetFile, []byte(ui.Stylesheet())); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(out, ManifestFile), data, 0o644); err != nil {
		return nil, errors.New(errors.CodeOutputDir).WithDetail(ManifestFile).Wrap(err)
	}

	if e.opts.Uploader != nil {
		n, err := uploadTree(ctx, e.opts.Uploader, out, append(res.Files(), ManifestFile))
		res.Uploaded = n
		if err != nil {
			return res, err
		}
	}

	res.Duration = time.Since(start)
	e.logger.Info("export complete",
		"output", out,
		"pages", len(res.Pages),
		"files", len(res.Manifest),
		"uploaded", res.Uploaded,
		"duration", res.Duration)
	return res, nil
}

// checkOutput rejects an output directory that is, or contains, a directory
// the export must not remove.
func (e *Exporter) checkOutput() error {
	out, err := filepath.Abs(e.opts.Output)
	if err != nil {
		return errors.New(errors.CodeOutputDir).WithDetail(e.opts.Output).Wrap(err)
	}
	keep := []string{e.opts.StaticDir, e.opts.Root}
	if wd, err := os.Getwd(); err == nil {
		keep = append(keep, wd)
	}
	for _, p := range keep {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if within(out, abs) {
			return errors.New(errors.CodeUnsafeOutput).WithDetail(e.opts.Output + " contains " + p)
		}
	}
	return nil
}

// within reports whether p is dir or lies below it.
func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// PageFile returns the output-relative file for a route path:
// "/" is index.html and "/reports/daily" is reports/daily/index.html.
func PageFile(routePath string) string {
	p := strings.Trim(routePath, "/")
	if p == "" {
		return "index.html"
	}
	return path.Join(p, "index.html")
}

func (e *Exporter) copyStatic(res *Result) error {
	src := e.opts.StaticDir
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	prefix := strings.Trim(e.opts.StaticPrefix, "/")

	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		rel = path.Join(prefix, filepath.ToSlash(rel))

		in, err := os.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()
		return e.writeStream(res, rel, in)
	})
}

func (e *Exporter) writeFile(res *Result, rel string, data []byte) error {
	return e.writeStream(res, rel, bytes.NewReader(data))
}

// writeStream copies r to rel under the output directory and records the
// file's hash in the manifest.
func (e *Exporter) writeStream(res *Result, rel string, r io.Reader) error {
	dst := filepath.Join(e.opts.Output, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.New(errors.CodeOutputDir).WithDetail(rel).Wrap(err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return errors.New(errors.CodeOutputDir).WithDetail(rel).Wrap(err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(f, h), r); err != nil {
		return errors.New(errors.CodeOutputDir).WithDetail(rel).Wrap(err)
	}
	res.Manifest[rel] = hex.EncodeToString(h.Sum(nil))
	return f.Close()
}
