package prescan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/gitdocify/internal/core"
)

// ErrRootInaccessible is returned when the scan root is missing, unreadable or
// not a directory.
var ErrRootInaccessible = errors.New("scan root is not an accessible directory")

// DefaultMaxFileSize is the largest file, in bytes, that is analyzed.
const DefaultMaxFileSize = 100000

// Options configures an Analyzer. Name overrides the project name, which
// defaults to the base name of Root.
type Options struct {
	Root         string
	Name         string
	Exclude      []string
	IncludeTests bool
	MaxFileSize  int
	MaxDepth     int
	Workers      int
}

//go:generate mockgen -destination=../../mocks/mock_vcs_reader.go -package=mocks github.com/sevigo/gitdocify/internal/prescan VCSReader

// VCSReader describes the checkout a directory belongs to. It returns nil
// without error when the directory is not under version control.
type VCSReader interface {
	Describe(path string) (*core.VCSInfo, error)
}

// AnalyzerOption customizes an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithReporter forwards every diagnostic to r as it happens. Calls are
// serialized, so r needs no locking of its own.
func WithReporter(r core.Reporter) AnalyzerOption {
	return func(a *Analyzer) { a.reporter = r }
}

// WithExtractors replaces the default extractor registry.
func WithExtractors(r *Registry) AnalyzerOption {
	return func(a *Analyzer) { a.registry = r }
}

// WithVCS attaches version-control metadata to the project info.
func WithVCS(v VCSReader) AnalyzerOption {
	return func(a *Analyzer) { a.vcs = v }
}

// WithManifestSources replaces the dependency manifests that are read.
func WithManifestSources(src []ManifestSource) AnalyzerOption {
	return func(a *Analyzer) { a.manifests = src }
}

// WithFS scans fsys instead of the operating system directory at Options.Root.
// Options.Root is still used for the project name and path.
func WithFS(fsys fs.FS) AnalyzerOption {
	return func(a *Analyzer) { a.fsys = fsys }
}

// Analyzer scans a source tree and builds a CodebaseAnalysis.
type Analyzer struct {
	opts      Options
	matcher   *Matcher
	registry  *Registry
	manifests []ManifestSource
	vcs       VCSReader
	reporter  core.Reporter
	fsys      fs.FS
}

// NewAnalyzer validates the options and compiles the exclusion rules. An
// invalid pattern fails here, before anything is read.
func NewAnalyzer(opts Options, options ...AnalyzerOption) (*Analyzer, error) {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	m, err := NewMatcher(MatcherOptions{Patterns: opts.Exclude, IncludeTests: opts.IncludeTests})
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		opts:      opts,
		matcher:   m,
		registry:  DefaultRegistry(),
		manifests: DefaultManifestSources,
	}
	for _, o := range options {
		o(a)
	}
	return a, nil
}

// Matcher returns the compiled exclusion rules.
func (a *Analyzer) Matcher() *Matcher {
	return a.matcher
}

type diagnosticKey struct {
	kind core.DiagnosticKind
	path string
}

// diagnostics collects diagnostics from concurrent readers. The discovery
// walk and the tree builder both list directories, so an unreadable one is
// kept once.
type diagnostics struct {
	mu      sync.Mutex
	list    []core.Diagnostic
	seen    map[diagnosticKey]struct{}
	forward core.Reporter
}

func (d *diagnostics) report(diag core.Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := diagnosticKey{kind: diag.Kind, path: diag.Path}
	if _, dup := d.seen[key]; dup {
		return
	}
	if d.seen == nil {
		d.seen = make(map[diagnosticKey]struct{})
	}
	d.seen[key] = struct{}{}
	d.list = append(d.list, diag)
	d.forward.Report(diag)
}

type fileResult struct {
	ok     bool
	lines  int
	record *core.FileRecord
}

// Analyze runs the whole scan. Per-file and per-directory problems end up in
// the Diagnostics of the result; only an inaccessible root or a cancelled
// context make it fail.
func (a *Analyzer) Analyze(ctx context.Context) (*core.CodebaseAnalysis, error) {
	fsys, absRoot, err := a.openRoot()
	if err != nil {
		return nil, err
	}

	diags := &diagnostics{forward: a.reporter}
	report := core.Reporter(diags.report)

	paths, err := a.discover(ctx, fsys, report)
	if err != nil {
		return nil, err
	}

	results, err := a.readAll(ctx, fsys, paths, report)
	if err != nil {
		return nil, err
	}

	name := a.opts.Name
	if name == "" {
		name = filepath.Base(absRoot)
	}
	info := core.ProjectInfo{
		Name:      name,
		Path:      absRoot,
		Languages: make(map[core.Language]int),
	}
	files := []core.FileRecord{}
	for i, r := range results {
		if !r.ok {
			continue
		}
		info.TotalFiles++
		info.TotalLines += r.lines
		info.Languages[LanguageFor(Ext(path.Base(paths[i])))]++
		if r.record != nil {
			files = append(files, *r.record)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis := &core.CodebaseAnalysis{
		ProjectInfo:  info,
		Structure:    BuildTree(fsys, a.matcher, a.opts.MaxDepth, report),
		Files:        files,
		Dependencies: ReadDependencies(fsys, a.manifests, report),
		Readme:       ReadReadme(fsys, report),
		ConfigFiles:  CollectConfigFiles(fsys, a.matcher, report),
	}

	if a.vcs != nil {
		vcs, err := a.vcs.Describe(absRoot)
		if err != nil {
			report(core.Diagnostic{
				Severity: core.SeverityInfo,
				Kind:     core.KindVCSFailed,
				Path:     ".",
				Message:  err.Error(),
			})
		}
		analysis.ProjectInfo.VCS = vcs
	}

	diags.mu.Lock()
	analysis.Diagnostics = diags.list
	diags.mu.Unlock()
	return analysis, nil
}

func (a *Analyzer) openRoot() (fs.FS, string, error) {
	absRoot, err := filepath.Abs(a.opts.Root)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrRootInaccessible, a.opts.Root, err)
	}

	if a.fsys != nil {
		info, err := fs.Stat(a.fsys, ".")
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s: %w", ErrRootInaccessible, a.opts.Root, err)
		}
		if !info.IsDir() {
			return nil, "", fmt.Errorf("%w: %s", ErrRootInaccessible, a.opts.Root)
		}
		return a.fsys, absRoot, nil
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrRootInaccessible, a.opts.Root, err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("%w: %s is not a directory", ErrRootInaccessible, a.opts.Root)
	}
	return os.DirFS(absRoot), absRoot, nil
}

// discover lists eligible files in walk order. Excluded directories are
// pruned so their contents are never visited.
func (a *Analyzer) discover(ctx context.Context, fsys fs.FS, report core.Reporter) ([]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == "." {
				return fmt.Errorf("%w: %s: %w", ErrRootInaccessible, a.opts.Root, err)
			}
			report.Report(core.Diagnostic{
				Severity: core.SeverityWarning,
				Kind:     core.KindDirUnreadable,
				Path:     p,
				Message:  err.Error(),
			})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if p == "." {
			return nil
		}

		if d.IsDir() {
			if a.matcher.Match(p, true) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if !Supported(Ext(d.Name())) || a.matcher.Match(p, false) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (a *Analyzer) readAll(ctx context.Context, fsys fs.FS, paths []string, report core.Reporter) ([]fileResult, error) {
	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.readFile(fsys, p, report)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *Analyzer) readFile(fsys fs.FS, p string, report core.Reporter) fileResult {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		report.Report(core.Diagnostic{
			Severity: core.SeverityWarning,
			Kind:     core.KindReadFailed,
			Path:     p,
			Message:  err.Error(),
		})
		return fileResult{}
	}

	content := strings.ToValidUTF8(string(data), "")
	res := fileResult{ok: true, lines: countLines(content)}

	if len(data) > a.opts.MaxFileSize {
		report.Report(core.Diagnostic{
			Severity: core.SeverityInfo,
			Kind:     core.KindLargeFile,
			Path:     p,
			Message:  fmt.Sprintf("skipping large file (%d bytes > %d)", len(data), a.opts.MaxFileSize),
		})
		return res
	}

	name := path.Base(p)
	ext := Ext(name)
	lang := LanguageFor(ext)
	x := a.registry.Extract(lang, content)
	res.record = &core.FileRecord{
		Path:      p,
		Name:      name,
		Extension: ext,
		Language:  lang,
		Size:      len(content),
		Lines:     res.lines,
		Content:   content,
		Type:      x.Type,
		Imports:   nonNil(x.Imports),
		Classes:   nonNil(x.Classes),
		Functions: nonNil(x.Functions),
	}
	return res
}

// countLines counts lines the way a text reader does: a trailing newline does
// not start a new line and \r\n, \r and \n all end one.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
