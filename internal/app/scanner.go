package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Matt-Yorkley/viewdeps/internal/domain/digest"
	"github.com/Matt-Yorkley/viewdeps/internal/ports"
)

// ScanResult holds statistics from one Scan pass.
type ScanResult struct {
	TemplateCount int
	DepCount      int
	Reused        int // templates skipped because their mtime was unchanged
}

// skipDirs lists directories never containing views (matches the watcher).
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"tmp":          true,
	"log":          true,
	".viewdeps":    true,
}

// Scan walks the views root, extracts each template's render dependencies,
// recomputes recursive digests, and persists the index. Templates whose
// mtime is unchanged since the last scan reuse their stored entry.
func (a *App) Scan() (*ScanResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	root := a.viewsPath()
	fresh := ports.NewDepIndex()
	result := &ScanResult{}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable
		}
		if info.IsDir() {
			if skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !a.Parser.SupportsExtension(ext) {
			return nil
		}

		relToViews, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		name := templateName(relToViews)
		relToProject := filepath.ToSlash(filepath.Join(a.ViewsRoot, relToViews))

		if prior, ok := a.Index.Templates[name]; ok &&
			prior.Path == relToProject && prior.LastModified == info.ModTime().Unix() {
			fresh.Templates[name] = prior
			result.Reused++
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		deps, err := a.Parser.ExtractDependencies(name, source)
		if err != nil {
			// Unparseable view: record it with no dependencies so digests
			// still cover its own content.
			deps = nil
		}
		fresh.Templates[name] = &ports.TemplateMeta{
			Path:         relToProject,
			LastModified: info.ModTime().Unix(),
			Dependencies: deps,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.Index = fresh
	a.refreshDigests()

	for _, meta := range a.Index.Templates {
		result.TemplateCount++
		result.DepCount += len(meta.Dependencies)
	}

	if err := a.Store.SaveIndex(a.ProjectID, a.Index); err != nil {
		return nil, err
	}
	return result, nil
}

// Dependencies returns the stored direct dependencies of a template.
func (a *App) Dependencies(name string) ([]string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	meta, ok := a.Index.Templates[name]
	if !ok {
		return nil, false
	}
	return meta.Dependencies, true
}

// Digest returns the stored recursive digest of a template.
func (a *App) Digest(name string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	meta, ok := a.Index.Templates[name]
	if !ok {
		return "", false
	}
	return meta.Digest, true
}

// Edge is one dependency-graph edge: From renders To.
type Edge struct {
	From string
	To   string
}

// Graph returns every template -> dependency edge, templates sorted by name,
// edges within a template in source order.
func (a *App) Graph() []Edge {
	a.mu.Lock()
	defer a.mu.Unlock()

	names := make([]string, 0, len(a.Index.Templates))
	for name := range a.Index.Templates {
		names = append(names, name)
	}
	sort.Strings(names)

	var edges []Edge
	for _, name := range names {
		for _, dep := range a.Index.Templates[name].Dependencies {
			edges = append(edges, Edge{From: name, To: dep})
		}
	}
	return edges
}

// ExtractView extracts dependencies for a single view file without touching
// the index or the store. path may be absolute or project-relative.
func (a *App) ExtractView(path string) (string, []string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(a.ProjectRoot, path)
	}
	source, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, err
	}

	name := templateName(filepath.Base(abs))
	if rel, err := filepath.Rel(a.viewsPath(), abs); err == nil && !strings.HasPrefix(rel, "..") {
		name = templateName(rel)
	}

	deps, err := a.Parser.ExtractDependencies(name, source)
	if err != nil {
		return name, nil, err
	}
	return name, deps, nil
}

// refreshDigests recomputes every template's recursive digest. Callers must
// hold the lock.
func (a *App) refreshDigests() {
	d := digest.New(&indexSource{app: a})
	names := make([]string, 0, len(a.Index.Templates))
	for name := range a.Index.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a.Index.Templates[name].Digest = d.Digest(name)
	}
}

// indexSource adapts the in-memory index to the digest.Source contract.
// Virtual paths resolve to templates by exact logical-name match; dynamic
// or missing targets simply drop out of the digest.
type indexSource struct {
	app *App
}

func (s *indexSource) TemplateSource(name string) ([]byte, bool) {
	meta, ok := s.app.Index.Templates[name]
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(filepath.Join(s.app.ProjectRoot, meta.Path))
	if err != nil {
		return nil, false
	}
	return b, true
}

func (s *indexSource) Dependencies(name string) []string {
	meta, ok := s.app.Index.Templates[name]
	if !ok {
		return nil
	}
	var resolved []string
	for _, dep := range meta.Dependencies {
		if _, ok := s.app.Index.Templates[dep]; ok {
			resolved = append(resolved, dep)
		}
	}
	return resolved
}

// templateName derives the logical template name from a views-relative path:
// directory components stay, the basename is cut at its first dot.
// "posts/index.html.erb" -> "posts/index".
func templateName(relPath string) string {
	rel := filepath.ToSlash(relPath)
	dir, base := "", rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		dir, base = rel[:i+1], rel[i+1:]
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return dir + base
}
