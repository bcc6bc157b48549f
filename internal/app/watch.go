package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Matt-Yorkley/viewdeps/internal/ports"
)

// WatchViews starts watching the views root. After every relevant change the
// affected template is re-extracted, digests are recomputed, and the names
// of all templates whose recursive digest changed are reported in sorted
// order. Blocks until Stop; run it from a goroutine when needed.
func (a *App) WatchViews(onDigestChange func(names []string)) error {
	return a.Watcher.Watch(a.viewsPath(), func(path string) {
		if changed := a.onViewChanged(path); len(changed) > 0 {
			onDigestChange(changed)
		}
	})
}

// onViewChanged handles one file event: update or remove that template's
// entry, refresh digests, persist, and return the templates whose digest
// changed.
func (a *App) onViewChanged(absPath string) []string {
	ext := strings.ToLower(filepath.Ext(absPath))
	if !a.Parser.SupportsExtension(ext) {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	relToViews, err := filepath.Rel(a.viewsPath(), absPath)
	if err != nil || strings.HasPrefix(relToViews, "..") {
		return nil
	}
	name := templateName(relToViews)

	before := make(map[string]string, len(a.Index.Templates))
	for n, meta := range a.Index.Templates {
		before[n] = meta.Digest
	}

	info, statErr := os.Stat(absPath)
	if statErr != nil {
		// File removed
		delete(a.Index.Templates, name)
	} else {
		source, err := os.ReadFile(absPath)
		if err != nil {
			return nil
		}
		deps, err := a.Parser.ExtractDependencies(name, source)
		if err != nil {
			deps = nil
		}
		meta := a.Index.Templates[name]
		if meta == nil {
			meta = &ports.TemplateMeta{}
			a.Index.Templates[name] = meta
		}
		meta.Path = filepath.ToSlash(filepath.Join(a.ViewsRoot, relToViews))
		meta.LastModified = info.ModTime().Unix()
		meta.Dependencies = deps
	}

	a.refreshDigests()
	_ = a.Store.SaveIndex(a.ProjectID, a.Index)

	var changed []string
	for n, meta := range a.Index.Templates {
		if before[n] != meta.Digest {
			changed = append(changed, n)
		}
	}
	for n := range before {
		if _, ok := a.Index.Templates[n]; !ok {
			changed = append(changed, n)
		}
	}
	sort.Strings(changed)
	return changed
}
