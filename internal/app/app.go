// Package app wires together all adapters and domain logic: template
// discovery under a views root, dependency extraction, recursive digesting,
// persistence, and the watch loop.
package app

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Matt-Yorkley/viewdeps/internal/adapters/bbolt"
	fsw "github.com/Matt-Yorkley/viewdeps/internal/adapters/fsnotify"
	"github.com/Matt-Yorkley/viewdeps/internal/adapters/treesitter"
	"github.com/Matt-Yorkley/viewdeps/internal/ports"
)

// App holds the wired dependencies for one project.
type App struct {
	ProjectRoot string
	ProjectID   string
	ViewsRoot   string // relative to ProjectRoot

	Parser  ports.Parser
	Store   ports.Storage
	Watcher ports.Watcher
	Index   *ports.DepIndex

	mu sync.Mutex
}

// Config holds initialization parameters for the App.
type Config struct {
	ProjectRoot string
	ProjectID   string       // default: base name of ProjectRoot
	ViewsRoot   string       // default: app/views
	DBPath      string       // path to bbolt file (default: .viewdeps/index.db)
	Parser      ports.Parser // default: tree-sitter ERB/Ruby parser
	Store       ports.Storage
	Watcher     ports.Watcher
}

// New creates an App with all dependencies wired and any stored index
// loaded. Does not scan and does not start watching.
func New(cfg Config) (*App, error) {
	if cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("project root required")
	}
	if cfg.ProjectID == "" {
		cfg.ProjectID = filepath.Base(cfg.ProjectRoot)
	}
	if cfg.ViewsRoot == "" {
		cfg.ViewsRoot = filepath.Join("app", "views")
	}
	if cfg.Parser == nil {
		cfg.Parser = treesitter.NewParser()
	}

	if cfg.Store == nil {
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(cfg.ProjectRoot, ".viewdeps", "index.db")
		}
		store, err := bbolt.NewStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		cfg.Store = store
	}

	if cfg.Watcher == nil {
		watcher, err := fsw.NewWatcher()
		if err != nil {
			closeStore(cfg.Store)
			return nil, fmt.Errorf("create watcher: %w", err)
		}
		cfg.Watcher = watcher
	}

	idx, err := cfg.Store.LoadIndex(cfg.ProjectID)
	if err != nil {
		closeStore(cfg.Store)
		_ = cfg.Watcher.Stop()
		return nil, fmt.Errorf("load index: %w", err)
	}
	if idx == nil {
		idx = ports.NewDepIndex()
	}

	return &App{
		ProjectRoot: cfg.ProjectRoot,
		ProjectID:   cfg.ProjectID,
		ViewsRoot:   cfg.ViewsRoot,
		Parser:      cfg.Parser,
		Store:       cfg.Store,
		Watcher:     cfg.Watcher,
		Index:       idx,
	}, nil
}

// Close releases the watcher and the store.
func (a *App) Close() error {
	_ = a.Watcher.Stop()
	if c, ok := a.Store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Wipe deletes all stored data for this project.
func (a *App) Wipe() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Index = ports.NewDepIndex()
	return a.Store.DeleteProject(a.ProjectID)
}

// viewsPath returns the absolute views directory.
func (a *App) viewsPath() string {
	return filepath.Join(a.ProjectRoot, a.ViewsRoot)
}

func closeStore(s ports.Storage) {
	if c, ok := s.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}
