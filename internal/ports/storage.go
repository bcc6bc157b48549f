package ports

// Storage persists the extracted dependency index to durable storage.
// The backing store (bbolt) is project-scoped: each projectID gets its own
// namespace. Concurrent reads are safe; writes are serialized by the adapter.
//
// Crash safety: SaveIndex must be transactional. A crash mid-write must not
// corrupt previously committed data.
type Storage interface {
	// SaveIndex persists the full dependency index for a project.
	// Overwrites any prior index for this projectID.
	SaveIndex(projectID string, index *DepIndex) error

	// LoadIndex retrieves the dependency index for a project.
	// Returns nil, nil if no index exists (fresh project).
	LoadIndex(projectID string) (*DepIndex, error)

	// DeleteProject removes all stored data for a project.
	// Idempotent: deleting a nonexistent project is not an error.
	DeleteProject(projectID string) error
}

// DepIndex is the extracted dependency graph for one project's views.
type DepIndex struct {
	Templates map[string]*TemplateMeta // logical name -> template info
}

// TemplateMeta describes one discovered view template.
type TemplateMeta struct {
	Path         string   // path relative to the project root
	LastModified int64    // unix mtime at extraction, for incremental scans
	Dependencies []string // virtual paths in source order, duplicates kept
	Digest       string   // recursive content digest, hex
}

// NewDepIndex returns an empty, ready-to-fill index.
func NewDepIndex() *DepIndex {
	return &DepIndex{Templates: make(map[string]*TemplateMeta)}
}
