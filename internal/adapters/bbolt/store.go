// Package bbolt implements the ports.Storage interface using bbolt (embedded
// B+ tree). Each project gets its own top-level bucket holding the JSON-
// serialized dependency index. Writes are transactional — a crash mid-write
// cannot corrupt previously committed data.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Matt-Yorkley/viewdeps/internal/ports"
)

// Bucket keys
var (
	bucketDeps   = []byte("deps")
	keyTemplates = []byte("templates")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveIndex persists the full dependency index for a project.
func (s *Store) SaveIndex(projectID string, idx *ports.DepIndex) error {
	if idx == nil {
		return fmt.Errorf("nil index")
	}

	data, err := json.Marshal(idx.Templates)
	if err != nil {
		return fmt.Errorf("marshal templates: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		proj, err := tx.CreateBucketIfNotExists([]byte(projectID))
		if err != nil {
			return err
		}
		b, err := proj.CreateBucketIfNotExists(bucketDeps)
		if err != nil {
			return err
		}
		return b.Put(keyTemplates, data)
	})
}

// LoadIndex retrieves the dependency index for a project.
// Returns nil, nil if no index exists (fresh project).
func (s *Store) LoadIndex(projectID string) (*ports.DepIndex, error) {
	var data []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		proj := tx.Bucket([]byte(projectID))
		if proj == nil {
			return nil
		}
		b := proj.Bucket(bucketDeps)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get(keyTemplates); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	idx := ports.NewDepIndex()
	if err := json.Unmarshal(data, &idx.Templates); err != nil {
		return nil, fmt.Errorf("unmarshal templates: %w", err)
	}
	return idx, nil
}

// DeleteProject removes all stored data for a project.
// Idempotent: deleting a nonexistent project is not an error.
func (s *Store) DeleteProject(projectID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(projectID)); err == bolt.ErrBucketNotFound {
			return nil // idempotent
		} else {
			return err
		}
	})
}
