package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/dshills/inkwell/internal/snapshot"
)

const (
	documentsDir = "documents"
	fileExt      = ".json"
)

// DiskvStore keeps named documents under a base directory using diskv.
// Each document is stored as documents/<name>.json.
type DiskvStore struct {
	d    *diskv.Diskv
	name string
}

// NewDiskvStore creates a store rooted at basePath for the named document.
func NewDiskvStore(basePath, name string) *DiskvStore {
	if name == "" {
		name = DefaultDocument
	}
	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		name: name,
	}
}

// Name returns the document name this store reads and writes.
func (s *DiskvStore) Name() string { return s.name }

// WithName returns a store for another document in the same tree.
func (s *DiskvStore) WithName(name string) *DiskvStore {
	if name == "" {
		name = DefaultDocument
	}
	return &DiskvStore{d: s.d, name: name}
}

// Save writes the snapshot for the current document.
func (s *DiskvStore) Save(ctx context.Context, snap snapshot.Snapshot) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	data, err := snapshot.Encode(snap)
	if err != nil {
		return err
	}
	if err := s.d.Write(s.name, data); err != nil {
		return fmt.Errorf("store: write %s: %w", s.name, err)
	}
	return nil
}

// Load reads the snapshot for the current document.
func (s *DiskvStore) Load(ctx context.Context) (snapshot.Snapshot, error) {
	if err := checkContext(ctx); err != nil {
		return snapshot.Snapshot{}, err
	}
	data, err := s.d.Read(s.name)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("store: read %s: %w", s.name, err)
	}
	return snapshot.Decode(data)
}

// Delete removes the current document. Deleting a missing document is not
// an error.
func (s *DiskvStore) Delete() error {
	if !s.d.Has(s.name) {
		return nil
	}
	return s.d.Erase(s.name)
}

// List returns the names of all stored documents in sorted order.
func (s *DiskvStore) List(ctx context.Context) []string {
	var names []string
	for key := range s.d.Keys(ctx.Done()) {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{documentsDir},
		FileName: key + fileExt,
	}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.TrimSuffix(pk.FileName, fileExt)
}
