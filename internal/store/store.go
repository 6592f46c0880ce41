// Package store implements the filesystem-backed namespace store: a keyed
// text registry holding the verbatim source of exported items, one file per
// artifact, path = root + sanitized segments. Writes are atomic so sibling
// units exporting concurrently never expose a partially written artifact.
// Implements: prd002-namespace-store R1-R5;
//
//	docs/ARCHITECTURE § Namespace Store.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/satchel/internal/sanitize"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Entry is one artifact recovered from a namespace listing.
type Entry struct {
	Name string      // Logical name, recovered by unsanitizing the file name.
	Item *types.Item // Reparsed item.
}

// Store is a namespace store rooted at a single directory. The zero value is
// not usable; construct with New.
type Store struct {
	root string
	log  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger. The default is a nop logger; the store never
// prints on its own.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New creates a Store over the given root directory. The directory is
// created lazily on first write, not here.
func New(root string, opts ...Option) *Store {
	s := &Store{root: root, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// filePath maps a namespace path to its on-disk location, sanitizing each
// segment independently so the directory layout follows the namespace.
func (s *Store) filePath(path types.NamespacePath) string {
	parts := make([]string, 0, len(path)+1)
	parts = append(parts, s.root)
	for _, seg := range path {
		parts = append(parts, sanitize.Sanitize(seg))
	}
	return filepath.Join(parts...)
}

// Write persists text at the given namespace path. Parent directories are
// created as needed. The write is atomic: text goes to a temp file in the
// target directory, is fsynced, and is renamed into place, so a concurrent
// reader sees either the old artifact or the new one, never a torn file.
// Without overwrite, an existing target is an ErrStoreConflict.
// Implements: prd002-namespace-store R2 (atomic write), R2.3 (no implicit
// overwrite).
func (s *Store) Write(path types.NamespacePath, text string, overwrite bool) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty namespace path", types.ErrParseFailed)
	}
	target := s.filePath(path)
	dir := filepath.Dir(target)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrDirCreate, dir, err)
	}

	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("%w: %s already exists at %s", types.ErrStoreConflict, path, target)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", target, err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	s.log.Debug("artifact written",
		zap.String("path", path.String()),
		zap.String("file", target),
		zap.Int("bytes", len(text)))
	return nil
}

// ReadOne reads the artifact at the given namespace path and reparses it.
// A missing artifact is an ErrNotFound whose message points the caller at
// the path and at the usual cause: the producing unit was not built, or
// exported into a different namespace.
// Implements: prd002-namespace-store R3.
func (s *Store) ReadOne(path types.NamespacePath) (*types.Item, error) {
	target := s.filePath(path)
	data, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(
				"%w: no artifact at %s; check the path and that the exporting unit was built into this store",
				types.ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}

	item, err := types.ParseItem(string(data))
	if err != nil {
		// Only parsed text is ever written, so this indicates an external
		// edit or a version skew between producer and consumer.
		return nil, fmt.Errorf("artifact at %s: %w", path, err)
	}
	return item, nil
}

// ReadNamespace lists all artifacts directly under the given namespace path,
// sorted lexicographically by recovered logical name. Directories are
// skipped, not recursed into. A missing or empty namespace yields an empty
// slice, not an error.
// Implements: prd002-namespace-store R4.
func (s *Store) ReadNamespace(path types.NamespacePath) ([]Entry, error) {
	dir := s.filePath(path)
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing namespace %s: %w", path, err)
	}

	var entries []Entry
	for _, de := range dirents {
		// Skip subdirectories and in-flight temp files.
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		name := sanitize.Unsanitize(de.Name())
		item, err := s.ReadOne(path.Child(name))
		if err != nil {
			return nil, fmt.Errorf("entry %q in namespace %s: %w", name, path, err)
		}
		entries = append(entries, Entry{Name: name, Item: item})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Remove deletes the artifact at the given namespace path. Missing targets
// are an ErrNotFound.
func (s *Store) Remove(path types.NamespacePath) error {
	target := s.filePath(path)
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: no artifact at %s", types.ErrNotFound, path)
		}
		return fmt.Errorf("removing %s: %w", target, err)
	}
	s.log.Debug("artifact removed", zap.String("path", path.String()))
	return nil
}
