package object

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Backend persists compressed object bytes by hash. Implementations never
// overwrite: PutIfAbsent reports false when the hash is already present.
type Backend interface {
	Get(h Hash) ([]byte, error)
	PutIfAbsent(h Hash, data []byte) (bool, error)
	Has(h Hash) bool
}

// PrefixLister is implemented by backends that can enumerate the hashes
// starting with a hex prefix.
type PrefixLister interface {
	HashesWithPrefix(prefix string) ([]Hash, error)
}

// DirBackend stores objects in a 2-character fan-out directory layout:
// objects/ab/cdef0123...
type DirBackend struct {
	dir string
}

// NewDirBackend returns a backend rooted at dir (the objects/ directory).
// Shard directories are created lazily on first write.
func NewDirBackend(dir string) *DirBackend {
	return &DirBackend{dir: dir}
}

// Dir returns the objects directory.
func (b *DirBackend) Dir() string {
	return b.dir
}

func (b *DirBackend) objectPath(h Hash) string {
	return filepath.Join(b.dir, string(h[:2]), string(h[2:]))
}

// Has reports whether an object file exists for h.
func (b *DirBackend) Has(h Hash) bool {
	if !h.IsValid() {
		return false
	}
	_, err := os.Stat(b.objectPath(h))
	return err == nil
}

// Get reads the stored bytes for h.
func (b *DirBackend) Get(h Hash) ([]byte, error) {
	if !h.IsValid() {
		return nil, fmt.Errorf("object read %q: %w", string(h), ErrInvalidHash)
	}
	data, err := os.ReadFile(b.objectPath(h))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return data, nil
}

// PutIfAbsent writes data for h unless a file already exists. The data is
// written to a temp file and hard-linked into place; losing the link race
// to another writer of the same hash counts as success.
func (b *DirBackend) PutIfAbsent(h Hash, data []byte) (bool, error) {
	if !h.IsValid() {
		return false, fmt.Errorf("object write %q: %w", string(h), ErrInvalidHash)
	}
	// Fast path: already exists.
	if b.Has(h) {
		return false, nil
	}

	dir := filepath.Join(b.dir, string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return false, fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("object write close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o444); err != nil {
		return false, fmt.Errorf("object write chmod: %w", err)
	}

	if err := os.Link(tmpName, b.objectPath(h)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("object write link: %w", err)
	}
	return true, nil
}

// HashesWithPrefix lists stored hashes beginning with prefix. The prefix
// must be at least two characters so that only one shard is scanned.
func (b *DirBackend) HashesWithPrefix(prefix string) ([]Hash, error) {
	if len(prefix) < 2 || !IsHexPrefix(prefix) {
		return nil, fmt.Errorf("%w: prefix %q", ErrInvalidHash, prefix)
	}
	entries, err := os.ReadDir(filepath.Join(b.dir, prefix[:2]))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list objects %s: %w", prefix[:2], err)
	}
	var out []Hash
	for _, e := range entries {
		h := Hash(prefix[:2] + e.Name())
		if e.IsDir() || !h.IsValid() {
			continue
		}
		if strings.HasPrefix(string(h), prefix) {
			out = append(out, h)
		}
	}
	return out, nil
}

// MemoryBackend keeps objects in memory. It is safe for concurrent use.
type MemoryBackend struct {
	mu      sync.RWMutex
	objects map[Hash][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{objects: make(map[Hash][]byte)}
}

func (b *MemoryBackend) Has(h Hash) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.objects[h]
	return ok
}

func (b *MemoryBackend) Get(h Hash) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.objects[h]
	if !ok {
		return nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) PutIfAbsent(h Hash, data []byte) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objects[h]; ok {
		return false, nil
	}
	b.objects[h] = append([]byte(nil), data...)
	return true, nil
}

func (b *MemoryBackend) HashesWithPrefix(prefix string) ([]Hash, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Hash
	for h := range b.objects {
		if strings.HasPrefix(string(h), prefix) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Len returns the number of stored objects.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
