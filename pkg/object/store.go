package object

import (
	"fmt"
	"path/filepath"
)

// Reader reads objects by hash. The checkout and history walkers depend
// only on this.
type Reader interface {
	Read(h Hash) (Object, error)
}

// Store is a content-addressed object store. Objects are kept as
// zlib-compressed "type len\0payload" bytes keyed by the SHA-1 of those
// uncompressed bytes.
//
// A nil *Store is valid for Write and computes hashes without persisting
// anything.
type Store struct {
	backend Backend
}

// NewStore creates a Store rooted at the given repository directory. Objects
// live under its objects/ subdirectory, created lazily on first write.
func NewStore(root string) *Store {
	return NewStoreWithBackend(NewDirBackend(filepath.Join(root, "objects")))
}

// NewMemoryStore returns a Store backed by memory.
func NewMemoryStore() *Store {
	return NewStoreWithBackend(NewMemoryBackend())
}

// NewStoreWithBackend wraps an arbitrary backend.
func NewStoreWithBackend(b Backend) *Store {
	return &Store{backend: b}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if s == nil {
		return false
	}
	return s.backend.Has(h)
}

// Put encodes obj, hashes the encoded bytes and stores them compressed if
// no object with that hash exists yet. The hash is returned either way;
// created reports whether new bytes were written.
func (s *Store) Put(obj Object) (h Hash, created bool, err error) {
	raw, err := Encode(obj)
	if err != nil {
		return "", false, fmt.Errorf("object write: %w", err)
	}
	return s.putEncoded(raw)
}

// Write is Put without the created flag.
func (s *Store) Write(obj Object) (Hash, error) {
	h, _, err := s.Put(obj)
	return h, err
}

// WriteRaw parses data as a payload of type t and stores the result. This
// is the entry point for hashing files of a declared type.
func (s *Store) WriteRaw(t ObjectType, data []byte) (Hash, bool, error) {
	obj, err := UnmarshalPayload(t, data)
	if err != nil {
		return "", false, err
	}
	return s.Put(obj)
}

func (s *Store) putEncoded(raw []byte) (Hash, bool, error) {
	h := HashBytes(raw)
	if s == nil {
		return h, false, nil
	}
	if s.backend.Has(h) {
		return h, false, nil
	}

	compressed, err := Compress(raw)
	if err != nil {
		return "", false, fmt.Errorf("object write %s: %w", h, err)
	}
	created, err := s.backend.PutIfAbsent(h, compressed)
	if err != nil {
		return "", false, err
	}
	return h, created, nil
}

// ReadRaw returns the decompressed encoded bytes of h.
func (s *Store) ReadRaw(h Hash) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
	}
	data, err := s.backend.Get(h)
	if err != nil {
		return nil, err
	}
	raw, err := Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return raw, nil
}

// Read retrieves and decodes an object by hash.
func (s *Store) Read(h Hash) (Object, error) {
	raw, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	obj, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return obj, nil
}

// ReadType returns only the type of the object stored under h.
func (s *Store) ReadType(h Hash) (ObjectType, error) {
	raw, err := s.ReadRaw(h)
	if err != nil {
		return "", err
	}
	t, _, err := SplitEnvelope(raw)
	if err != nil {
		return "", fmt.Errorf("object read %s: %w", h, err)
	}
	return t, nil
}

// HashesWithPrefix lists stored hashes starting with prefix when the
// backend supports enumeration.
func (s *Store) HashesWithPrefix(prefix string) ([]Hash, error) {
	if s == nil {
		return nil, nil
	}
	pl, ok := s.backend.(PrefixLister)
	if !ok {
		return nil, fmt.Errorf("object store backend %T cannot list hashes", s.backend)
	}
	return pl.HashesWithPrefix(prefix)
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// ReadBlob reads and type-checks a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	obj, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*Blob)
	if !ok {
		return nil, typeMismatch(h, obj, TypeBlob)
	}
	return b, nil
}

// ReadTree reads and type-checks a Tree.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	obj, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	tr, ok := obj.(*Tree)
	if !ok {
		return nil, typeMismatch(h, obj, TypeTree)
	}
	return tr, nil
}

// ReadCommit reads and type-checks a Commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	obj, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*Commit)
	if !ok {
		return nil, typeMismatch(h, obj, TypeCommit)
	}
	return c, nil
}

func typeMismatch(h Hash, obj Object, want ObjectType) error {
	return fmt.Errorf("object %s: %w: got %q, want %q", h, ErrTypeMismatch, obj.Type(), want)
}
