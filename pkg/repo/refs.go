package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/oz/pkg/object"
)

// Ref is a named pointer under .oz/refs.
type Ref struct {
	Name string // full name, e.g. "refs/heads/master"
	Hash object.Hash
}

// ListRefs lists references under .oz/refs/<prefix>, sorted by name.
// Symbolic refs are followed to the hash they point at.
func (r *Repo) ListRefs(prefix string) ([]Ref, error) {
	root := filepath.Join(r.OzDir, "refs")
	dir := root
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		dir = filepath.Join(root, filepath.FromSlash(prefix))
	}

	var refs []Ref
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".ref-tmp-") {
			return nil
		}

		rel, err := filepath.Rel(r.OzDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		h, err := r.readRef(name, 0)
		if err != nil {
			return err
		}
		refs = append(refs, Ref{Name: name, Hash: h})
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// DeleteRef removes a ref file.
func (r *Repo) DeleteRef(name string) error {
	if err := os.Remove(filepath.Join(r.OzDir, filepath.FromSlash(name))); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete ref %q: %w", name, ErrUnresolved)
		}
		return fmt.Errorf("delete ref %q: %w", name, err)
	}
	return nil
}
