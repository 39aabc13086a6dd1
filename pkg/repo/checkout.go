package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/oz/pkg/object"
)

// Checkout materializes the tree named by target into dest. The target may
// name a tree, a commit (its tree is used) or a tag leading to either.
//
// dest must be absent or an empty directory. Checkout is not transactional:
// on failure, whatever was already written stays in place.
func (r *Repo) Checkout(target, dest string) error {
	h, err := r.Resolve(target, object.TypeTree)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	tree, err := r.Store.ReadTree(h)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	if err := PrepareDestination(dest); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return Materialize(r.Store, tree, dest)
}

// PrepareDestination checks that dest is an empty directory, creating it
// (and any parents) if it does not exist.
func PrepareDestination(dest string) error {
	info, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: stat %s: %w", ErrIO, dest, err)
		}
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %w", ErrIO, dest, err)
		}
		return nil
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dest)
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrIO, dest, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrNotEmpty, dest)
	}
	return nil
}

// Materialize writes tree into dir, which must already exist. Blobs become
// files and subtrees become directories, recursively. Any other object
// kind under a tree is ErrMalformedTree.
func Materialize(store object.Reader, tree *object.Tree, dir string) error {
	for _, e := range tree.Entries {
		if err := checkEntryName(e.Name); err != nil {
			return err
		}
		path := filepath.Join(dir, e.Name)

		obj, err := store.Read(e.Hash)
		if err != nil {
			return fmt.Errorf("checkout %s: %w", path, err)
		}
		switch o := obj.(type) {
		case *object.Blob:
			if err := os.WriteFile(path, o.Data, filePermFromMode(e.Mode)); err != nil {
				return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
			}
		case *object.Tree:
			if err := os.Mkdir(path, 0o755); err != nil {
				if errors.Is(err, fs.ErrExist) {
					return fmt.Errorf("%w: %s", ErrDirectoryExists, path)
				}
				return fmt.Errorf("%w: mkdir %s: %w", ErrIO, path, err)
			}
			if err := Materialize(store, o, path); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: entry %s is a %s", object.ErrMalformedTree, path, obj.Type())
		}
	}
	return nil
}

// checkEntryName rejects names that would escape or alias the directory
// being populated.
func checkEntryName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: unsafe entry name %q", object.ErrMalformedTree, name)
	}
	return nil
}
