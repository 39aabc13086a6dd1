package repo

import (
	"fmt"
	"path"

	"github.com/odvcencio/oz/pkg/object"
)

// TreeListing is one row of ListTree output.
type TreeListing struct {
	Mode object.FileMode
	Type object.ObjectType
	Hash object.Hash
	Path string // slash-separated, relative to the listed tree
}

// ListTree lists the entries of the tree h. When recursive is set, subtrees
// are expanded in place and only non-tree rows are returned.
func ListTree(store *object.Store, h object.Hash, recursive bool) ([]TreeListing, error) {
	var out []TreeListing
	if err := listTree(store, h, recursive, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func listTree(store *object.Store, h object.Hash, recursive bool, prefix string, out *[]TreeListing) error {
	tree, err := store.ReadTree(h)
	if err != nil {
		return fmt.Errorf("ls-tree %s: %w", h, err)
	}
	for _, e := range tree.Entries {
		typ, ok := entryType(e.Mode)
		if !ok {
			return fmt.Errorf("ls-tree %s: %w: entry %q has unknown mode %q", h, object.ErrMalformedTree, e.Name, e.Mode)
		}
		p := e.Name
		if prefix != "" {
			p = path.Join(prefix, e.Name)
		}
		if recursive && typ == object.TypeTree {
			if err := listTree(store, e.Hash, recursive, p, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, TreeListing{Mode: e.Mode, Type: typ, Hash: e.Hash, Path: p})
	}
	return nil
}

// ListTree resolves name to a tree and lists it.
func (r *Repo) ListTree(name string, recursive bool) ([]TreeListing, error) {
	h, err := r.Resolve(name, object.TypeTree)
	if err != nil {
		return nil, err
	}
	return ListTree(r.Store, h, recursive)
}
