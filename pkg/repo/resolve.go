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

// minShortHash is the shortest hash prefix Resolve accepts.
const minShortHash = 4

// maxRefDepth bounds chains of symbolic refs.
const maxRefDepth = 5

// Resolve maps a user-supplied name to a full object hash.
//
// Resolution order:
//  1. "HEAD", following a symbolic HEAD to its ref.
//  2. Refs: the name itself if it starts with "refs/", otherwise
//     refs/tags/<name> and refs/heads/<name>.
//  3. A full hash, or a hash prefix of at least four characters.
//
// Refs shadow hashes. A tag and a branch of the same name pointing at
// different objects, or a prefix matching several hashes, is ambiguous. When
// want is non-empty the result is peeled until it has that type: tags are
// followed through their "object" header, and a commit yields its tree
// when a tree is wanted.
func (r *Repo) Resolve(name string, want object.ObjectType) (object.Hash, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("resolve: %w: empty name", ErrUnresolved)
	}

	candidates, err := r.resolveCandidates(name)
	if err != nil {
		return "", err
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("resolve %q: %w", name, ErrUnresolved)
	case 1:
	default:
		return "", fmt.Errorf("resolve %q: %w: %d candidates", name, ErrAmbiguous, len(candidates))
	}

	h := candidates[0]
	if want == "" {
		return h, nil
	}
	return r.peel(name, h, want)
}

// ResolveRef resolves "HEAD" or a ref name to the hash it stores.
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	if name == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(head, "refs/") {
			return r.readRef(head, 0)
		}
		return object.Hash(head), nil
	}
	if !strings.HasPrefix(name, "refs/") {
		name = "refs/heads/" + name
	}
	return r.readRef(name, 0)
}

func (r *Repo) resolveCandidates(name string) ([]object.Hash, error) {
	seen := make(map[object.Hash]struct{})
	var out []object.Hash
	add := func(h object.Hash) {
		if _, ok := seen[h]; ok {
			return
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}

	if name == "HEAD" {
		h, err := r.ResolveRef("HEAD")
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("resolve HEAD: %w: no commits yet", ErrUnresolved)
			}
			return nil, fmt.Errorf("resolve HEAD: %w", err)
		}
		return []object.Hash{h}, nil
	}

	var refNames []string
	switch {
	case strings.Contains(name, ".."):
	case strings.HasPrefix(name, "refs/"):
		refNames = []string{name}
	default:
		refNames = []string{"refs/tags/" + name, "refs/heads/" + name}
	}
	for _, ref := range refNames {
		h, err := r.readRef(ref, 0)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("resolve %q: %w", name, err)
		}
		add(h)
	}
	if len(out) > 0 {
		return out, nil
	}

	lower := strings.ToLower(name)
	switch {
	case object.Hash(lower).IsValid():
		add(object.Hash(lower))
	case len(lower) >= minShortHash && object.IsHexPrefix(lower):
		matches, err := r.Store.HashesWithPrefix(lower)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", name, err)
		}
		for _, h := range matches {
			add(h)
		}
	}
	return out, nil
}

func (r *Repo) readRef(name string, depth int) (object.Hash, error) {
	if depth > maxRefDepth {
		return "", fmt.Errorf("read ref %q: symbolic ref chain too deep", name)
	}
	data, err := os.ReadFile(filepath.Join(r.OzDir, filepath.FromSlash(name)))
	if err != nil {
		return "", fmt.Errorf("read ref %q: %w", name, err)
	}
	content := strings.TrimSpace(string(data))
	if target, ok := strings.CutPrefix(content, "ref: "); ok {
		return r.readRef(target, depth+1)
	}
	h, err := object.ParseHash(content)
	if err != nil {
		return "", fmt.Errorf("read ref %q: %w", name, err)
	}
	return h, nil
}

func (r *Repo) peel(name string, h object.Hash, want object.ObjectType) (object.Hash, error) {
	for depth := 0; depth <= maxRefDepth; depth++ {
		obj, err := r.Store.Read(h)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", name, err)
		}
		if obj.Type() == want {
			return h, nil
		}
		switch o := obj.(type) {
		case *object.Tag:
			target, ok := o.Target()
			if !ok {
				return "", fmt.Errorf("resolve %q: %w: tag %s has no object header", name, ErrUnresolved, h)
			}
			h = target
		case *object.Commit:
			if want != object.TypeTree {
				return "", fmt.Errorf("resolve %q: %w: %s is a commit, want %s", name, ErrUnresolved, h, want)
			}
			h = o.TreeHash()
		default:
			return "", fmt.Errorf("resolve %q: %w: %s is a %s, want %s", name, ErrUnresolved, h, obj.Type(), want)
		}
	}
	return "", fmt.Errorf("resolve %q: %w: tag chain too deep", name, ErrUnresolved)
}
