package repo

import (
	"fmt"

	"github.com/odvcencio/oz/pkg/object"
)

// StoreObject parses data as a payload of type t and writes it to the
// repository's object store.
func (r *Repo) StoreObject(t object.ObjectType, data []byte) (object.Hash, bool, error) {
	h, created, err := r.Store.WriteRaw(t, data)
	if err != nil {
		return "", false, fmt.Errorf("store %s: %w", t, err)
	}
	return h, created, nil
}

// LoadObject resolves name (peeled to want, if set) and reads the object.
func (r *Repo) LoadObject(name string, want object.ObjectType) (object.Hash, object.Object, error) {
	h, err := r.Resolve(name, want)
	if err != nil {
		return "", nil, err
	}
	obj, err := r.Store.Read(h)
	if err != nil {
		return "", nil, err
	}
	return h, obj, nil
}

// LoadPayload resolves name like LoadObject but returns the payload bytes
// exactly as stored, without decoding and re-encoding them.
func (r *Repo) LoadPayload(name string, want object.ObjectType) (object.Hash, []byte, error) {
	h, err := r.Resolve(name, want)
	if err != nil {
		return "", nil, err
	}
	raw, err := r.Store.ReadRaw(h)
	if err != nil {
		return "", nil, err
	}
	t, payload, err := object.SplitEnvelope(raw)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}
	if want != "" && t != want {
		return "", nil, fmt.Errorf("object %s: %w: got %q, want %q", h, object.ErrTypeMismatch, t, want)
	}
	return h, payload, nil
}
