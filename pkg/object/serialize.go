package object

import (
	"bytes"
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a Commit with the header codec. The commit must
// carry exactly one tree.
func MarshalCommit(c *Commit) ([]byte, error) {
	if c.Header == nil {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedCommit)
	}
	if err := checkCommitTree(c.Header); err != nil {
		return nil, err
	}
	return MarshalHeader(c.Header)
}

// UnmarshalCommit parses a Commit from its serialized form.
func UnmarshalCommit(data []byte) (*Commit, error) {
	h, err := UnmarshalHeader(data)
	if err != nil {
		return nil, err
	}
	if err := checkCommitTree(h); err != nil {
		return nil, err
	}
	return &Commit{Header: h}, nil
}

func checkCommitTree(h *Header) error {
	if n := len(h.values["tree"]); n != 1 {
		return fmt.Errorf("%w: commit has %d tree headers, want 1", ErrMalformedCommit, n)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Tag
// ---------------------------------------------------------------------------

// MarshalTag returns the tag payload unchanged.
func MarshalTag(t *Tag) []byte {
	out := make([]byte, len(t.Data))
	copy(out, t.Data)
	return out
}

// UnmarshalTag keeps the tag payload as-is.
func UnmarshalTag(data []byte) (*Tag, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Tag{Data: out}, nil
}

// ---------------------------------------------------------------------------
// Envelope
// ---------------------------------------------------------------------------

// MarshalPayload serializes obj without the envelope.
func MarshalPayload(obj Object) ([]byte, error) {
	switch o := obj.(type) {
	case *Blob:
		return MarshalBlob(o), nil
	case *Tree:
		return MarshalTree(o)
	case *Commit:
		return MarshalCommit(o)
	case *Tag:
		return MarshalTag(o), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownObjectType, obj)
	}
}

// UnmarshalPayload parses data as the payload of an object of type t.
func UnmarshalPayload(t ObjectType, data []byte) (Object, error) {
	var (
		obj Object
		err error
	)
	switch t {
	case TypeBlob:
		obj, err = UnmarshalBlob(data)
	case TypeTree:
		obj, err = UnmarshalTree(data)
	case TypeCommit:
		obj, err = UnmarshalCommit(data)
	case TypeTag:
		obj, err = UnmarshalTag(data)
	default:
		return nil, unknownType(string(t))
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Encode returns the full encoded form of obj:
//
//	type SP decimal-length NUL payload
func Encode(obj Object) ([]byte, error) {
	payload, err := MarshalPayload(obj)
	if err != nil {
		return nil, err
	}
	return envelope(obj.Type(), payload), nil
}

func envelope(t ObjectType, payload []byte) []byte {
	out := make([]byte, 0, len(t)+len(payload)+12)
	out = append(out, t...)
	out = append(out, ' ')
	out = strconv.AppendInt(out, int64(len(payload)), 10)
	out = append(out, 0)
	return append(out, payload...)
}

// Decode parses the full encoded form produced by Encode.
func Decode(raw []byte) (Object, error) {
	t, payload, err := SplitEnvelope(raw)
	if err != nil {
		return nil, err
	}
	return UnmarshalPayload(t, payload)
}

// SplitEnvelope validates the "type len\0" envelope and returns the type
// name and payload without interpreting the payload.
func SplitEnvelope(raw []byte) (ObjectType, []byte, error) {
	sp := bytes.IndexByte(raw, ' ')
	if sp < 0 {
		return "", nil, fmt.Errorf("%w: missing space in envelope", ErrMalformedObject)
	}
	nul := bytes.IndexByte(raw[sp+1:], 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("%w: missing NUL in envelope", ErrMalformedObject)
	}
	nul += sp + 1

	lenField := string(raw[sp+1 : nul])
	length, err := strconv.ParseUint(lenField, 10, 63)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid length %q", ErrMalformedObject, lenField)
	}
	payload := raw[nul+1:]
	if uint64(len(payload)) != length {
		return "", nil, fmt.Errorf("%w: header=%d, actual=%d", ErrSizeMismatch, length, len(payload))
	}
	return ObjectType(raw[:sp]), payload, nil
}

// Digest returns the hash of obj's encoded form without storing it.
func Digest(obj Object) (Hash, error) {
	raw, err := Encode(obj)
	if err != nil {
		return "", err
	}
	return HashBytes(raw), nil
}

func unknownType(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownObjectType, name)
}
