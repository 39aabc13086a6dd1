package object

import (
	"bytes"
	"fmt"
	"sort"
)

// sortKey is the name an entry sorts under: directory-like entries compare
// as if their name ended in "/".
func (e TreeEntry) sortKey() string {
	if e.Mode.IsRegular() {
		return e.Name
	}
	return e.Name + "/"
}

// treeEntryLess orders entries by sort key, then mode, then hash.
func treeEntryLess(a, b TreeEntry) bool {
	ka, kb := a.sortKey(), b.sortKey()
	if ka != kb {
		return ka < kb
	}
	if a.Mode != b.Mode {
		return a.Mode < b.Mode
	}
	return a.Hash < b.Hash
}

// SortTreeEntries sorts entries in place into canonical order.
func SortTreeEntries(entries []TreeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return treeEntryLess(entries[i], entries[j])
	})
}

// MarshalTree serializes a Tree. Entries are sorted into canonical order
// first, so the same set of entries always encodes to the same bytes. Each
// entry is:
//
//	mode SP name NUL 20-byte-hash
//
// Mode bytes are written exactly as held: "040000" stays six bytes.
func MarshalTree(tr *Tree) ([]byte, error) {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	SortTreeEntries(sorted)

	var buf bytes.Buffer
	for _, e := range sorted {
		mode, err := encodeTreeMode(e.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformedTree, e.Name, err)
		}
		if bytes.IndexByte([]byte(e.Name), 0) >= 0 {
			return nil, fmt.Errorf("%w: entry name %q contains NUL", ErrMalformedTree, e.Name)
		}
		raw, err := e.Hash.Raw()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %w", ErrMalformedTree, e.Name, err)
		}
		buf.WriteString(mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses a Tree from its serialized form. Five-character
// modes (as git writes "40000") are left-padded with '0' to six.
func UnmarshalTree(data []byte) (*Tree, error) {
	tr := &Tree{}
	for pos := 0; pos < len(data); {
		frame := data[pos:]

		sp := bytes.IndexByte(frame, ' ')
		if sp < 0 {
			return nil, fmt.Errorf("%w: entry at offset %d: missing space", ErrMalformedTree, pos)
		}
		nul := bytes.IndexByte(frame[sp+1:], 0)
		if nul < 0 {
			return nil, fmt.Errorf("%w: entry at offset %d: missing NUL", ErrMalformedTree, pos)
		}
		nul += sp + 1

		if len(frame)-(nul+1) < HashSize {
			return nil, fmt.Errorf("%w: entry at offset %d: truncated hash", ErrMalformedTree, pos)
		}

		mode, err := parseTreeMode(frame[:sp])
		if err != nil {
			return nil, fmt.Errorf("%w: entry at offset %d: %v", ErrMalformedTree, pos, err)
		}
		tr.Entries = append(tr.Entries, TreeEntry{
			Mode: mode,
			Name: string(frame[sp+1 : nul]),
			Hash: hashFromRaw(frame[nul+1 : nul+1+HashSize]),
		})
		pos += nul + 1 + HashSize
	}
	return tr, nil
}

func encodeTreeMode(m FileMode) (string, error) {
	if len(m) < 5 || len(m) > 6 || !isOctal(string(m)) {
		return "", fmt.Errorf("invalid mode %q", string(m))
	}
	return string(m), nil
}

func isOctal(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return true
}

func parseTreeMode(m []byte) (FileMode, error) {
	if !isOctal(string(m)) {
		return "", fmt.Errorf("invalid mode %q", m)
	}
	switch len(m) {
	case 5:
		return FileMode("0" + string(m)), nil
	case 6:
		return FileMode(m), nil
	default:
		return "", fmt.Errorf("mode %q has length %d", m, len(m))
	}
}
