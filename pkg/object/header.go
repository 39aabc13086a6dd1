package object

import (
	"bytes"
	"fmt"
	"strings"
)

// Header is the key/value block shared by commits and tags. Keys keep the
// order of their first appearance and may carry several values, e.g. one
// "parent" per merged commit. Message is the body after the blank line.
type Header struct {
	keys    []string
	values  map[string][]string
	Message string
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{values: make(map[string][]string)}
}

// Add appends value to key's list.
func (h *Header) Add(key, value string) {
	if h.values == nil {
		h.values = make(map[string][]string)
	}
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = append(h.values[key], value)
}

// Set replaces every value of key. The key keeps its original position.
func (h *Header) Set(key string, values ...string) {
	if len(values) == 0 {
		h.Del(key)
		return
	}
	if h.values == nil {
		h.values = make(map[string][]string)
	}
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = append([]string(nil), values...)
}

// Del removes key and all of its values.
func (h *Header) Del(key string) {
	if _, ok := h.values[key]; !ok {
		return
	}
	delete(h.values, key)
	for i, k := range h.keys {
		if k == key {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the header keys in first-appearance order. The read
// methods treat a nil Header as empty.
func (h *Header) Keys() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.keys...)
}

// Values returns the values recorded for key, in order.
func (h *Header) Values(key string) []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.values[key]...)
}

// First returns the first value recorded for key.
func (h *Header) First(key string) (string, bool) {
	if h == nil {
		return "", false
	}
	vals := h.values[key]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func validHeaderKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, " \n")
}

// MarshalHeader serializes h:
//
//	key value
//	key first line
//	 continuation line
//
//	message
//
// Every value of a key is written before the next key. Embedded newlines in
// values are folded as "\n ".
func MarshalHeader(h *Header) ([]byte, error) {
	var buf bytes.Buffer
	for _, key := range h.keys {
		if !validHeaderKey(key) {
			return nil, fmt.Errorf("%w: invalid header key %q", ErrMalformedCommit, key)
		}
		for _, val := range h.values[key] {
			buf.WriteString(key)
			buf.WriteByte(' ')
			buf.WriteString(strings.ReplaceAll(val, "\n", "\n "))
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
	buf.WriteString(h.Message)
	return buf.Bytes(), nil
}

// UnmarshalHeader parses the key/value format written by MarshalHeader.
func UnmarshalHeader(data []byte) (*Header, error) {
	h := NewHeader()

	// A header with no keys is just the blank separator line.
	if len(data) > 0 && data[0] == '\n' {
		h.Message = string(data[1:])
		return h, nil
	}

	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("%w: missing header/message separator", ErrMalformedCommit)
	}
	h.Message = string(data[idx+2:])

	lastKey := ""
	for _, line := range strings.Split(string(data[:idx]), "\n") {
		if strings.HasPrefix(line, " ") {
			if lastKey == "" {
				return nil, fmt.Errorf("%w: continuation line without a key", ErrMalformedCommit)
			}
			vals := h.values[lastKey]
			vals[len(vals)-1] += "\n" + line[1:]
			continue
		}
		key, val, ok := strings.Cut(line, " ")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: malformed header line %q", ErrMalformedCommit, line)
		}
		h.Add(key, val)
		lastKey = key
	}
	return h, nil
}
