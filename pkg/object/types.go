package object

import "strings"

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
	TypeTag    ObjectType = "tag"
)

// ParseObjectType maps a type name to an ObjectType.
func ParseObjectType(name string) (ObjectType, error) {
	switch t := ObjectType(name); t {
	case TypeBlob, TypeTree, TypeCommit, TypeTag:
		return t, nil
	default:
		return "", unknownType(name)
	}
}

// FileMode is the six-character ASCII mode of a tree entry.
type FileMode string

const (
	ModeFile       FileMode = "100644"
	ModeExecutable FileMode = "100755"
	ModeSymlink    FileMode = "120000"
	ModeDir        FileMode = "040000"
	ModeSubmodule  FileMode = "160000"
)

// IsRegular reports whether m names a regular file ("10" prefix). Every
// other mode is treated as directory-like when ordering tree entries.
func (m FileMode) IsRegular() bool {
	return strings.HasPrefix(string(m), "10")
}

// Object is one of *Blob, *Tree, *Commit or *Tag. The set is closed: the
// unexported marker keeps other packages from adding variants.
type Object interface {
	Type() ObjectType
	object()
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object.
type TreeEntry struct {
	Mode FileMode
	Name string
	Hash Hash
}

// Tree holds tree entries. Encoding sorts a copy into canonical order;
// decoding preserves the stored order.
type Tree struct {
	Entries []TreeEntry
}

// Commit is a header block plus message. TreeHash and Parents read the
// well-known keys out of Header.
type Commit struct {
	Header *Header
}

// Tag keeps the raw tag payload. It is not required to follow the header
// format; Fields parses it on demand.
type Tag struct {
	Data []byte
}

func (*Blob) Type() ObjectType   { return TypeBlob }
func (*Tree) Type() ObjectType   { return TypeTree }
func (*Commit) Type() ObjectType { return TypeCommit }
func (*Tag) Type() ObjectType    { return TypeTag }

func (*Blob) object()   {}
func (*Tree) object()   {}
func (*Commit) object() {}
func (*Tag) object()    {}

// NewCommit returns a commit pointing at tree with the given parents.
// Further headers (author, committer, ...) can be added through Header.
func NewCommit(tree Hash, parents []Hash, message string) *Commit {
	h := NewHeader()
	h.Add("tree", string(tree))
	for _, p := range parents {
		h.Add("parent", string(p))
	}
	h.Message = message
	return &Commit{Header: h}
}

// TreeHash returns the commit's tree, or "" if the header has none.
func (c *Commit) TreeHash() Hash {
	v, _ := c.Header.First("tree")
	return Hash(v)
}

// Parents returns the parent hashes in recorded order.
func (c *Commit) Parents() []Hash {
	vals := c.Header.Values("parent")
	out := make([]Hash, len(vals))
	for i, v := range vals {
		out[i] = Hash(v)
	}
	return out
}

// Message returns the commit message body.
func (c *Commit) Message() string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Message
}

// Summary returns the first line of the commit message.
func (c *Commit) Summary() string {
	line, _, _ := strings.Cut(c.Message(), "\n")
	return line
}

// Fields parses the tag payload with the header codec.
func (t *Tag) Fields() (*Header, error) {
	return UnmarshalHeader(t.Data)
}

// Target returns the tag's "object" header, if present.
func (t *Tag) Target() (Hash, bool) {
	h, err := t.Fields()
	if err != nil {
		return "", false
	}
	v, ok := h.First("object")
	return Hash(v), ok
}
