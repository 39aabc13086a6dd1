package object

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	testHashA = Hash("29c95630072cd48c6c227938e66681536613f9ad")
	testHashB = Hash("83baae61804e65cc73a7201a7252750c76066a30")
)

func TestMarshalUnmarshalBlob(t *testing.T) {
	orig := &Blob{Data: []byte("hello world\nline two")}
	data := MarshalBlob(orig)
	got, err := UnmarshalBlob(data)
	if err != nil {
		t.Fatalf("UnmarshalBlob: %v", err)
	}
	if !bytes.Equal(got.Data, orig.Data) {
		t.Errorf("Blob round-trip mismatch: got %q, want %q", got.Data, orig.Data)
	}
}

func TestEncodeEnvelope(t *testing.T) {
	raw, err := Encode(&Blob{Data: []byte("hello\n")})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "blob 6\x00hello\n"
	if string(raw) != want {
		t.Errorf("Encode = %q, want %q", raw, want)
	}
}

func TestDigestMatchesGit(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want Hash
	}{
		{"empty blob", &Blob{}, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{"hello blob", &Blob{Data: []byte("hello\n")}, "ce013625030ba8dba906f756967f9e9ca394464a"},
		{"version 1 blob", &Blob{Data: []byte("version 1\n")}, testHashB},
		{"empty tree", &Tree{}, "4b825dc642cb6eb9a060e54bf8d69288fbee4904"},
		{
			"single file tree",
			&Tree{Entries: []TreeEntry{{Mode: ModeFile, Name: "test.txt", Hash: testHashB}}},
			"d8329fc1cc938780ffdd9f94e0d364e0ea74f579",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Digest(tc.obj)
			if err != nil {
				t.Fatalf("Digest: %v", err)
			}
			if got != tc.want {
				t.Errorf("Digest = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	commit := NewCommit(testHashA, []Hash{testHashB}, "subject\n\nbody\n")
	commit.Header.Add("author", "A U Thor <a@example.com> 1700000000 +0000")

	tests := []struct {
		name string
		obj  Object
	}{
		{"blob", &Blob{Data: []byte{0, 1, 2, 0xff}}},
		{"tree", &Tree{Entries: []TreeEntry{
			{Mode: ModeFile, Name: "a.txt", Hash: testHashA},
			{Mode: ModeDir, Name: "sub", Hash: testHashB},
		}}},
		{"commit", commit},
		{"tag", &Tag{Data: []byte("object " + string(testHashA) + "\ntype commit\ntag v1\n\nrelease\n")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := Encode(tc.obj)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(raw)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(tc.obj, got, cmp.AllowUnexported(Header{})); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeRejectsMalformedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"no space", "blob", ErrMalformedObject},
		{"no nul", "blob 5hello", ErrMalformedObject},
		{"bad length", "blob five\x00hello", ErrMalformedObject},
		{"negative length", "blob -5\x00hello", ErrMalformedObject},
		{"short payload", "blob 10\x00hello", ErrSizeMismatch},
		{"long payload", "blob 2\x00hello", ErrSizeMismatch},
		{"unknown type", "bogus 5\x00hello", ErrUnknownObjectType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := Decode([]byte(tc.raw))
			if !errors.Is(err, tc.want) {
				t.Fatalf("Decode(%q) error = %v, want %v", tc.raw, err, tc.want)
			}
			if obj != nil {
				t.Errorf("Decode(%q) returned partial object %#v", tc.raw, obj)
			}
		})
	}
}

func TestCommitRequiresSingleTree(t *testing.T) {
	if _, err := UnmarshalCommit([]byte("parent " + string(testHashA) + "\n\nmsg")); !errors.Is(err, ErrMalformedCommit) {
		t.Errorf("commit without tree: err = %v, want ErrMalformedCommit", err)
	}

	twoTrees := "tree " + string(testHashA) + "\ntree " + string(testHashB) + "\n\nmsg"
	if _, err := UnmarshalCommit([]byte(twoTrees)); !errors.Is(err, ErrMalformedCommit) {
		t.Errorf("commit with two trees: err = %v, want ErrMalformedCommit", err)
	}

	c := &Commit{Header: NewHeader()}
	if _, err := MarshalCommit(c); !errors.Is(err, ErrMalformedCommit) {
		t.Errorf("MarshalCommit without tree: err = %v, want ErrMalformedCommit", err)
	}
}

func TestCommitAccessors(t *testing.T) {
	c := NewCommit(testHashA, []Hash{testHashB, testHashA}, "first line\nsecond line\n")
	if c.TreeHash() != testHashA {
		t.Errorf("TreeHash = %s, want %s", c.TreeHash(), testHashA)
	}
	if diff := cmp.Diff([]Hash{testHashB, testHashA}, c.Parents()); diff != "" {
		t.Errorf("Parents mismatch (-want +got):\n%s", diff)
	}
	if got := c.Summary(); got != "first line" {
		t.Errorf("Summary = %q, want %q", got, "first line")
	}
}

func TestCommitAccessorsZeroValue(t *testing.T) {
	c := &Commit{}
	if h := c.TreeHash(); h != "" {
		t.Errorf("TreeHash = %q, want empty", h)
	}
	if p := c.Parents(); len(p) != 0 {
		t.Errorf("Parents = %v, want none", p)
	}
	if m := c.Message(); m != "" {
		t.Errorf("Message = %q, want empty", m)
	}
	if s := c.Summary(); s != "" {
		t.Errorf("Summary = %q, want empty", s)
	}
	if _, err := MarshalCommit(c); !errors.Is(err, ErrMalformedCommit) {
		t.Errorf("MarshalCommit err = %v, want ErrMalformedCommit", err)
	}
}

func TestTagTarget(t *testing.T) {
	tag := &Tag{Data: []byte("object " + string(testHashA) + "\ntype commit\n\nmsg")}
	h, ok := tag.Target()
	if !ok || h != testHashA {
		t.Errorf("Target = %s, %v; want %s, true", h, ok, testHashA)
	}

	opaque := &Tag{Data: []byte("no header here")}
	if _, ok := opaque.Target(); ok {
		t.Error("Target on opaque tag should report false")
	}
}

func TestParseObjectType(t *testing.T) {
	for _, name := range []string{"blob", "tree", "commit", "tag"} {
		if _, err := ParseObjectType(name); err != nil {
			t.Errorf("ParseObjectType(%q): %v", name, err)
		}
	}
	if _, err := ParseObjectType("entity"); !errors.Is(err, ErrUnknownObjectType) {
		t.Errorf("ParseObjectType(entity) err = %v, want ErrUnknownObjectType", err)
	}
}
