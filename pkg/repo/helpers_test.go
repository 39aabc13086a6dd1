package repo

import (
	"testing"

	"github.com/odvcencio/oz/pkg/object"
)

func initRepo(t *testing.T) *Repo {
	t.Helper()
	r, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

func writeObject(t *testing.T, r *Repo, obj object.Object) object.Hash {
	t.Helper()
	h, err := r.Store.Write(obj)
	if err != nil {
		t.Fatalf("write %s: %v", obj.Type(), err)
	}
	return h
}

func writeBlob(t *testing.T, r *Repo, data string) object.Hash {
	t.Helper()
	return writeObject(t, r, &object.Blob{Data: []byte(data)})
}

func writeTree(t *testing.T, r *Repo, entries ...object.TreeEntry) object.Hash {
	t.Helper()
	return writeObject(t, r, &object.Tree{Entries: entries})
}

func writeCommit(t *testing.T, r *Repo, tree object.Hash, msg string, parents ...object.Hash) object.Hash {
	t.Helper()
	return writeObject(t, r, object.NewCommit(tree, parents, msg))
}

// sampleTree builds a.txt, run.sh and sub/b.txt and returns the root tree.
func sampleTree(t *testing.T, r *Repo) object.Hash {
	t.Helper()
	sub := writeTree(t, r, object.TreeEntry{Mode: object.ModeFile, Name: "b.txt", Hash: writeBlob(t, r, "bee\n")})
	return writeTree(t, r,
		object.TreeEntry{Mode: object.ModeFile, Name: "a.txt", Hash: writeBlob(t, r, "hello\n")},
		object.TreeEntry{Mode: object.ModeExecutable, Name: "run.sh", Hash: writeBlob(t, r, "#!/bin/sh\n")},
		object.TreeEntry{Mode: object.ModeDir, Name: "sub", Hash: sub},
	)
}
