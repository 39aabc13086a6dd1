package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/odvcencio/oz/pkg/object"
)

func TestCheckout_CommitIntoNewDirectory(t *testing.T) {
	r := initRepo(t)
	tree := sampleTree(t, r)
	commit := writeCommit(t, r, tree, "first\n")

	dest := filepath.Join(t.TempDir(), "out")
	if err := r.Checkout(string(commit), dest); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	for path, want := range map[string]string{
		"a.txt":     "hello\n",
		"run.sh":    "#!/bin/sh\n",
		"sub/b.txt": "bee\n",
	} {
		got, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(path)))
		if err != nil {
			t.Errorf("read %s: %v", path, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
	assertDir(t, filepath.Join(dest, "sub"))

	info, err := os.Stat(filepath.Join(dest, "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("run.sh mode = %v, want executable", info.Mode().Perm())
	}
}

func TestCheckout_TreeIntoEmptyDirectory(t *testing.T) {
	r := initRepo(t)
	tree := sampleTree(t, r)

	dest := t.TempDir()
	if err := r.Checkout(string(tree), dest); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	assertFile(t, filepath.Join(dest, "a.txt"))
	assertFile(t, filepath.Join(dest, "sub", "b.txt"))
}

func TestCheckout_ByBranchName(t *testing.T) {
	r := initRepo(t)
	commit := writeCommit(t, r, sampleTree(t, r), "first\n")
	if err := r.UpdateRef("refs/heads/master", commit); err != nil {
		t.Fatal(err)
	}

	dest := t.TempDir()
	if err := r.Checkout("master", dest); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	assertFile(t, filepath.Join(dest, "run.sh"))
}

func TestCheckout_ThroughAnnotatedTag(t *testing.T) {
	r := initRepo(t)
	commit := writeCommit(t, r, sampleTree(t, r), "first\n")
	if _, err := r.CreateAnnotatedTag("v1", commit, "tester", "release", false); err != nil {
		t.Fatal(err)
	}

	dest := t.TempDir()
	if err := r.Checkout("v1", dest); err != nil {
		t.Fatalf("Checkout(v1): %v", err)
	}
	assertFile(t, filepath.Join(dest, "sub", "b.txt"))
}

func TestCheckout_NonEmptyDestination(t *testing.T) {
	r := initRepo(t)
	tree := sampleTree(t, r)

	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "existing"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	err := r.Checkout(string(tree), dest)
	if !errors.Is(err, ErrNotEmpty) {
		t.Fatalf("Checkout err = %v, want ErrNotEmpty", err)
	}
}

func TestCheckout_DestinationIsFile(t *testing.T) {
	r := initRepo(t)
	tree := sampleTree(t, r)

	dest := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(dest, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := r.Checkout(string(tree), dest)
	if !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("Checkout err = %v, want ErrNotADirectory", err)
	}
}

func TestCheckout_BlobTargetUnresolved(t *testing.T) {
	r := initRepo(t)
	blob := writeBlob(t, r, "data")

	err := r.Checkout(string(blob), t.TempDir())
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("Checkout err = %v, want ErrUnresolved", err)
	}
}

func TestMaterialize_DirectoryExists(t *testing.T) {
	r := initRepo(t)
	tree, err := r.Store.ReadTree(sampleTree(t, r))
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	err = Materialize(r.Store, tree, dir)
	if !errors.Is(err, ErrDirectoryExists) {
		t.Fatalf("Materialize err = %v, want ErrDirectoryExists", err)
	}
}

func TestMaterialize_WriteFailureIsIO(t *testing.T) {
	r := initRepo(t)
	empty := writeTree(t, r)
	blob := writeBlob(t, r, "x")

	// The directory "x" is created first, so writing the file "x" fails.
	tree := &object.Tree{Entries: []object.TreeEntry{
		{Mode: object.ModeDir, Name: "x", Hash: empty},
		{Mode: object.ModeFile, Name: "x", Hash: blob},
	}}
	err := Materialize(r.Store, tree, t.TempDir())
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Materialize err = %v, want ErrIO", err)
	}
}

func TestMaterialize_UnsafeNames(t *testing.T) {
	r := initRepo(t)
	blob := writeBlob(t, r, "x")

	for _, name := range []string{"..", ".", "a/b", `a\b`, ""} {
		tree := &object.Tree{Entries: []object.TreeEntry{{Mode: object.ModeFile, Name: name, Hash: blob}}}
		err := Materialize(r.Store, tree, t.TempDir())
		if !errors.Is(err, object.ErrMalformedTree) {
			t.Errorf("name %q: err = %v, want ErrMalformedTree", name, err)
		}
	}
}

func TestMaterialize_CommitEntryIsMalformed(t *testing.T) {
	r := initRepo(t)
	inner := writeCommit(t, r, writeTree(t, r), "inner\n")
	tree := &object.Tree{Entries: []object.TreeEntry{{Mode: object.ModeSubmodule, Name: "mod", Hash: inner}}}

	err := Materialize(r.Store, tree, t.TempDir())
	if !errors.Is(err, object.ErrMalformedTree) {
		t.Fatalf("Materialize err = %v, want ErrMalformedTree", err)
	}
}

func TestMaterialize_MissingBlob(t *testing.T) {
	r := initRepo(t)
	missing := object.HashObject(object.TypeBlob, []byte("never stored"))
	tree := &object.Tree{Entries: []object.TreeEntry{{Mode: object.ModeFile, Name: "gone", Hash: missing}}}

	err := Materialize(r.Store, tree, t.TempDir())
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("Materialize err = %v, want ErrNotFound", err)
	}
}
