package repo

import (
	"errors"

	"github.com/odvcencio/oz/pkg/object"
)

var (
	// ErrNotRepository is returned by Open when no .oz directory is found.
	ErrNotRepository     = errors.New("not an oz repository")
	ErrUnsupportedFormat = errors.New("unsupported repository format version")
	// ErrUnresolved is returned when a name cannot be mapped to an object
	// of the requested type.
	ErrUnresolved = errors.New("cannot resolve name")
	ErrAmbiguous  = errors.New("ambiguous object name")
	ErrTagExists  = errors.New("tag already exists")

	// ErrInconsistentHistory is returned when a parent link points at
	// something other than a commit.
	ErrInconsistentHistory = errors.New("inconsistent history")

	// ErrIO wraps filesystem failures during checkout.
	ErrIO              = errors.New("checkout i/o error")
	ErrNotEmpty        = errors.New("destination is not empty")
	ErrNotADirectory   = errors.New("destination is not a directory")
	ErrDirectoryExists = errors.New("directory already exists")
)

// DirName is the repository metadata directory inside a worktree.
const DirName = ".oz"

// Repo represents an opened oz repository.
type Repo struct {
	RootDir string        // working directory root
	OzDir   string        // .oz/ directory
	Store   *object.Store // content-addressed object store
	Config  *Config
}
