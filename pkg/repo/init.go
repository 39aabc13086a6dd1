package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/oz/pkg/object"
)

const defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

// Init creates a new repository at path. It creates the .oz/ directory
// structure: HEAD, description, config.toml, objects/, branches/,
// refs/heads/ and refs/tags/. path may already exist as a directory; an
// existing non-empty .oz/ is an error.
func Init(path string) (*Repo, error) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("init: %s is not a directory", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("init: stat %s: %w", path, err)
	}

	ozDir := filepath.Join(path, DirName)
	if entries, err := os.ReadDir(ozDir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("init: repository already exists at %s", ozDir)
	}

	dirs := []string{
		filepath.Join(ozDir, "objects"),
		filepath.Join(ozDir, "branches"),
		filepath.Join(ozDir, "refs", "heads"),
		filepath.Join(ozDir, "refs", "tags"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	files := map[string]string{
		"description": defaultDescription,
		"HEAD":        "ref: refs/heads/master\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(ozDir, name), []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("init: write %s: %w", name, err)
		}
	}

	cfg := DefaultConfig()
	if err := WriteConfig(ozDir, cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	return &Repo{
		RootDir: path,
		OzDir:   ozDir,
		Store:   object.NewStore(ozDir),
		Config:  cfg,
	}, nil
}

// Open searches upward from path for a .oz/ directory and opens the
// repository. Returns ErrNotRepository if no .oz/ directory is found.
func Open(path string) (*Repo, error) {
	// Resolve to absolute path for consistent traversal.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		ozDir := filepath.Join(cur, DirName)
		info, err := os.Stat(ozDir)
		if err == nil && info.IsDir() {
			cfg, err := ReadConfig(ozDir)
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			return &Repo{
				RootDir: cur,
				OzDir:   ozDir,
				Store:   object.NewStore(ozDir),
				Config:  cfg,
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: %w (or any parent up to /): %s", ErrNotRepository, DirName)
		}
		cur = parent
	}
}

// Head reads .oz/HEAD. If the content starts with "ref: ", it returns the
// ref path (e.g., "refs/heads/master"). Otherwise it returns the raw content
// as a detached hash string.
func (r *Repo) Head() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.OzDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")

	if strings.HasPrefix(content, "ref: ") {
		return strings.TrimPrefix(content, "ref: "), nil
	}
	return content, nil
}

// UpdateRef writes a hash to the named ref file under .oz/ via a temp file
// and rename. Parent directories are created as needed.
func (r *Repo) UpdateRef(name string, h object.Hash) error {
	if !h.IsValid() {
		return fmt.Errorf("update ref %q: %w", name, object.ErrInvalidHash)
	}
	refPath := filepath.Join(r.OzDir, filepath.FromSlash(name))
	dir := filepath.Dir(refPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("update ref %q: mkdir: %w", name, err)
	}

	tmp, err := os.CreateTemp(dir, ".ref-tmp-*")
	if err != nil {
		return fmt.Errorf("update ref %q: tmpfile: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(string(h) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: write: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: close: %w", name, err)
	}
	if err := os.Rename(tmpName, refPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: rename: %w", name, err)
	}
	return nil
}
