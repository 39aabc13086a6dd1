package repo

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FormatVersion is the only repository format this package reads.
const FormatVersion = 0

// Config stores repository-local settings.
type Config struct {
	Core CoreConfig `toml:"core"`
}

// CoreConfig is the [core] section of .oz/config.toml.
type CoreConfig struct {
	RepositoryFormatVersion int  `toml:"repositoryformatversion"`
	FileMode                bool `toml:"filemode"`
	Bare                    bool `toml:"bare"`
}

// DefaultConfig returns the configuration written by Init.
func DefaultConfig() *Config {
	return &Config{Core: CoreConfig{RepositoryFormatVersion: FormatVersion}}
}

func configPath(ozDir string) string {
	return filepath.Join(ozDir, "config.toml")
}

// ReadConfig reads .oz/config.toml. A missing file yields DefaultConfig.
func ReadConfig(ozDir string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(configPath(ozDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("read config: decode: %w", err)
	}
	if v := cfg.Core.RepositoryFormatVersion; v != FormatVersion {
		return nil, fmt.Errorf("read config: %w: %d", ErrUnsupportedFormat, v)
	}
	return cfg, nil
}

// WriteConfig atomically writes .oz/config.toml.
func WriteConfig(ozDir string, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(ozDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, configPath(ozDir)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}
