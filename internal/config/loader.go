package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileNames: имена конфиг-файлов в порядке предпочтения.
var FileNames = []string{"rfmt.toml", ".rfmt.toml"}

// Discover walks up from startDir looking for a config file.
func Discover(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	partial, err := FromDocument(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	cfg := Default()
	if err := cfg.FillFromParsed(partial); err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	cfg.BaseDir = filepath.Dir(abs)
	return cfg, nil
}

// Resolve находит конфиг для dir; без файла: значения по умолчанию
// с BaseDir = dir. Возвращает путь к использованному файлу или "".
func Resolve(dir string) (*Config, string, error) {
	path, ok, err := Discover(dir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve start directory: %w", err)
		}
		cfg := Default()
		cfg.BaseDir = abs
		return cfg, "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
