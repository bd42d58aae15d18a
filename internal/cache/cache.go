// Package cache помнит файлы, которые уже отформатированы при данной
// конфигурации, чтобы повторный запуск их не разбирал.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Entry format changes
const schemaVersion uint16 = 1

// Digest: ключ записи: sha256 от отпечатка конфигурации и содержимого файла.
type Digest [32]byte

// Key builds the cache key of content formatted under the config fingerprint.
func Key(fingerprint string, content []byte) Digest {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(content)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Entry records that a file was already in canonical form.
type Entry struct {
	Schema uint16
	Path   string
	// Clean: форматирование не изменило файл и не выдало диагностик.
	Clean bool
	// Children: пути файлов внешних `mod x;`, найденные при разборе.
	Children []string
	// Stamp: unix-время записи, для ручной чистки.
	Stamp int64
}

// Cache хранит записи на диске, по файлу на ключ.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at dir. An empty dir selects
// $XDG_CACHE_HOME/rfmt (or ~/.cache/rfmt).
func Open(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "rfmt")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// два символа: подкаталог, чтобы не держать все записи в одной папке
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put writes e under key, replacing any previous entry atomically.
func (c *Cache) Put(key Digest, e Entry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e.Schema = schemaVersion
	if e.Stamp == 0 {
		e.Stamp = time.Now().Unix()
	}
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&e); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads the entry under key. A missing entry or one written by another
// schema version is a miss, not an error.
func (c *Cache) Get(key Digest) (Entry, bool, error) {
	if c == nil {
		return Entry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	var e Entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return Entry{}, false, err
	}
	if e.Schema != schemaVersion {
		return Entry{}, false, nil
	}
	return e, true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(c.dir, 0o755)
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
