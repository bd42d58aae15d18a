package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestPutGet(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	key := Key("max_width = 100\n", []byte("fn main() {}\n"))
	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Put(key, Entry{Path: "src/main.rs", Clean: true}))
	got, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "src/main.rs", got.Path)
	require.True(t, got.Clean)
	require.Equal(t, schemaVersion, got.Schema)
	require.NotZero(t, got.Stamp)
}

func TestKeyDependsOnConfigAndContent(t *testing.T) {
	a := Key("max_width = 100\n", []byte("x"))
	require.Equal(t, a, Key("max_width = 100\n", []byte("x")))
	require.NotEqual(t, a, Key("max_width = 80\n", []byte("x")))
	require.NotEqual(t, a, Key("max_width = 100\n", []byte("y")))
}

func TestOtherSchemaIsMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := Key("", []byte("old"))

	p := c.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	data, err := msgpack.Marshal(&Entry{Schema: schemaVersion + 1, Clean: true})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p, data, 0o644))

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDropAll(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "rfmt"))
	require.NoError(t, err)
	key := Key("", []byte("a"))
	require.NoError(t, c.Put(key, Entry{Clean: true}))
	require.NoError(t, c.DropAll())

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)
	// каталог пересоздан, запись снова возможна
	require.NoError(t, c.Put(key, Entry{Clean: true}))
}

func TestNilCache(t *testing.T) {
	var c *Cache
	require.NoError(t, c.Put(Digest{}, Entry{}))
	_, ok, err := c.Get(Digest{})
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, c.DropAll())
}
