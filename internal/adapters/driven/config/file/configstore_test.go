package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".compass"), dir)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("session.role", "Legal"))

	val, ok := store.Get("session.role")
	assert.True(t, ok)
	assert.Equal(t, "Legal", val)

	val, ok = store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("str", "hello"))
	require.NoError(t, store.Set("num", 42))
	require.NoError(t, store.Set("rate", 2.5))

	assert.Equal(t, "hello", store.GetString("str"))
	assert.Equal(t, "", store.GetString("num"))

	assert.Equal(t, 42, store.GetInt("num"))
	assert.Equal(t, 0, store.GetInt("str"))

	assert.InDelta(t, 2.5, store.GetFloat("rate"), 1e-9)
	assert.InDelta(t, 42.0, store.GetFloat("num"), 1e-9)
	assert.Zero(t, store.GetFloat("str"))
}

func TestConfigStore_PersistsAsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("store.backend", "sqlite"))
	require.NoError(t, store1.Set("store.data_dir", "/var/lib/compass"))
	require.NoError(t, store1.Set("server.rate_limit", 5))
	require.NoError(t, store1.Set("session.role", "IT"))

	raw, err := os.ReadFile(store1.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[store]")
	assert.Contains(t, string(raw), "[session]")

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", store2.GetString("store.backend"))
	assert.Equal(t, "/var/lib/compass", store2.GetString("store.data_dir"))
	assert.Equal(t, 5, store2.GetInt("server.rate_limit"))
	assert.InDelta(t, 5.0, store2.GetFloat("server.rate_limit"), 1e-9)
	assert.Equal(t, "IT", store2.GetString("session.role"))
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte(`
[store]
backend = "json"
data_dir = "./data"

[server]
addr = ":8080"
rate_limit = 1.5
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "json", store.GetString("store.backend"))
	assert.Equal(t, "./data", store.GetString("store.data_dir"))
	assert.Equal(t, ":8080", store.GetString("server.addr"))
	assert.InDelta(t, 1.5, store.GetFloat("server.rate_limit"), 1e-9)
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("session.role", "HR"))
	require.NoError(t, store.Delete("session.role"))
	require.NoError(t, store.Delete("never.set"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("session.role")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

// TestNewConfigStore_MkdirAllError tests error handling when directory creation fails
func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestNewConfigStore_LoadCorruptedFile tests error handling when loading corrupted TOML
func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestConfigStore_Save_WriteFileError tests error handling when WriteFile fails
func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestFlattenAndNest(t *testing.T) {
	nested := map[string]any{
		"store":  map[string]any{"backend": "json", "data_dir": "x"},
		"server": map[string]any{"addr": ":1"},
		"top":    "v",
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"store.backend":  "json",
		"store.data_dir": "x",
		"server.addr":    ":1",
		"top":            "v",
	}, flat)

	assert.Equal(t, nested, nestMap(flat))
}

func TestNestMap_ValueWinsOverTable(t *testing.T) {
	got := nestMap(map[string]any{"a": 1, "a.b": 2})
	assert.Equal(t, map[string]any{"a": 1}, got)
}

func TestConfigStore_SaveLeavesNoTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", ":3000"))
	require.NoError(t, store.Set("server.burst", 10))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "# compass settings"))
}
