package cache

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetPutEvict(t *testing.T) {
	s := New()
	k := Key{ContentHash: "abcd", ComponentX: 4, ComponentY: 3}

	_, ok := s.Get(k)
	assert.False(t, ok)

	s.Put(k, Entry{Hash: "LEHV6nWB2yk8pyo0adR*.7kCMdnj", Width: 640, Height: 480})
	e, ok := s.Get(k)
	require.True(t, ok)
	assert.Equal(t, 640, e.Width)

	// Same content, different grid is a different key.
	_, ok = s.Get(Key{ContentHash: "abcd", ComponentX: 3, ComponentY: 3})
	assert.False(t, ok)

	// Same grid, different downscale setting is a different key.
	_, ok = s.Get(Key{ContentHash: "abcd", ComponentX: 4, ComponentY: 3, Downscale: true})
	assert.False(t, ok)

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Evict(k))
	assert.False(t, s.Evict(k))
	assert.Equal(t, 0, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.Put(Key{ContentHash: fmt.Sprint(i), ComponentX: 1, ComponentY: 1}, Entry{Hash: "00Eyb["})
	}
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestStore_SaveLoad(t *testing.T) {
	s := New()
	s.Put(Key{"aa", 4, 3, true}, Entry{"LEHV6nWB2yk8pyo0adR*.7kCMdnj", 100, 75})
	s.Put(Key{"bb", 1, 1, true}, Entry{"00Eyb[", 10, 10})

	path := filepath.Join(t.TempDir(), "blurhash.cache")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	e, ok := loaded.Get(Key{"bb", 1, 1, true})
	require.True(t, ok)
	assert.Equal(t, Entry{"00Eyb[", 10, 10}, e)

	// The file is a zstd frame.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	plain, err := dec.DecodeAll(raw, nil)
	require.NoError(t, err)
	assert.Contains(t, string(plain), `"content_hash":"aa"`)
}

func TestStore_WriteIsStable(t *testing.T) {
	s := New()
	for i := 0; i < 20; i++ {
		s.Put(Key{fmt.Sprintf("%02d", i), 4, 3, true}, Entry{Hash: "x"})
	}
	var a, b bytes.Buffer
	require.NoError(t, s.Write(&a))
	require.NoError(t, s.Write(&b))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestLoad_Missing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestRead_OldVersionIsEmpty(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(`{"version":1,"entries":[{"content_hash":"aa","x":9,"y":9,"hash":"00Eyb[","width":1,"height":1}]}`))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	s, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad")
	require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestStore_Concurrent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				k := Key{fmt.Sprintf("%d-%d", g, i), 4, 3, true}
				s.Put(k, Entry{Hash: "h"})
				_, _ = s.Get(k)
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 800, s.Len())
}
