package hasher

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("image-a"), 0)
	b := ContentHash([]byte("image-b"), 0)
	assert.Len(t, a, DigestLen)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ContentHash([]byte("image-a"), 0))
	assert.Equal(t, a[:8], ContentHash([]byte("image-a"), 8))
	assert.Equal(t, a, ContentHash([]byte("image-a"), 64))
}

func TestContentHash_KnownValue(t *testing.T) {
	// xxHash64 of the empty input with seed 0.
	assert.Equal(t, "ef46db3751d8e999", ContentHash(nil, 0))
}

func TestContentHashReader(t *testing.T) {
	data := bytes.Repeat([]byte{1, 2, 3}, 10000)
	got, err := ContentHashReader(bytes.NewReader(data), 12)
	require.NoError(t, err)
	assert.Equal(t, ContentHash(data, 12), got)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestContentHashReader_Error(t *testing.T) {
	_, err := ContentHashReader(failingReader{}, 0)
	assert.Error(t, err)
}
