// Package hasher derives stable identities for source images. The
// identity keys the blurhash cache: a different digest means a different
// image and always misses.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// DigestLen is the full hex length of a digest (64 bits).
const DigestLen = 16

// ContentHash returns the xxHash64 of data as lowercase hex, truncated to
// hexLen when 0 < hexLen < DigestLen.
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// ContentHashReader is ContentHash over a stream.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

func format(sum uint64, hexLen int) string {
	full := hex.EncodeToString(binary.BigEndian.AppendUint64(nil, sum))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
