package blurhash

import (
	"errors"

	"github.com/AnyUserName/blurhash-cli/internal/base83"
)

// Validation failures. All are returned wrapped; match with errors.Is.
var (
	ErrInvalidComponentCount = errors.New("component count out of range")
	ErrDimensionMismatch     = errors.New("dimensions do not match pixel buffer")
	ErrInvalidHashLength     = errors.New("invalid blurhash length")
	ErrInvalidCharacter      = base83.ErrInvalidCharacter
)
