// Package base83 implements the positional base-83 numeral system used by
// BlurHash strings.
//
// Alphabet (index order defines the encoding):
//
//	0-9 (0-9), A-Z (10-35), a-z (36-61), then # $ % * + , - . : ; = ? @ [ ] ^ _ { | } ~ (62-82)
//
// Digits are written most-significant first with a fixed width and no padding
// character.
package base83

import (
	"errors"
	"fmt"
)

const (
	Base     = 83
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz#$%*+,-.:;=?@[]^_{|}~"
)

var (
	ErrInvalidCharacter = errors.New("invalid base83 character")
	ErrValueOverflow    = errors.New("value does not fit in base83 digits")
	ErrInvalidSpan      = errors.New("base83 span out of range")
)

// charValue maps a byte to its digit value, -1 for bytes outside the alphabet.
var charValue [256]int8

func init() {
	for i := range charValue {
		charValue[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		charValue[Alphabet[i]] = int8(i)
	}
}

// MaxValue returns 83^length - 1, the largest value that fits in length digits.
func MaxValue(length int) int {
	v := 1
	for range length {
		v *= Base
	}
	return v - 1
}

// Encode renders value as exactly length base-83 digits.
func Encode(value, length int) (string, error) {
	if value < 0 || value > MaxValue(length) {
		return "", fmt.Errorf("%w: %d in %d digits", ErrValueOverflow, value, length)
	}
	return string(AppendEncode(make([]byte, 0, length), value, length)), nil
}

// AppendEncode appends length digits of value to dst. The caller guarantees
// 0 <= value <= MaxValue(length); higher digits are silently dropped.
func AppendEncode(dst []byte, value, length int) []byte {
	start := len(dst)
	for range length {
		dst = append(dst, 0)
	}
	for i := len(dst) - 1; i >= start; i-- {
		dst[i] = Alphabet[value%Base]
		value /= Base
	}
	return dst
}

// Decode interprets all of s as a base-83 number.
func Decode(s string) (int, error) {
	return DecodeSpan(s, 0, len(s))
}

// DecodeSpan interprets s[start:start+length] as a base-83 number.
func DecodeSpan(s string, start, length int) (int, error) {
	if start < 0 || length < 0 || start+length > len(s) {
		return 0, fmt.Errorf("%w: [%d:%d] of %d", ErrInvalidSpan, start, start+length, len(s))
	}
	value := 0
	for i := start; i < start+length; i++ {
		d := charValue[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("%w %q at offset %d", ErrInvalidCharacter, s[i], i)
		}
		value = value*Base + int(d)
	}
	return value, nil
}
