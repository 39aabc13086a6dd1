package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
)

// HashSize is the length in bytes of a raw SHA-1 digest.
const HashSize = sha1.Size

// HashHexSize is the length of a hex-encoded Hash.
const HashHexSize = HashSize * 2

// Hash is a 40-character lowercase hex-encoded SHA-1 digest.
type Hash string

// HashBytes computes the raw SHA-1 hash of data and returns it as a
// lowercase hex-encoded Hash.
func HashBytes(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the SHA-1 of the envelope "type len\0content".
func HashObject(objType ObjectType, data []byte) Hash {
	h := sha1.New()
	h.Write([]byte(string(objType) + " " + strconv.Itoa(len(data)) + "\x00"))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// ParseHash validates s as a full lowercase hex digest.
func ParseHash(s string) (Hash, error) {
	if len(s) != HashHexSize {
		return "", fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidHash, s, len(s), HashHexSize)
	}
	if !isLowerHex(s) {
		return "", fmt.Errorf("%w: %q is not lowercase hex", ErrInvalidHash, s)
	}
	return Hash(s), nil
}

// IsValid reports whether h is a full lowercase hex digest.
func (h Hash) IsValid() bool {
	return len(h) == HashHexSize && isLowerHex(string(h))
}

// Short returns the first n characters of h, or all of h if it is shorter.
func (h Hash) Short(n int) string {
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}

// Raw returns the 20-byte binary form of h.
func (h Hash) Raw() ([]byte, error) {
	if !h.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHash, string(h))
	}
	return hex.DecodeString(string(h))
}

// hashFromRaw re-expands a binary digest to its hex form.
func hashFromRaw(raw []byte) Hash {
	return Hash(hex.EncodeToString(raw))
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// IsHexPrefix reports whether s is non-empty lowercase hex no longer than
// a full digest.
func IsHexPrefix(s string) bool {
	return len(s) > 0 && len(s) <= HashHexSize && isLowerHex(s)
}
