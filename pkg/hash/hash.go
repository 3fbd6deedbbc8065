package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Prefix returns the first prefixLen characters of SHA256(input).
// Used for short, irreversible log correlation ids.
func Prefix(input string, prefixLen int) string {
	full := SHA256Hex(input)
	if prefixLen > len(full) {
		return full
	}
	return full[:prefixLen]
}

// Fingerprint returns the hex SHA256 of the given chunks. Each chunk is
// length-prefixed, so moving bytes between chunks changes the result.
// Used to identify a dataset snapshot by content.
func Fingerprint(chunks ...[]byte) string {
	h := sha256.New()
	var size [8]byte
	for _, c := range chunks {
		binary.BigEndian.PutUint64(size[:], uint64(len(c)))
		h.Write(size[:])
		h.Write(c)
	}
	return hex.EncodeToString(h.Sum(nil))
}
