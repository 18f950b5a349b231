// Package gitblob computes git blob object identifiers.
package gitblob

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
)

// Sum returns the git blob SHA-1 of content as a 40-char lowercase hex
// string. The digest covers the canonical object header
// "blob <length>\x00" followed by the payload, matching git hash-object
// and therefore the SHAs GitHub reports in tree listings.
func Sum(content []byte) string {
	h := sha1.New()
	h.Write([]byte("blob "))
	h.Write([]byte(strconv.Itoa(len(content))))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// SumString hashes text content as its UTF-8 bytes.
func SumString(content string) string {
	return Sum([]byte(content))
}

// IsValidSHA reports whether s looks like a git object id.
func IsValidSHA(s string) bool {
	if len(s) != 40 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
