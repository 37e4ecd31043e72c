package keyname

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Digest returns a short content digest of v for use as an attribute value.
// Strings are hashed as-is; byte slices by content; anything else by its JSON
// encoding, falling back to its %v rendering when it cannot be encoded.
func Digest(v any) string {
	var data []byte
	switch x := v.(type) {
	case string:
		data = []byte(x)
	case []byte:
		data = x
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			data = []byte(fmt.Sprintf("%v", v))
		}
	}
	return Hash(data)[:digestLength]
}
