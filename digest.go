package lightjson

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Digest fingerprints input text for the cache key. An error skips caching
// for that call.
type Digest func(data []byte) (string, error)

// MD5 returns the lower-case hex md5 of data.
func MD5(data []byte) (string, error) {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// XXHash returns the hex xxhash64 of data.
func XXHash(data []byte) (string, error) {
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

// DigestByName returns "md5" or "xxhash".
func DigestByName(name string) (Digest, error) {
	switch name {
	case "md5", "":
		return MD5, nil
	case "xxhash":
		return XXHash, nil
	}
	return nil, fmt.Errorf("lightjson: unknown digest %q", name)
}
