package validate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Cache stores reports by content key. Implementations must be safe for concurrent use.
// Get reports found=false, not an error, for unknown keys.
type Cache interface {
	Get(ctx context.Context, key string) (report *Report, found bool, err error)
	Set(ctx context.Context, key string, report *Report) error
}

// cacheKey identifies a validation run: the same bytes under the same name, checked by a validator
// with the same fingerprint, always produce the same report.
func cacheKey(fingerprint, name string, src []byte) string {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write(src)
	return hex.EncodeToString(h.Sum(nil))
}
