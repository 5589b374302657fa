package payment

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// passwordKey is the protocol-mandated parameter name the shared secret is
// injected under before hashing. The acquirer concatenates the secret as a
// value rather than keying an HMAC; the scheme is reproduced exactly for
// interoperability, not "corrected".
const passwordKey = "Password"

// tokenExcluded lists parameters that never participate in token computation:
// the token itself plus nested structures that cannot be flattened into the
// signing string.
var tokenExcluded = map[string]struct{}{
	"Token":   {},
	"Receipt": {},
	"DATA":    {},
	"Shops":   {},
}

// GenerateToken computes the request/notification token:
// inject the secret under Password, drop the exclusion set, sort the remaining
// keys byte-wise, concatenate the stringified values with no separator and
// return the lowercase hex SHA-256 of the result.
func GenerateToken(params map[string]any, password string) string {
	merged := make(map[string]any, len(params)+1)
	for k, v := range params {
		if _, skip := tokenExcluded[k]; skip {
			continue
		}
		merged[k] = v
	}
	merged[passwordKey] = password

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(stringify(merged[k]))
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// VerifyToken recomputes the token over the payload (minus its Token field)
// and compares it to the provided one in constant time.
func VerifyToken(payload map[string]any, password string) bool {
	provided, _ := payload["Token"].(string)
	if provided == "" {
		return false
	}

	expected := GenerateToken(payload, password)
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

// stringify renders a scalar the way it appeared on the wire. Webhook bodies
// are decoded with json.Number so numeric literals survive verbatim.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
