package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"sort"
	"strings"
)

// SecureHashField is the query parameter carrying the signature. It is
// never part of the signed parameter set.
const SecureHashField = "vnp_SecureHash"

// secureHashTypeField is sent by some gateway versions alongside the hash
// and is likewise excluded from signing.
const secureHashTypeField = "vnp_SecureHashType"

const upperhex = "0123456789ABCDEF"

func isComponentSafe(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// encodeComponent percent-encodes s the way a URI component is encoded:
// unreserved bytes pass through, everything else (including the raw UTF-8
// bytes of multibyte runes) becomes %XX. This is the plain encoder used for
// the final redirect query string.
func encodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xF])
	}
	return b.String()
}

// encodeCanonicalValue is the gateway's signing dialect: component encoding
// with every encoded space collapsed to '+'. It exists separately from
// encodeComponent because the two must never be conflated; the gateway signs
// one form and receives the other.
func encodeCanonicalValue(s string) string {
	return strings.ReplaceAll(encodeComponent(s), "%20", "+")
}

// Canonicalize builds the deterministic signing string for params: keys are
// component-encoded and sorted lexicographically by their encoded form, values
// are encoded in the canonical dialect, pairs are joined as k=v with '&'.
// The result is independent of map insertion order. params must not contain
// the signature field.
func Canonicalize(params map[string]string) string {
	encodedKeys := make([]string, 0, len(params))
	byEncodedKey := make(map[string]string, len(params))
	for k, v := range params {
		ek := encodeComponent(k)
		encodedKeys = append(encodedKeys, ek)
		byEncodedKey[ek] = v
	}
	sort.Strings(encodedKeys)

	var b strings.Builder
	for i, ek := range encodedKeys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(ek)
		b.WriteByte('=')
		b.WriteString(encodeCanonicalValue(byEncodedKey[ek]))
	}
	return b.String()
}

// Sign computes the lowercase hex HMAC-SHA512 of the canonical string of
// params under secret.
func Sign(params map[string]string, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(Canonicalize(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature over params with the hash fields stripped
// and compares it to providedSignature in constant time. A false result must
// be treated as a hard rejection by callers.
func Verify(params map[string]string, providedSignature, secret string) bool {
	stripped := make(map[string]string, len(params))
	for k, v := range params {
		if k == SecureHashField || k == secureHashTypeField {
			continue
		}
		stripped[k] = v
	}
	expected := Sign(stripped, secret)
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
