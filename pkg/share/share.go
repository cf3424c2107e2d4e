// Package share serializes a parsed document into a URL-embeddable token
// and back. Tokens are compact JSON in URL-safe base64 (the standard
// alphabet with +/ replaced by -_ and padding stripped), so they survive
// query parameters without further escaping.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Encode renders value as compact JSON and wraps it in padding-free
// URL-safe base64.
func Encode(value any) (string, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode reverses Encode, tolerating tokens that arrive percent-encoded
// and/or with base64 padding intact. Candidates are tried in order:
// percent-decoded base64, raw base64, then the raw text as literal JSON.
// When every candidate fails the JSON diagnostic of the literal attempt is
// returned, so the caller surfaces it as an ordinary parse failure.
func Decode(token string) (any, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("decode share token: empty input")
	}

	candidates := []string{token}
	if unescaped, err := url.QueryUnescape(token); err == nil && unescaped != token {
		// Percent-decoded form takes priority over the raw token.
		candidates = []string{unescaped, token}
	}

	for _, c := range candidates {
		if raw, err := decodeBase64(c); err == nil {
			var value any
			if err := json.Unmarshal(raw, &value); err == nil {
				return value, nil
			}
		}
	}

	// Malformed encodings fall back to treating the text as a literal
	// JSON candidate.
	var value any
	if err := json.Unmarshal([]byte(token), &value); err != nil {
		return nil, fmt.Errorf("decode share token: %w", err)
	}
	return value, nil
}

// decodeBase64 accepts both the padding-stripped and the padded URL-safe
// forms.
func decodeBase64(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
