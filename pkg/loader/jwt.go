package loader

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// IsJWT detects whether input looks like a JWT: exactly 3 dot-separated
// parts where the first two decode as base64url JSON objects.
func IsJWT(input string) bool {
	input = strings.TrimSpace(strings.TrimPrefix(input, "Bearer "))
	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	for _, part := range parts[:2] {
		decoded, err := base64.RawURLEncoding.DecodeString(part)
		if err != nil {
			return false
		}
		var obj map[string]any
		if err := json.Unmarshal(decoded, &obj); err != nil {
			return false
		}
	}
	_, err := base64.RawURLEncoding.DecodeString(parts[2])
	return err == nil
}

// DecodeJWT splits a JWT into its header, payload, and signature so the
// token becomes an explorable document. The signature stays as its raw
// base64url string; it is binary data with no JSON form.
func DecodeJWT(input string) (map[string]any, error) {
	input = strings.TrimSpace(strings.TrimPrefix(input, "Bearer "))
	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWT: expected 3 parts, got %d", len(parts))
	}

	header, err := decodeJWTSection(parts[0], "header")
	if err != nil {
		return nil, err
	}
	payload, err := decodeJWTSection(parts[1], "payload")
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"header":    header,
		"payload":   payload,
		"signature": parts[2],
	}, nil
}

func decodeJWTSection(part, name string) (map[string]any, error) {
	raw, err := base64.RawURLEncoding.DecodeString(part)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT %s: %w", name, err)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("invalid JWT %s JSON: %w", name, err)
	}
	return obj, nil
}

func loadJWT(input string) (any, error) {
	decoded, err := DecodeJWT(input)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
