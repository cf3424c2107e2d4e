package share

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "object", value: map[string]any{"a": 1.0, "b": []any{true, nil}}},
		{name: "array", value: []any{1.0, "two", 3.0}},
		{name: "string", value: "hello"},
		{name: "number", value: 4.25},
		{name: "null", value: nil},
		{name: "unicode", value: map[string]any{"greeting": "안녕하세요", "emoji": "👋"}},
		{name: "nested", value: map[string]any{"a": map[string]any{"b": map[string]any{"c": "deep"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := Encode(tt.value)
			require.NoError(t, err)
			assert.NotContains(t, token, "=")
			assert.NotContains(t, token, "+")
			assert.NotContains(t, token, "/")

			got, err := Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestDecodePaddedToken(t *testing.T) {
	// Tokens produced by other encoders may keep base64 padding.
	padded := base64.URLEncoding.EncodeToString([]byte(`{"x":1}`))
	require.Contains(t, padded, "=")

	got, err := Decode(padded)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1.0}, got)
}

func TestDecodePercentEncodedToken(t *testing.T) {
	token, err := Encode(map[string]any{"q": "a b&c"})
	require.NoError(t, err)

	got, err := Decode(url.QueryEscape(token + "=="))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"q": "a b&c"}, got)
}

func TestDecodeLiteralJSONFallback(t *testing.T) {
	got, err := Decode(`{"raw": true}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"raw": true}, got)
}

func TestDecodeSurroundingWhitespace(t *testing.T) {
	token, err := Encode([]any{1.0})
	require.NoError(t, err)

	got, err := Decode("  " + token + "\n")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0}, got)
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "whitespace only", token: "   "},
		{name: "garbage", token: "!!not base64, not json!!"},
		{name: "base64 of non-json", token: base64.RawURLEncoding.EncodeToString([]byte("not json"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode share token")
		})
	}
}
