package loader

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeJWT builds an unsigned test token from header and payload maps.
func makeJWT(t *testing.T, header, payload map[string]any) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(b)
	}
	return strings.Join([]string{enc(header), enc(payload), "c2lnbmF0dXJl"}, ".")
}

func TestIsJWT(t *testing.T) {
	valid := makeJWT(t,
		map[string]any{"alg": "HS256", "typ": "JWT"},
		map[string]any{"sub": "1234"},
	)

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid token", input: valid, want: true},
		{name: "bearer prefix", input: "Bearer " + valid, want: true},
		{name: "two parts", input: "aa.bb", want: false},
		{name: "four parts", input: "aa.bb.cc.dd", want: false},
		{name: "empty part", input: "aa..cc", want: false},
		{name: "header not json", input: "bm90anNvbg.bm90anNvbg.c2ln", want: false},
		{name: "plain text", input: "hello world", want: false},
		{name: "json object", input: `{"a": 1}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJWT(tt.input))
		})
	}
}

func TestDecodeJWT(t *testing.T) {
	token := makeJWT(t,
		map[string]any{"alg": "HS256", "typ": "JWT"},
		map[string]any{"sub": "1234", "admin": true},
	)

	got, err := DecodeJWT(token)
	require.NoError(t, err)

	header, ok := got["header"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "HS256", header["alg"])

	payload, ok := got["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1234", payload["sub"])
	assert.Equal(t, true, payload["admin"])

	assert.Equal(t, "c2lnbmF0dXJl", got["signature"])
}

func TestDecodeJWTErrors(t *testing.T) {
	_, err := DecodeJWT("only.two")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 parts")

	_, err = DecodeJWT("!!!.bbb.ccc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestLoadDetectsJWT(t *testing.T) {
	token := makeJWT(t,
		map[string]any{"alg": "none"},
		map[string]any{"sub": "u1"},
	)

	got, err := Load(token)
	require.NoError(t, err)

	doc, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, doc, "header")
	assert.Contains(t, doc, "payload")
	assert.Contains(t, doc, "signature")
}
