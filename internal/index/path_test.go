package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     string
	}{
		{name: "root", segments: nil, want: "$"},
		{name: "simple key", segments: []Segment{KeySegment("user")}, want: "$.user"},
		{
			name:     "nested keys",
			segments: []Segment{KeySegment("user"), KeySegment("name")},
			want:     "$.user.name",
		},
		{name: "index", segments: []Segment{IndexSegment(3)}, want: "$[3]"},
		{
			name:     "key then index",
			segments: []Segment{KeySegment("items"), IndexSegment(0)},
			want:     "$.items[0]",
		},
		{
			name:     "index then key",
			segments: []Segment{IndexSegment(1), KeySegment("id")},
			want:     "$[1].id",
		},
		{
			name:     "key with space",
			segments: []Segment{KeySegment("odd key")},
			want:     `$["odd key"]`,
		},
		{
			name:     "key with dot",
			segments: []Segment{KeySegment("a.b")},
			want:     `$["a.b"]`,
		},
		{
			name:     "key with quote",
			segments: []Segment{KeySegment(`say "hi"`)},
			want:     `$["say \"hi\""]`,
		},
		{
			name:     "key with backslash",
			segments: []Segment{KeySegment(`back\slash`)},
			want:     `$["back\\slash"]`,
		},
		{
			name:     "empty key",
			segments: []Segment{KeySegment("")},
			want:     `$[""]`,
		},
		{
			name:     "leading digit key",
			segments: []Segment{KeySegment("0xff")},
			want:     `$["0xff"]`,
		},
		{
			name:     "underscore and dollar keys",
			segments: []Segment{KeySegment("_priv"), KeySegment("$ref")},
			want:     "$._priv.$ref",
		},
		{
			name:     "unicode key",
			segments: []Segment{KeySegment("키")},
			want:     `$["키"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPath(tt.segments))
		})
	}
}
