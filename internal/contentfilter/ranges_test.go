package contentfilter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmojiRangeBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		r     rune
		emoji bool
	}{
		{"first emoticon", 0x1F600, true},
		{"last emoticon", 0x1F64F, true},
		{"past emoticon block", 0x1F650, false},
		{"first pictograph", 0x1F300, true},
		{"regional indicator", 0x1F1E6, true},
		{"variation selector-16", 0xFE0F, true},
		{"mahjong tile", 0x1F004, true},
		{"extended-A start", 0x1FA70, true},
		{"extended-A end", 0x1FAFF, true},
		{"heavy plus sign", 0x2795, true}, // dingbats block
		{"latin a", 'a', false},
		{"digit", '7', false},
		{"cjk ideograph", 0x4E2D, false},
		{"space", ' ', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.emoji, isEmoji(tt.r))
		})
	}
}

func TestIllegalRangeBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		r       rune
		illegal bool
	}{
		{"nul", 0x00, true},
		{"backspace", 0x08, true},
		{"tab allowed", '\t', false},
		{"newline allowed", '\n', false},
		{"vertical tab", 0x0B, true},
		{"form feed", 0x0C, true},
		{"carriage return allowed", '\r', false},
		{"shift out", 0x0E, true},
		{"unit separator", 0x1F, true},
		{"space", 0x20, false},
		{"del", 0x7F, true},
		{"first printable after del", 0x80, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.illegal, isIllegal(tt.r))
		})
	}
}

func TestLoadDenylist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denylist.txt")
	content := "# comment line\nFoo\n\n  bar  \nBAZ\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	words, err := LoadDenylist(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar", "baz"}, words)
}

func TestLoadDenylist_Missing(t *testing.T) {
	_, err := LoadDenylist(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
