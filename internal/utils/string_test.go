package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly-10", Truncate("exactly-10", 10))
	assert.Equal(t, "this is...", Truncate("this is too long", 10))
	// multibyte runes are never split
	assert.Equal(t, "ごみ...", Truncate("ごみ箱のお知らせ", 5))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "a\nb", Snippet("  a\r\nb  ", 100))
	assert.Equal(t, "lon...", Snippet("longer than six", 6))
	assert.Equal(t, "", Snippet("   \r\n ", 100))
}
