package models_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
)

func TestIsTextContent(t *testing.T) {
	t.Run("plain markdown is text", func(t *testing.T) {
		assert.True(t, models.IsTextContent([]byte("# Notes\n\nhello world\n")))
	})

	t.Run("empty buffer is text", func(t *testing.T) {
		assert.True(t, models.IsTextContent(nil))
		assert.True(t, models.IsTextContent([]byte{}))
	})

	t.Run("utf8 multibyte is text", func(t *testing.T) {
		assert.True(t, models.IsTextContent([]byte("héllo wörld — ünïcode ✓")))
	})

	t.Run("tabs and line endings are text", func(t *testing.T) {
		assert.True(t, models.IsTextContent([]byte("a\tb\r\nc\n")))
	})

	t.Run("null-heavy buffer is binary", func(t *testing.T) {
		data := append([]byte("PNG"), bytes.Repeat([]byte{0}, 100)...)
		assert.False(t, models.IsTextContent(data))
	})

	t.Run("threshold is strict", func(t *testing.T) {
		// Exactly 5% control bytes in a 100-byte sample: not text.
		data := append(bytes.Repeat([]byte("a"), 95), bytes.Repeat([]byte{1}, 5)...)
		assert.False(t, models.IsTextContent(data))

		// Just under 5%: text.
		data = append(bytes.Repeat([]byte("a"), 96), bytes.Repeat([]byte{1}, 4)...)
		assert.True(t, models.IsTextContent(data))
	})

	t.Run("only first 1KiB is sampled", func(t *testing.T) {
		data := append(bytes.Repeat([]byte("a"), 1024), bytes.Repeat([]byte{0}, 4096)...)
		assert.True(t, models.IsTextContent(data))
	})

	t.Run("deterministic", func(t *testing.T) {
		data := []byte("some content\x00with a null")
		first := models.IsTextContent(data)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, models.IsTextContent(data))
		}
	})
}
