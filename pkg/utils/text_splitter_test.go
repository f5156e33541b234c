package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	t.Run("short text stays whole", func(t *testing.T) {
		chunks := SplitText("hello world", 100, 10)
		if len(chunks) != 1 || chunks[0] != "hello world" {
			t.Errorf("chunks = %v", chunks)
		}
	})

	t.Run("chunks respect size", func(t *testing.T) {
		text := strings.Repeat("a", 250)
		chunks := SplitText(text, 100, 20)
		for i, c := range chunks {
			if len(c) > 100 {
				t.Errorf("chunk %d has length %d", i, len(c))
			}
		}
	})

	t.Run("neighbours overlap", func(t *testing.T) {
		text := strings.Repeat("abcdefghij", 30) // 300 chars
		chunks := SplitText(text, 100, 20)
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		first := chunks[0]
		second := chunks[1]
		if !strings.HasPrefix(second, first[len(first)-20:]) {
			t.Errorf("second chunk does not start with the last 20 chars of the first")
		}
	})

	t.Run("no content lost", func(t *testing.T) {
		text := strings.Repeat("x", 95) + strings.Repeat("y", 95) + strings.Repeat("z", 95)
		chunks := SplitText(text, 100, 20)
		joined := strings.Join(chunks, "")
		for _, r := range "xyz" {
			if strings.Count(joined, string(r)) < 95 {
				t.Errorf("lost some %c characters", r)
			}
		}
		last := chunks[len(chunks)-1]
		if !strings.HasSuffix(text, last) {
			t.Errorf("last chunk is not a suffix of the input")
		}
	})

	t.Run("zero chunk size returns input", func(t *testing.T) {
		chunks := SplitText("anything", 0, 0)
		if len(chunks) != 1 || chunks[0] != "anything" {
			t.Errorf("chunks = %v", chunks)
		}
	})

	t.Run("overlap larger than chunk size still advances", func(t *testing.T) {
		text := strings.Repeat("a", 50)
		chunks := SplitText(text, 10, 15)
		if len(chunks) != 5 {
			t.Errorf("expected 5 non-overlapping chunks, got %d", len(chunks))
		}
	})

	t.Run("multibyte runes not split", func(t *testing.T) {
		text := strings.Repeat("héllo wörld ", 30)
		for _, c := range SplitText(text, 50, 10) {
			if !strings.Contains(text, c) {
				t.Errorf("chunk %q is not a substring of the input", c)
			}
		}
	})
}
