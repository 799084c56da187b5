package summarizer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tube-notes/internal/transcript"
)

func TestWriteNotesDocx(t *testing.T) {
	out := filepath.Join(t.TempDir(), "notes.docx")
	summary := "# Video Title\n\n## Key Insights\n- **Go** is fast\n- channels\n\n---\nPlain paragraph"
	fragments := []transcript.Fragment{
		{Text: "hello", Start: 0},
		{Text: "world", Start: 75 * time.Second},
	}

	require.NoError(t, WriteNotesDocx("abc123", summary, fragments, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	// docx is a zip container
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{75 * time.Second, "1:15"},
		{3*time.Hour + 4*time.Minute + 5*time.Second + 900*time.Millisecond, "3:04:05"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTimestamp(tt.in))
		})
	}
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "bold and code", cleanMarkdownInline("**bold** and `code`"))
}
