package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 4, 8, "░░░░░░░░   0%"},
		{2, 4, 8, "████░░░░  50%"},
		{4, 4, 8, "████████ 100%"},
		{0, 0, 2, "░░░░░   0%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d, %d, %d) = %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { _ = SetTheme("classic") })

	require.NoError(t, SetTheme("mono"))
	assert.Equal(t, "[x]", Current().BoxChecked)

	require.NoError(t, SetTheme("NEON"))
	assert.Equal(t, "◼", Current().BoxChecked)

	require.NoError(t, SetTheme(""))
	assert.Equal(t, "☑", Current().BoxChecked)

	assert.Error(t, SetTheme("solarized"))
}

func TestPanel_MonoBorder(t *testing.T) {
	t.Cleanup(func() { _ = SetTheme("classic") })
	require.NoError(t, SetTheme("mono"))

	var buf bytes.Buffer
	Panel(&buf, []string{"Todos", "no items"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "+-"))
	assert.Contains(t, lines[1], "| Todos")
	assert.Contains(t, lines[2], "| no items")
}

func TestStatusLines(t *testing.T) {
	var out, errOut bytes.Buffer
	OK(&out, "added")
	Fail(&errOut, "boom")

	assert.Contains(t, out.String(), "added")
	assert.Contains(t, errOut.String(), "✖ boom")
}
