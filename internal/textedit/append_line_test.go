package textedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendLine(t *testing.T) {
	type test struct {
		name       string
		original   []string
		line       string
		expected   []string
		expectSkip bool
	}
	tests := []test{
		{
			name:     "append to empty file",
			line:     "new line",
			expected: []string{"new line\n"},
		},
		{
			name:     "append to non-empty file",
			original: []string{"line 1\n", "line 2\n"},
			line:     "new line",
			expected: []string{"line 1\n", "line 2\n", "new line\n"},
		},
		{
			name:       "no-op already exists",
			original:   []string{"line 1\n", "new line\n", "line 2\n"},
			line:       "new line",
			expectSkip: true,
		},
		{
			name:       "retain existing whitespace",
			original:   []string{"line 1\n", "\tnew line\n", "line 2\n"},
			line:       "new line",
			expectSkip: true,
		},
		{
			name:     "commented copy does not count",
			original: []string{"# deb http://apt.rubikpi.ai ppa main\n"},
			line:     "deb http://apt.rubikpi.ai ppa main",
			expected: []string{"# deb http://apt.rubikpi.ai ppa main\n", "deb http://apt.rubikpi.ai ppa main\n"},
		},
		{
			name:     "prefix match does not count",
			original: []string{"deb http://apt.rubikpi.ai ppa main contrib\n"},
			line:     "deb http://apt.rubikpi.ai ppa main",
			expected: []string{"deb http://apt.rubikpi.ai ppa main contrib\n", "deb http://apt.rubikpi.ai ppa main\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			editor := AppendLine(tt.line)
			testEditor(t, tt.original, editor, tt.expected, tt.expectSkip)
			assert.Equal(t, tt.expectSkip, editor.Found())
		})
	}
}

func TestAppendLine_PanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { AppendLine("  \t") })
}
