package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdownFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "## Overview\n\ntext", want: "## Overview\n\ntext"},
		{name: "markdown fence", in: "```markdown\n## Overview\n```", want: "## Overview"},
		{name: "md fence with padding", in: "\n```md\n# Title\n\nbody\n```\n", want: "# Title\n\nbody"},
		{name: "inner code block kept", in: "```markdown\n## Run\n\n```sh\nmake\n```\n```", want: "## Run\n\n```sh\nmake\n```"},
		{name: "other language untouched", in: "```go\nfunc main() {}\n```", want: "```go\nfunc main() {}\n```"},
		{name: "fence without newline", in: "```markdown", want: "```markdown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkdownFence(tt.in))
		})
	}
}
