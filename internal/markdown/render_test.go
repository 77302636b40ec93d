package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"heading", "# Hello", "<h1>Hello</h1>"},
		{"emphasis", "some **bold** text", "<strong>bold</strong>"},
		{"link", "[halo](https://halo.run)", `<a href="https://halo.run">halo</a>`},
		{"gfm strikethrough", "~~gone~~", "<del>gone</del>"},
		{"raw html passes through", "<div>x</div>", "<div>x</div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.input)
			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
		})
	}
}
