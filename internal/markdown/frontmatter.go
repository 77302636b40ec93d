// Package markdown handles the two pure document transforms: splitting and
// joining YAML front matter, and rendering markdown to HTML.
package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Split separates a leading YAML front matter block from the body. A
// document with no block yields an empty matter map and the input as body.
func Split(raw string) (map[string]any, string, error) {
	if !strings.HasPrefix(raw, delimiter+"\n") && raw != delimiter {
		return map[string]any{}, raw, nil
	}

	rest := strings.TrimPrefix(raw, delimiter+"\n")
	block, body, found := strings.Cut(rest, "\n"+delimiter+"\n")
	if !found {
		// An opening delimiter with no closing one is not front matter.
		return map[string]any{}, raw, nil
	}

	matter := map[string]any{}
	if err := yaml.Unmarshal([]byte(block), &matter); err != nil {
		return nil, "", fmt.Errorf("parse front matter: %w", err)
	}
	if matter == nil {
		matter = map[string]any{}
	}

	return matter, body, nil
}

// Join is the inverse of Split. Nil-valued keys serialize as explicit empty
// scalars ("key:") instead of being dropped, so a previously set field can
// be cleared on the remote side.
func Join(matter map[string]any, body string) (string, error) {
	if len(matter) == 0 {
		return body, nil
	}

	var node yaml.Node
	if err := node.Encode(matter); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	nullsToEmpty(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", fmt.Errorf("serialize front matter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(delimiter)
	sb.WriteString("\n")
	sb.Write(out)
	sb.WriteString(delimiter)
	sb.WriteString("\n")
	sb.WriteString(body)
	return sb.String(), nil
}

// nullsToEmpty rewrites null scalars so the emitter prints nothing after
// the colon rather than the literal "null".
func nullsToEmpty(node *yaml.Node) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		node.Value = ""
		node.Style = 0
	}
	for _, child := range node.Content {
		nullsToEmpty(child)
	}
}
