package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Note is a markdown document with optional YAML frontmatter.
type Note struct {
	Meta map[string]any
	Body string
}

// ParseNote splits content into frontmatter and body. CRLF line endings are
// normalized. A note without an opening fence has empty Meta.
func ParseNote(content string) (Note, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := content[len(fence)+1:]

	var raw, body string
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		body = rest[len(fence)+1:]
	case rest == fence:
	default:
		idx := strings.Index(rest, "\n"+fence+"\n")
		if idx < 0 {
			if !strings.HasSuffix(rest, "\n"+fence) {
				return Note{}, fmt.Errorf("frontmatter is not closed")
			}
			idx = len(rest) - len(fence) - 1
			raw = rest[:idx]
		} else {
			raw = rest[:idx]
			body = rest[idx+len(fence)+2:]
		}
	}

	meta := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
			return Note{}, fmt.Errorf("decode frontmatter: %w", err)
		}
		if meta == nil {
			meta = map[string]any{}
		}
	}
	return Note{Meta: meta, Body: body}, nil
}

// Render writes the note back. Frontmatter is emitted only when Meta has keys.
func (n Note) Render() (string, error) {
	if len(n.Meta) == 0 {
		return n.Body, nil
	}
	raw, err := yaml.Marshal(n.Meta)
	if err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(fence + "\n")
	sb.Write(raw)
	sb.WriteString(fence + "\n")
	if n.Body != "" && !strings.HasPrefix(n.Body, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(n.Body)
	return sb.String(), nil
}

// Merge copies meta over the note's frontmatter keys.
func (n *Note) Merge(meta map[string]any) {
	if len(meta) == 0 {
		return
	}
	if n.Meta == nil {
		n.Meta = make(map[string]any, len(meta))
	}
	for k, v := range meta {
		n.Meta[k] = v
	}
}
