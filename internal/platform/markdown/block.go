package markdown

import "strings"

// Block is a generated region of a note delimited by two marker lines. Text
// outside the markers belongs to the user and is never rewritten.
type Block struct {
	Start string
	End   string
}

// Upsert replaces the block's content in body, or appends the block when the
// markers are missing or out of order.
func (b Block) Upsert(body, generated string) string {
	section := b.Start + "\n" + strings.TrimRight(generated, "\n") + "\n" + b.End

	if start := strings.Index(body, b.Start); start >= 0 {
		if rel := strings.Index(body[start:], b.End); rel >= 0 {
			end := start + rel + len(b.End)
			return body[:start] + section + body[end:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return section + "\n"
	case strings.HasSuffix(body, "\n\n"):
		return body + section + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + section + "\n"
	default:
		return body + "\n\n" + section + "\n"
	}
}

// Contains reports whether body already carries the block.
func (b Block) Contains(body string) bool {
	start := strings.Index(body, b.Start)
	return start >= 0 && strings.Contains(body[start:], b.End)
}

// UpsertNote rewrites the block inside a full note and merges meta into its
// frontmatter.
func UpsertNote(content string, b Block, generated string, meta map[string]any) (string, error) {
	note, err := ParseNote(content)
	if err != nil {
		return "", err
	}
	note.Body = b.Upsert(note.Body, generated)
	note.Merge(meta)
	return note.Render()
}
