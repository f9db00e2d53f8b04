package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// Note is a markdown document with an optional YAML frontmatter header.
type Note struct {
	Meta map[string]any
	Body string
}

// ParseNote splits content into frontmatter and body. Content without a
// leading fence is all body.
func ParseNote(content string) (Note, error) {
	if !strings.HasPrefix(content, fence) {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := strings.TrimPrefix(content, fence)
	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return Note{}, fmt.Errorf("invalid frontmatter: missing closing fence")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return Note{}, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return Note{Meta: meta, Body: rest[idx+len("\n"+fence):]}, nil
}

// Render writes the frontmatter (keys sorted by yaml.v3) followed by a blank
// line and the body.
func (n Note) Render() (string, error) {
	buf := bytes.Buffer{}
	if len(n.Meta) > 0 {
		raw, err := yaml.Marshal(n.Meta)
		if err != nil {
			return "", fmt.Errorf("marshal frontmatter: %w", err)
		}
		buf.WriteString(fence)
		buf.Write(raw)
		buf.WriteString(fence)
		if !strings.HasPrefix(n.Body, "\n") {
			buf.WriteString("\n")
		}
	}
	buf.WriteString(n.Body)
	return buf.String(), nil
}

// Merge copies keys from other that n does not set itself.
func (n *Note) Merge(other map[string]any) {
	if n.Meta == nil {
		n.Meta = map[string]any{}
	}
	for k, v := range other {
		if _, ok := n.Meta[k]; !ok {
			n.Meta[k] = v
		}
	}
}

// SetBlock replaces the generated block called name, or appends it when the
// body has none. Text outside the markers is left alone.
func (n *Note) SetBlock(name, generated string) {
	start, end := blockMarkers(name)
	block := start + "\n" + strings.TrimRight(generated, "\n") + "\n" + end

	from := strings.Index(n.Body, start)
	to := strings.Index(n.Body, end)
	if from >= 0 && to > from {
		n.Body = n.Body[:from] + block + n.Body[to+len(end):]
		return
	}
	switch {
	case strings.TrimSpace(n.Body) == "":
		n.Body = block + "\n"
	case strings.HasSuffix(n.Body, "\n"):
		n.Body += "\n" + block + "\n"
	default:
		n.Body += "\n\n" + block + "\n"
	}
}

// Block returns the content of the generated block called name.
func (n Note) Block(name string) (string, bool) {
	start, end := blockMarkers(name)
	from := strings.Index(n.Body, start)
	to := strings.Index(n.Body, end)
	if from < 0 || to <= from {
		return "", false
	}
	return strings.Trim(n.Body[from+len(start):to], "\n"), true
}

func blockMarkers(name string) (string, string) {
	return "<!-- wellness:" + name + ":start -->", "<!-- wellness:" + name + ":end -->"
}

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

const maxSlug = 48

// Slug turns a label into a lowercase, dash separated file name part.
func Slug(label string) string {
	s := nonAlphaNum.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
	if len(s) > maxSlug {
		s = s[:maxSlug]
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return "note"
	}
	return s
}
