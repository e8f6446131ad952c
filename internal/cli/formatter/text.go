package formatter

import "strings"

// wrapText word-wraps text to the given width. Words longer than width are
// left on their own line.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len(current)+1+len(w) > width {
			lines = append(lines, current)
			current = w
		} else {
			current += " " + w
		}
	}
	return append(lines, current)
}

// indentWrapped wraps each paragraph of text to width and indents every
// resulting line. Blank lines between paragraphs are preserved.
func indentWrapped(text string, width int, indent string) string {
	var b strings.Builder
	for i, para := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		lines := wrapText(para, width-len(indent))
		for j, line := range lines {
			if j > 0 {
				b.WriteString("\n")
			}
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
	return b.String()
}

// Markdown bold markers as produced by the prompt templates.
const boldMarker = "**"

// RenderAdviceText converts the provider's markdown-ish advice into terminal
// text: "**X**" spans are bolded and paragraphs are wrapped to width.
func RenderAdviceText(text string, width int) string {
	wrapped := indentWrapped(strings.TrimSpace(text), width, "")
	return renderBoldSpans(wrapped)
}

func renderBoldSpans(s string) string {
	parts := strings.Split(s, boldMarker)
	if len(parts) < 3 {
		return s
	}
	var b strings.Builder
	for i, p := range parts {
		// An unmatched trailing marker leaves the last part plain.
		if i%2 == 1 && i < len(parts)-1 {
			b.WriteString(Bold(p))
		} else {
			b.WriteString(p)
		}
	}
	return b.String()
}
