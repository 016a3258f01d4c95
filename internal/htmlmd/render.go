package htmlmd

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	headingLine = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletLine  = regexp.MustCompile(`^[-*]\s+(.*)$`)
	numberLine  = regexp.MustCompile(`^\d+\.\s+(.*)$`)
	quoteLine   = regexp.MustCompile(`^>\s?(.*)$`)

	inlineImage  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	inlineLink   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	inlineBold   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineItalic = regexp.MustCompile(`\*([^*]+)\*`)
	inlineCode   = regexp.MustCompile("`([^`]+)`")
)

// Render converts local markup into the HTML fragment the remote system
// stores. The output is deterministic for a given input, which is what the
// export change-detection hashes rely on.
func Render(markup string) string {
	blocks := splitBlocks(markup)
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, renderBlock(block))
	}
	return strings.Join(out, "\n")
}

// splitBlocks separates markup into blocks at blank lines, keeping fenced
// code blocks whole.
func splitBlocks(markup string) []string {
	lines := strings.Split(strings.ReplaceAll(markup, "\r\n", "\n"), "\n")
	var blocks []string
	var current []string
	inFence := false
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			current = append(current, line)
			if inFence {
				inFence = false
				flush()
			} else {
				inFence = true
			}
			continue
		}
		if inFence {
			current = append(current, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

func renderBlock(block string) string {
	lines := strings.Split(block, "\n")

	if strings.HasPrefix(lines[0], "```") {
		body := lines[1:]
		if len(body) > 0 && strings.HasPrefix(body[len(body)-1], "```") {
			body = body[:len(body)-1]
		}
		return "<pre><code>" + html.EscapeString(strings.Join(body, "\n")) + "\n</code></pre>"
	}

	if m := headingLine.FindStringSubmatch(lines[0]); m != nil && len(lines) == 1 {
		level := len(m[1])
		return fmt.Sprintf("<h%d>%s</h%d>", level, renderInline(m[2]), level)
	}

	if allMatch(lines, bulletLine) {
		items := make([]string, 0, len(lines))
		for _, line := range lines {
			items = append(items, "<li>"+renderInline(bulletLine.FindStringSubmatch(line)[1])+"</li>")
		}
		return "<ul>\n" + strings.Join(items, "\n") + "\n</ul>"
	}

	if allMatch(lines, numberLine) {
		items := make([]string, 0, len(lines))
		for _, line := range lines {
			items = append(items, "<li>"+renderInline(numberLine.FindStringSubmatch(line)[1])+"</li>")
		}
		return "<ol>\n" + strings.Join(items, "\n") + "\n</ol>"
	}

	if allMatch(lines, quoteLine) {
		inner := make([]string, 0, len(lines))
		for _, line := range lines {
			inner = append(inner, renderInline(quoteLine.FindStringSubmatch(line)[1]))
		}
		return "<blockquote>\n<p>" + strings.Join(inner, "\n") + "</p>\n</blockquote>"
	}

	return "<p>" + renderInlineLines(lines) + "</p>"
}

func allMatch(lines []string, re *regexp.Regexp) bool {
	for _, line := range lines {
		if !re.MatchString(line) {
			return false
		}
	}
	return true
}

func renderInlineLines(lines []string) string {
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, renderInline(line))
	}
	return strings.Join(rendered, "\n")
}

// renderInline escapes the text and then applies inline markup. Images run
// before links because the two share bracket syntax.
func renderInline(text string) string {
	text = html.EscapeString(text)
	text = inlineImage.ReplaceAllString(text, `<img src="$2" alt="$1">`)
	text = inlineLink.ReplaceAllString(text, `<a href="$2">$1</a>`)
	text = inlineBold.ReplaceAllString(text, "<strong>$1</strong>")
	text = inlineItalic.ReplaceAllString(text, "<em>$1</em>")
	text = inlineCode.ReplaceAllString(text, "<code>$1</code>")
	return text
}
