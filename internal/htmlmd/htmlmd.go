// Package htmlmd converts between the help-desk system's HTML bodies and
// the lightweight markup stored locally. Import uses ToMarkup to turn
// remote HTML into editable text; Export uses Render to produce the HTML
// payload that is compared against and pushed to the remote system.
package htmlmd

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// $IMAGE_ROOT is the placeholder authors write in local image references;
// Export rewrites it to the configured CDN path before rendering.
var imageRootPattern = regexp.MustCompile(`(!\[.*?\]\()\$IMAGE_ROOT(.*?(?:\s?".*?")?\))`)

// RewriteImageRoot replaces the $IMAGE_ROOT placeholder inside markup image
// references with the given CDN path. An empty cdn leaves the body alone.
func RewriteImageRoot(cdn, body string) string {
	if cdn == "" {
		return body
	}
	return imageRootPattern.ReplaceAllString(body, "${1}"+cdn+"${2}")
}

// ToMarkup converts an HTML fragment into the local markup format.
// Unknown elements contribute their text content; structure that has no
// markup equivalent is flattened rather than dropped.
func ToMarkup(htmlText string) (string, error) {
	root, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	var b strings.Builder
	walkNode(&b, root, walkState{})
	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

type walkState struct {
	listDepth int
	ordered   bool
	itemIndex int
}

func walkNode(b *strings.Builder, n *html.Node, st walkState) {
	switch n.Type {
	case html.TextNode:
		text := collapseSpace(n.Data)
		if strings.TrimSpace(text) == "" {
			// Whitespace between tags only matters mid-line.
			if midLine(b) && !strings.HasSuffix(b.String(), " ") {
				b.WriteString(" ")
			}
			return
		}
		if !midLine(b) {
			text = strings.TrimLeft(text, " ")
		}
		b.WriteString(text)
		return
	case html.ElementNode:
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			b.WriteString(strings.Repeat("#", level) + " ")
			walkChildren(b, n, st)
			b.WriteString("\n\n")
			return
		case "p":
			walkChildren(b, n, st)
			b.WriteString("\n\n")
			return
		case "br":
			b.WriteString("\n")
			return
		case "strong", "b":
			b.WriteString("**")
			walkChildren(b, n, st)
			b.WriteString("**")
			return
		case "em", "i":
			b.WriteString("*")
			walkChildren(b, n, st)
			b.WriteString("*")
			return
		case "code":
			if n.Parent != nil && n.Parent.Data == "pre" {
				walkChildren(b, n, st)
				return
			}
			b.WriteString("`")
			walkChildren(b, n, st)
			b.WriteString("`")
			return
		case "pre":
			b.WriteString("```\n")
			b.WriteString(rawText(n))
			if !strings.HasSuffix(rawText(n), "\n") {
				b.WriteString("\n")
			}
			b.WriteString("```\n\n")
			return
		case "a":
			href := attrValue(n, "href")
			b.WriteString("[")
			walkChildren(b, n, st)
			b.WriteString("](" + href + ")")
			return
		case "img":
			b.WriteString("![" + attrValue(n, "alt") + "](" + attrValue(n, "src") + ")")
			return
		case "ul":
			st.listDepth++
			st.ordered = false
			walkChildren(b, n, st)
			if st.listDepth == 1 {
				b.WriteString("\n")
			}
			return
		case "ol":
			st.listDepth++
			st.ordered = true
			// State is passed by value, so items are numbered here rather
			// than in the li case.
			index := 0
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "li" {
					index++
					st.itemIndex = index
				}
				walkNode(b, c, st)
			}
			if st.listDepth == 1 {
				b.WriteString("\n")
			}
			return
		case "li":
			indent := strings.Repeat("  ", max(st.listDepth-1, 0))
			if st.ordered {
				b.WriteString(fmt.Sprintf("%s%d. ", indent, st.itemIndex))
			} else {
				b.WriteString(indent + "- ")
			}
			walkChildren(b, n, st)
			b.WriteString("\n")
			return
		case "blockquote":
			var inner strings.Builder
			walkChildren(&inner, n, st)
			for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
				b.WriteString("> " + line + "\n")
			}
			b.WriteString("\n")
			return
		case "script", "style", "head":
			return
		}
	}
	walkChildren(b, n, st)
}

func walkChildren(b *strings.Builder, n *html.Node, st walkState) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNode(b, c, st)
	}
}

func rawText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// midLine reports whether the builder is partway through a line of output.
func midLine(b *strings.Builder) bool {
	return b.Len() > 0 && !strings.HasSuffix(b.String(), "\n")
}

var spaceRun = regexp.MustCompile(`[ \t\r\n]+`)

func collapseSpace(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}
