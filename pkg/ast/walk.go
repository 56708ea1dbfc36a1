package ast

import "strings"

// Walk visits nodes depth-first in document order. Returning false from fn
// skips the children of that node.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		switch n := n.(type) {
		case *List:
			for _, item := range n.Items {
				Walk(item.Children, fn)
			}
		case *Admonition:
			Walk(n.Children, fn)
		case *Quote:
			Walk(n.Children, fn)
		case *Toggle:
			Walk(n.Children, fn)
		}
	}
}

// BodyText returns the readable text of a body, one line per text-bearing
// node. Code listings are included verbatim; captions are not.
func BodyText(nodes []Node) string {
	var lines []string
	add := func(spans []Span) {
		if text := strings.TrimSpace(ToPlainText(spans)); text != "" {
			lines = append(lines, text)
		}
	}
	Walk(nodes, func(n Node) bool {
		switch n := n.(type) {
		case *Heading:
			add(n.Text)
		case *Paragraph:
			add(n.Text)
		case *Code:
			if strings.TrimSpace(n.Code) != "" {
				lines = append(lines, n.Code)
			}
		case *Table:
			for _, row := range n.Rows {
				cells := make([]string, 0, len(row.Cells))
				for _, cell := range row.Cells {
					cells = append(cells, strings.TrimSpace(ToPlainText(cell)))
				}
				lines = append(lines, strings.Join(cells, "\t"))
			}
		case *Bookmark:
			if n.Title != "" {
				lines = append(lines, n.Title)
			}
		case *Admonition:
			add(n.Title)
		case *Toggle:
			add(n.Summary)
		}
		return true
	})
	return strings.Join(lines, "\n")
}

// WordCount counts whitespace-separated words in the readable text of a body.
func WordCount(nodes []Node) int {
	return len(strings.Fields(BodyText(nodes)))
}
