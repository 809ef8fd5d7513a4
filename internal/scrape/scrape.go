// Package scrape extracts structured records from registries that only
// publish HTML search results. The shape handled here is the justice.cz
// layout: a search-results division holding an ordered list of results,
// each with a details table of header/value rows.
package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractItems parses a search-results page into one field map per result.
// Header cells become keys; date-valued rows ("den" headers) are normalised
// to ISO 8601 and registration numbers lose their grouping spaces.
func ExtractItems(page string) []map[string]string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}
	var items []map[string]string
	for _, results := range findAll(doc, "div", "search-results") {
		for _, li := range findAll(results, "li", "result") {
			item := make(map[string]string)
			for _, table := range findAll(li, "table", "result-details") {
				for _, row := range findAll(table, "tr", "") {
					processRow(row, item)
				}
			}
			items = append(items, item)
		}
	}
	return items
}

func processRow(row *html.Node, item map[string]string) {
	heads := findAll(row, "th", "")
	cells := findAll(row, "td", "")
	for i := 0; i < len(heads) && i < len(cells); i++ {
		h := Text(heads[i])
		d := Text(cells[i])
		switch {
		case hasWord(strings.ToLower(h), "den"):
			item[h] = isoDate(d)
		case strings.Contains(h, "IČO"):
			item[h] = strings.ReplaceAll(d, " ", "")
		default:
			item[h] = d
		}
	}
}

// Text flattens an element's descendant text, collapsing whitespace the way
// a browser renders it.
func Text(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// Flatten parses an HTML fragment and returns its rendered text.
func Flatten(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return Text(doc)
}

// findAll returns the elements with the given tag whose class attribute
// contains class (any class when empty), in document order.
func findAll(n *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && (class == "" || hasClass(n, class)) {
			out = append(out, n)
			// Results do not nest.
			if class != "" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if strings.Contains(c, class) {
				return true
			}
		}
	}
	return false
}

func hasWord(s, word string) bool {
	for _, w := range strings.Fields(s) {
		if strings.Trim(w, ":") == word {
			return true
		}
	}
	return false
}
