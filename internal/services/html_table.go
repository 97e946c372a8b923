package services

import (
	"strings"

	"golang.org/x/net/html"
)

// extractHTMLTable pulls the first <table> out of markup and flattens it into
// a header row plus data rows. Reports false when the text carries no table.
func extractHTMLTable(rawHTML string) (TableData, bool) {
	if !strings.Contains(strings.ToLower(rawHTML), "<table") {
		return TableData{}, false
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return TableData{}, false
	}

	table := findFirstTable(doc)
	if table == nil {
		return TableData{}, false
	}

	grid := tableGrid(table)
	if len(grid) == 0 {
		return TableData{}, false
	}

	return TableData{Headers: grid[0], Rows: grid[1:]}, true
}

func findFirstTable(node *html.Node) *html.Node {
	if node.Type == html.ElementNode && node.Data == "table" {
		return node
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if table := findFirstTable(child); table != nil {
			return table
		}
	}

	return nil
}

func tableGrid(table *html.Node) [][]string {
	var grid [][]string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			if cells := rowCells(node); len(cells) > 0 {
				grid = append(grid, cells)
			}
			return
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(table)

	return grid
}

func rowCells(row *html.Node) []string {
	var cells []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && (node.Data == "td" || node.Data == "th") {
			cells = append(cells, cleanText(nodeText(node)))
			return
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(row)

	return cells
}

func nodeText(node *html.Node) string {
	var builder strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			builder.WriteString(node.Data)
			builder.WriteString(" ")
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)

	return builder.String()
}
