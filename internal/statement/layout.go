package statement

import (
	"math"
	"sort"
	"strings"
)

// Fragment is one positioned text run extracted from a PDF page. PDFs
// store text as positioned runs, not lines, so reading order has to be
// reconstructed from coordinates.
type Fragment struct {
	Text string
	X    float64
	Y    float64
}

// Page holds the fragments of a single page in extraction order.
type Page struct {
	Number    int
	Fragments []Fragment
}

// Document is the positioned-text view of an uploaded statement.
// Pages holds at most maxPages entries; PageCount is the full document
// page count.
type Document struct {
	PageCount int
	Pages     []Page
}

// ReconstructLines groups a page's fragments into human reading order.
// Fragments are bucketed into rows by rounding the vertical coordinate
// to an integer key, concatenated within a row in extraction order, and
// rows are emitted top of page first (PDF Y grows upward, so descending
// key order).
func ReconstructLines(p Page) []string {
	rows := make(map[int][]string)
	keys := make([]int, 0)

	for _, f := range p.Fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		key := int(math.Round(f.Y))
		if _, ok := rows[key]; !ok {
			keys = append(keys, key)
		}
		rows[key] = append(rows[key], text)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, strings.Join(rows[key], " "))
	}
	return lines
}
