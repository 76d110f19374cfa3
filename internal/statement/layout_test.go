package statement

import (
	"reflect"
	"testing"
)

func TestReconstructLines(t *testing.T) {
	t.Run("groups fragments into rows by rounded Y", func(t *testing.T) {
		page := Page{
			Number: 1,
			Fragments: []Fragment{
				{Text: "AAPL", X: 10, Y: 700.2},
				{Text: "Apple Inc", X: 80, Y: 699.8}, // rounds to the same row
				{Text: "12.5%", X: 200, Y: 700.4},
			},
		}

		lines := ReconstructLines(page)
		want := []string{"AAPL Apple Inc 12.5%"}
		if !reflect.DeepEqual(lines, want) {
			t.Errorf("ReconstructLines() = %v, want %v", lines, want)
		}
	})

	t.Run("orders rows top of page first", func(t *testing.T) {
		// PDF Y grows upward; the heading has the largest coordinate.
		page := Page{
			Fragments: []Fragment{
				{Text: "bottom row", Y: 100},
				{Text: "top row", Y: 750},
				{Text: "middle row", Y: 400},
			},
		}

		lines := ReconstructLines(page)
		want := []string{"top row", "middle row", "bottom row"}
		if !reflect.DeepEqual(lines, want) {
			t.Errorf("ReconstructLines() = %v, want %v", lines, want)
		}
	})

	t.Run("concatenates within a row in extraction order", func(t *testing.T) {
		page := Page{
			Fragments: []Fragment{
				{Text: "first", Y: 500},
				{Text: "second", Y: 500},
				{Text: "third", Y: 500},
			},
		}

		lines := ReconstructLines(page)
		if len(lines) != 1 || lines[0] != "first second third" {
			t.Errorf("ReconstructLines() = %v, want one row %q", lines, "first second third")
		}
	})

	t.Run("skips empty fragments", func(t *testing.T) {
		page := Page{
			Fragments: []Fragment{
				{Text: "  ", Y: 500},
				{Text: "only", Y: 400},
			},
		}

		lines := ReconstructLines(page)
		want := []string{"only"}
		if !reflect.DeepEqual(lines, want) {
			t.Errorf("ReconstructLines() = %v, want %v", lines, want)
		}
	})

	t.Run("empty page yields no lines", func(t *testing.T) {
		if lines := ReconstructLines(Page{}); len(lines) != 0 {
			t.Errorf("ReconstructLines(empty) = %v, want none", lines)
		}
	})
}
