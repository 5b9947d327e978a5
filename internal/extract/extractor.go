// Package extract lifts raw tabular blocks out of bulletin PDFs.
//
// It uses ledongthuc/pdf (pure Go, no CGO) for positioned text extraction.
// Column recovery works from word geometry: the line that segments into the
// most cells anchors the column grid, and every other line's words are
// binned against those anchors. Each page yields at most one independent
// block; cross-page stitching is the normalizer's concern.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"licencewatch/internal/domain"
	"licencewatch/internal/port"
)

// defaultColumnGap is the minimum horizontal whitespace, in points, that
// separates two columns. Word spacing inside a cell stays well under it.
const defaultColumnGap = 8.0

// PDFExtractor implements port.TableExtractor for text-table PDFs.
type PDFExtractor struct {
	gap float64
}

// NewPDFExtractor creates a PDFExtractor with the default column gap.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{gap: defaultColumnGap}
}

var _ port.TableExtractor = (*PDFExtractor)(nil)

// Extract produces one RawTable per page that carries tabular text.
// Returns domain.ErrNoTables when the document has no extractable text at
// all; a document with text but nothing tabular yields an empty result.
func (e *PDFExtractor) Extract(ctx context.Context, doc *domain.SourceDocument) ([]domain.RawTable, error) {
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("%s: empty document: %w", doc.Name, domain.ErrNoTables)
	}

	r, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return nil, fmt.Errorf("%s: open pdf: %w", doc.Name, err)
	}

	var tables []domain.RawTable
	sawText := false

	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// Unreadable page, keep going with the rest.
			continue
		}
		lines := toLines(rows)
		if len(lines) > 0 {
			sawText = true
		}
		if t, ok := buildTable(i, lines, e.gap); ok {
			tables = append(tables, t)
		}
	}

	if !sawText {
		return nil, fmt.Errorf("%s: %w", doc.Name, domain.ErrNoTables)
	}
	return tables, nil
}

type word struct {
	x float64
	w float64
	s string
}

type line []word

// toLines converts the library's positioned rows into x-sorted word lines.
func toLines(rows pdf.Rows) []line {
	var lines []line
	for _, row := range rows {
		var ln line
		for _, t := range row.Content {
			s := strings.TrimSpace(t.S)
			if s == "" {
				continue
			}
			ln = append(ln, word{x: t.X, w: t.W, s: s})
		}
		if len(ln) == 0 {
			continue
		}
		sort.Slice(ln, func(a, b int) bool { return ln[a].x < ln[b].x })
		lines = append(lines, ln)
	}
	return lines
}

type cell struct {
	start float64
	text  string
}

// segment splits one line into cells wherever the horizontal whitespace
// between adjacent words is at least gap.
func segment(ln line, gap float64) []cell {
	var cells []cell
	for i, w := range ln {
		if i > 0 {
			prev := ln[i-1]
			if w.x-(prev.x+prev.w) < gap {
				cells[len(cells)-1].text += " " + w.s
				continue
			}
		}
		cells = append(cells, cell{start: w.x, text: w.s})
	}
	return cells
}

// buildTable assembles the page's tabular lines into a RawTable. The line
// that self-segments into the most cells defines the column anchors; lines
// that fill at least two anchored cells count as table rows. The first
// such row becomes the header, genuine or not.
func buildTable(page int, lines []line, gap float64) (domain.RawTable, bool) {
	var anchors []float64
	for _, ln := range lines {
		cells := segment(ln, gap)
		if len(cells) > len(anchors) {
			anchors = anchors[:0]
			for _, c := range cells {
				anchors = append(anchors, c.start)
			}
		}
	}
	if len(anchors) < 2 {
		return domain.RawTable{}, false
	}

	var tabular [][]string
	for _, ln := range lines {
		row := binWords(ln, anchors, gap)
		filled := 0
		for _, c := range row {
			if c != "" {
				filled++
			}
		}
		if filled >= 2 {
			tabular = append(tabular, row)
		}
	}
	if len(tabular) == 0 {
		return domain.RawTable{}, false
	}

	return domain.RawTable{
		Page:   page,
		Header: tabular[0],
		Rows:   tabular[1:],
	}, true
}

// binWords assigns each word of a line to the right-most anchor that starts
// at or before the word, with a small tolerance for ragged alignment.
func binWords(ln line, anchors []float64, gap float64) []string {
	tol := gap / 2
	row := make([]string, len(anchors))
	for _, w := range ln {
		idx := 0
		for i, a := range anchors {
			if a <= w.x+tol {
				idx = i
			}
		}
		if row[idx] == "" {
			row[idx] = w.s
		} else {
			row[idx] += " " + w.s
		}
	}
	return row
}
