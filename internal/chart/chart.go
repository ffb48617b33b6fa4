// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart renders the dashboard views as standalone SVG documents:
// a vertical bar chart of yearly totals, a horizontal bar chart of top
// journals and a word cloud of title words.
package chart

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

const (
	width      = 800
	marginLeft = 60
	marginTop  = 50
	fontFamily = "Helvetica, Arial, sans-serif"

	yearlyHeight  = 400
	journalRow    = 28
	journalLabelW = 260
	maxLabelRunes = 38
)

// Bar colors.
const (
	colorTeal = "#008080"
	colorAxis = "#444444"
)

// viridis approximates the palette used for ranked journal bars.
var viridis = []string{"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// plasma approximates the palette used for word cloud text.
var plasma = []string{"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26"}

func header(b *strings.Builder, h int, title string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="%s">`,
		width, h, width, h, fontFamily)
	fmt.Fprintf(b, `<rect width="%d" height="%d" fill="#ffffff"/>`, width, h)
	fmt.Fprintf(b, `<text x="%d" y="28" font-size="18" text-anchor="middle">%s</text>`, width/2, html.EscapeString(title))
}

func empty(b *strings.Builder, h int, msg string) {
	fmt.Fprintf(b, `<text x="%d" y="%d" font-size="14" text-anchor="middle" fill="%s">%s</text>`,
		width/2, h/2, colorAxis, html.EscapeString(msg))
}

// Yearly renders papers per year as vertical bars, one per year.
func Yearly(data []types.YearCount) string {
	var b strings.Builder
	header(&b, yearlyHeight, "CORD-19 Publications by Year")
	if len(data) == 0 {
		empty(&b, yearlyHeight, "No papers")
		b.WriteString(`</svg>`)
		return b.String()
	}

	plotW := width - marginLeft - 20
	plotH := yearlyHeight - marginTop - 60
	baseY := marginTop + plotH

	maxCount := 0
	for _, d := range data {
		maxCount = max(maxCount, d.Count)
	}

	slot := float64(plotW) / float64(len(data))
	barW := slot * 0.7
	for i, d := range data {
		h := float64(plotH) * float64(d.Count) / float64(maxCount)
		x := float64(marginLeft) + slot*float64(i) + (slot-barW)/2
		y := float64(baseY) - h
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%d: %d</title></rect>`,
			x, y, barW, h, colorTeal, d.Year, d.Count)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle">%d</text>`, x+barW/2, y-4, d.Count)
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-size="12" text-anchor="middle">%d</text>`, x+barW/2, baseY+18, d.Year)
	}

	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`, marginLeft, baseY, width-20, baseY, colorAxis)
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="13" text-anchor="middle">Year</text>`, width/2, baseY+42)
	fmt.Fprintf(&b, `<text x="18" y="%d" font-size="13" text-anchor="middle" transform="rotate(-90 18 %d)">Number of Papers</text>`,
		marginTop+plotH/2, marginTop+plotH/2)
	b.WriteString(`</svg>`)
	return b.String()
}

// Journals renders the top journals of year as horizontal bars, largest on top.
func Journals(year int, data []types.JournalCount) string {
	h := marginTop + 50 + journalRow*max(len(data), 3)

	var b strings.Builder
	header(&b, h, "Top 10 Journals in "+strconv.Itoa(year))
	if len(data) == 0 {
		empty(&b, h, fmt.Sprintf("No papers published in %d", year))
		b.WriteString(`</svg>`)
		return b.String()
	}

	maxCount := 0
	for _, d := range data {
		maxCount = max(maxCount, d.Count)
	}

	plotW := float64(width - journalLabelW - 60)
	for i, d := range data {
		y := marginTop + journalRow*i
		w := plotW * float64(d.Count) / float64(maxCount)
		color := viridis[i*len(viridis)/max(len(data), 1)]
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" text-anchor="end">%s</text>`,
			journalLabelW-8, y+journalRow/2+4, html.EscapeString(truncate(d.Journal, maxLabelRunes)))
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%.1f" height="%d" fill="%s"><title>%s: %d</title></rect>`,
			journalLabelW, y+3, w, journalRow-6, color, html.EscapeString(d.Journal), d.Count)
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-size="12">%d</text>`, float64(journalLabelW)+w+6, y+journalRow/2+4, d.Count)
	}

	axisY := marginTop + journalRow*len(data) + 30
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="13" text-anchor="middle">Number of Papers Published</text>`,
		journalLabelW+int(plotW)/2, axisY)
	b.WriteString(`</svg>`)
	return b.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
