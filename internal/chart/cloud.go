// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"fmt"
	"html"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

const (
	minFont = 14.0
	maxFont = 64.0

	// relativeScaling weighs frequency against rank when sizing words.
	relativeScaling = 0.5

	cloudPadding = 12.0
)

type placedWord struct {
	text  string
	size  float64
	x, y  float64
	color string
}

// FontSize maps a word count to a font size. The most frequent word gets
// maxFont and sizes shrink with the square root of the frequency ratio.
func FontSize(count, maxCount int) float64 {
	if maxCount <= 0 || count <= 0 {
		return minFont
	}
	ratio := float64(count) / float64(maxCount)
	scaled := relativeScaling*math.Sqrt(ratio) + (1-relativeScaling)*ratio
	return math.Round(minFont + (maxFont-minFont)*scaled)
}

// textWidth estimates the rendered width of s at font size.
func textWidth(s string, size float64) float64 {
	return 0.58 * size * float64(utf8.RuneCountInString(s))
}

// layout flows words into centered lines, largest first.
func layout(words []types.WordCount) ([]placedWord, float64) {
	if len(words) == 0 {
		return nil, 0
	}
	maxCount := words[0].Count
	for _, w := range words {
		maxCount = max(maxCount, w.Count)
	}

	var (
		placed []placedWord
		line   []placedWord
		lineW  float64
		lineH  float64
		y      = float64(marginTop)
	)
	flush := func() {
		if len(line) == 0 {
			return
		}
		x := (width - lineW) / 2
		y += lineH
		for _, p := range line {
			p.x = x
			p.y = y
			x += textWidth(p.text, p.size) + cloudPadding
			placed = append(placed, p)
		}
		y += lineH * 0.25
		line, lineW, lineH = nil, 0, 0
	}

	for i, w := range words {
		size := FontSize(w.Count, maxCount)
		tw := textWidth(w.Word, size)
		if len(line) > 0 && lineW+cloudPadding+tw > width-2*cloudPadding {
			flush()
		}
		if len(line) > 0 {
			lineW += cloudPadding
		}
		line = append(line, placedWord{text: w.Word, size: size, color: plasma[i%len(plasma)]})
		lineW += tw
		lineH = max(lineH, size)
	}
	flush()
	return placed, y + cloudPadding
}

// WordCloud renders title word frequencies for year as an SVG word cloud.
func WordCloud(year int, words []types.WordCount) string {
	placed, h := layout(words)
	height := int(math.Ceil(h))
	if height < 200 {
		height = 200
	}

	var b strings.Builder
	header(&b, height, fmt.Sprintf("Most Common Title Words in %d", year))
	if len(placed) == 0 {
		empty(&b, height, fmt.Sprintf("No titles for %d", year))
		b.WriteString(`</svg>`)
		return b.String()
	}
	for i, p := range placed {
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="%.0f" fill="%s"><title>%s: %d</title>%s</text>`,
			p.x, p.y, p.size, p.color, html.EscapeString(p.text), words[i].Count, html.EscapeString(p.text))
	}
	b.WriteString(`</svg>`)
	return b.String()
}
