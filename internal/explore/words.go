// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explore

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// wordPattern matches runs of at least two word characters; apostrophes
// may appear after the first character.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_']+`)

// WordFrequencies tokenizes text and returns the n most frequent words,
// descending by count with first-occurrence order between ties. A trailing
// "'s" is removed before common English stopwords and purely numeric tokens
// are dropped, and a plural ending in "s" is folded into its singular when
// both occur. Words are compared exactly; callers lowercase first for
// case-insensitive counts. Empty text yields an empty result.
func WordFrequencies(text string, n int) []types.WordCount {
	if n <= 0 {
		n = DefaultMaxWords
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range wordPattern.FindAllString(text, -1) {
		if strings.HasSuffix(strings.ToLower(w), "'s") {
			w = w[:len(w)-2]
		}
		if w == "" || isNumber(w) || stopwords[strings.ToLower(w)] {
			continue
		}
		if _, ok := counts[w]; !ok {
			order = append(order, w)
		}
		counts[w]++
	}

	// Fold plurals into singulars.
	for _, w := range order {
		if !strings.HasSuffix(w, "s") || strings.HasSuffix(w, "ss") {
			continue
		}
		singular := strings.TrimSuffix(w, "s")
		if _, ok := counts[singular]; !ok {
			continue
		}
		if c, ok := counts[w]; ok {
			counts[singular] += c
			delete(counts, w)
		}
	}

	out := make([]types.WordCount, 0, len(counts))
	for _, w := range order {
		if c, ok := counts[w]; ok {
			out = append(out, types.WordCount{Word: w, Count: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func isNumber(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

var stopwords = toSet(`a about above after again against all also am an and any are aren't as at
be because been before being below between both but by can can't cannot com could couldn't
did didn't do does doesn't doing don't down during each else ever few for from further get
had hadn't has hasn't have haven't having he he'd he'll he's hence her here here's hers
herself him himself his how how's however http i i'd i'll i'm i've if in into is isn't it
it's its itself just k let's like me more most mustn't my myself no nor not of off on once
only or other otherwise ought our ours ourselves out over own r same shall shan't she she'd
she'll she's should shouldn't since so some such than that that's the their theirs them
themselves then there there's therefore these they they'd they'll they're they've this those
through to too under until up very was wasn't we we'd we'll we're we've were weren't what
what's when when's where where's which while who who's whom why why's with won't would
wouldn't www you you'd you'll you're you've your yours yourself yourselves`)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
