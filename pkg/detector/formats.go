package detector

import (
	"fmt"
	"sort"
	"time"

	"github.com/ccollicutt/datetimescan/pkg/parser"
)

type formatStats struct {
	layout     parser.Layout
	matchCount int
	sample     parser.Match
	parsedTime time.Time
}

// rank turns per-form statistics into matches sorted by confidence descending.
// Equal confidence keeps the parser's table order.
func rank(stats map[string]*formatStats, examined int) []FormatMatch {
	order := make(map[string]int)
	for i, l := range parser.Layouts() {
		order[l.Name] = i
	}

	matches := make([]FormatMatch, 0, len(stats))
	for _, s := range stats {
		matches = append(matches, FormatMatch{
			Layout:     s.layout,
			Confidence: float64(s.matchCount) / float64(examined),
			MatchCount: s.matchCount,
			Sample:     s.sample,
			ParsedTime: s.parsedTime,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchCount != matches[j].MatchCount {
			return matches[i].MatchCount > matches[j].MatchCount
		}
		return order[matches[i].Layout.Name] < order[matches[j].Layout.Name]
	})
	return matches
}

func localOffsetNote(matches []FormatMatch) string {
	for _, m := range matches {
		if !m.Layout.LocalOffset {
			continue
		}
		_, offset := time.Now().Zone()
		return fmt.Sprintf("%q values carry no offset and are read with the local offset %s; "+
			"results depend on the machine running the scan", m.Layout.Name, formatOffset(offset))
	}
	return ""
}

func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}
