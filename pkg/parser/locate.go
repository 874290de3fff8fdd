package parser

import "regexp"

// TimestampPattern is the grammar of a locatable timestamp: a date, a space or
// "T", a time of day, and an optional zone suffix. The zone suffix is either a
// 3-4 letter uppercase abbreviation or a numeric offset with an optional colon.
// The abbreviation alternative is tried first; both are greedy.
const TimestampPattern = `[0-9]{4}-[0-9]{2}-[0-9]{2}[ T][0-9]{2}:[0-9]{2}:[0-9]{2}(?:[A-Z]{3,4}|[+-][0-9]{2}:?[0-9]{2})?`

var timestampRegexp = regexp.MustCompile(TimestampPattern)

// Locate finds every timestamp-like substring in lines. Line numbers are
// 1-based and assigned from slice position.
func Locate(lines []string) []Match {
	var matches []Match
	for i, line := range lines {
		matches = appendMatches(matches, line, i+1, "")
	}
	return matches
}

// LocateLines is Locate over lines that carry their own source and line number.
func LocateLines(lines []Line) []Match {
	var matches []Match
	for _, line := range lines {
		matches = appendMatches(matches, line.Content, line.LineNum, line.Source)
	}
	return matches
}

func appendMatches(dst []Match, line string, lineNum int, source string) []Match {
	for _, loc := range timestampRegexp.FindAllStringIndex(line, -1) {
		dst = append(dst, Match{
			Text:   line[loc[0]:loc[1]],
			Line:   lineNum,
			Column: loc[0],
			Source: source,
		})
	}
	return dst
}
