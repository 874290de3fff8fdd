package parser

import (
	"fmt"
	"strings"
	"time"
)

// Layout is one accepted textual timestamp form, tried in table order.
type Layout struct {
	Name     string   // Human-readable name
	Layout   string   // Go time layout
	Examples []string // Example timestamps
	// LocalOffset is true when the form carries no offset and the process's
	// current local offset is attached on parse.
	LocalOffset bool
}

// zoneAbbreviations maps the supported trailing zone abbreviations to numeric
// offsets. Nothing writes to it after init.
var zoneAbbreviations = [...]struct {
	abbr   string
	offset string
}{
	{"UTC", "+0000"},
	{"AEST", "+1000"},
	{"AEDT", "+1100"},
}

var layouts = [...]Layout{
	{
		Name:     "RFC 3339",
		Layout:   time.RFC3339,
		Examples: []string{"2023-05-08T19:29:50+10:00", "2023-05-08T09:29:50Z"},
	},
	{
		Name:     "ISO 8601 with basic offset",
		Layout:   "2006-01-02T15:04:05-0700",
		Examples: []string{"2023-05-08T19:29:50+1000", "2023-05-08T19:29:50AEST"},
	},
	{
		Name:        "ISO 8601 local",
		Layout:      "2006-01-02T15:04:05",
		Examples:    []string{"2023-05-08T19:29:50"},
		LocalOffset: true,
	},
	{
		Name:        "ISO 8601 local with space",
		Layout:      "2006-01-02 15:04:05",
		Examples:    []string{"2023-05-08 19:29:50"},
		LocalOffset: true,
	},
}

// Layouts returns the accepted forms in the order they are tried.
func Layouts() []Layout {
	out := make([]Layout, len(layouts))
	copy(out, layouts[:])
	return out
}

// Failure identifies one value that could not be parsed.
type Failure struct {
	Text   string
	Source string
	Line   int // 0 when the value did not come from located input
	Column int
}

func (f Failure) String() string {
	if f.Line == 0 {
		return fmt.Sprintf("%q", f.Text)
	}
	if f.Source != "" {
		return fmt.Sprintf("%q (%s line %d, column %d)", f.Text, f.Source, f.Line, f.Column)
	}
	return fmt.Sprintf("%q (line %d, column %d)", f.Text, f.Line, f.Column)
}

// ParseError reports every value of a batch that matched no accepted form.
type ParseError struct {
	Failures []Failure
}

func (e *ParseError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return fmt.Sprintf("unparseable timestamp(s): %s", strings.Join(parts, ", "))
}

// Parser turns located text into fixed-offset instants.
type Parser struct {
	localZone func() *time.Location
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLocalOffset pins the offset attached to offset-less forms instead of
// reading the process's current local offset.
func WithLocalOffset(seconds int) ParserOption {
	return func(p *Parser) {
		zone := fixedZone(seconds)
		p.localZone = func() *time.Location { return zone }
	}
}

// NewParser creates a Parser. By default offset-less forms receive the local
// offset in effect at parse time; DST transitions are not applied per value.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{localZone: currentLocalZone}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses text with the default parser.
func Parse(text string) (time.Time, error) {
	return defaultParser.Parse(text)
}

// ParseAll parses texts with the default parser.
func ParseAll(texts []string) ([]time.Time, error) {
	return defaultParser.ParseAll(texts)
}

// ParseMatches parses located matches with the default parser.
func ParseMatches(matches []Match) ([]time.Time, error) {
	return defaultParser.ParseMatches(matches)
}

// Parse parses a single timestamp.
func (p *Parser) Parse(text string) (time.Time, error) {
	t, _, err := p.ParseLayout(text)
	return t, err
}

// ParseLayout parses a single timestamp and reports which form accepted it.
func (p *Parser) ParseLayout(text string) (time.Time, *Layout, error) {
	normalized := normalizeZone(text)
	for i := range layouts {
		l := &layouts[i]
		var (
			t   time.Time
			err error
		)
		if l.LocalOffset {
			t, err = time.ParseInLocation(l.Layout, normalized, p.localZone())
		} else {
			t, err = time.Parse(l.Layout, normalized)
		}
		if err == nil {
			return withFixedZone(t), l, nil
		}
	}
	return time.Time{}, nil, &ParseError{Failures: []Failure{{Text: text}}}
}

// ParseAll parses every text or fails as a whole. The error lists all
// unparseable values.
func (p *Parser) ParseAll(texts []string) ([]time.Time, error) {
	out := make([]time.Time, len(texts))
	var failures []Failure
	for i, text := range texts {
		t, err := p.Parse(text)
		if err != nil {
			failures = append(failures, Failure{Text: text})
			continue
		}
		out[i] = t
	}
	if len(failures) > 0 {
		return nil, &ParseError{Failures: failures}
	}
	return out, nil
}

// ParseMatches is ParseAll over located matches; failures carry positions.
func (p *Parser) ParseMatches(matches []Match) ([]time.Time, error) {
	out := make([]time.Time, len(matches))
	var failures []Failure
	for i, m := range matches {
		t, err := p.Parse(m.Text)
		if err != nil {
			failures = append(failures, Failure{Text: m.Text, Source: m.Source, Line: m.Line, Column: m.Column})
			continue
		}
		out[i] = t
	}
	if len(failures) > 0 {
		return nil, &ParseError{Failures: failures}
	}
	return out, nil
}

// normalizeZone rewrites a trailing zone abbreviation that directly follows
// the seconds field into its numeric offset. Abbreviations anywhere else are
// left untouched.
func normalizeZone(text string) string {
	for _, z := range zoneAbbreviations {
		if !strings.HasSuffix(text, z.abbr) {
			continue
		}
		head := text[:len(text)-len(z.abbr)]
		if head == "" || !isDigit(head[len(head)-1]) {
			continue
		}
		return head + z.offset
	}
	return text
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func currentLocalZone() *time.Location {
	_, offset := time.Now().Zone()
	return fixedZone(offset)
}

func withFixedZone(t time.Time) time.Time {
	_, offset := t.Zone()
	return t.In(fixedZone(offset))
}

func fixedZone(offset int) *time.Location {
	return time.FixedZone("", offset)
}
