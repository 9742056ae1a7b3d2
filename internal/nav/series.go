package nav

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Point is one NAV observation.
type Point struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
}

// Series is a sequence of points, non-decreasing by date once parsed.
type Series []Point

// Dates returns the x-axis labels of the series.
func (s Series) Dates() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Date.String()
	}
	return out
}

// Values returns the NAV values of the series.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Rejection describes a data row that split correctly but could not be turned into a point.
type Rejection struct {
	Line   int    // 1-based line number in the raw text, header included
	Text   string // raw row
	Reason string
}

// Report collects what Parse threw away on purpose.
type Report struct {
	Rejected []Rejection
}

// Parse turns a raw CSV body into a date-sorted series. See ParseReport.
func Parse(raw string) Series {
	s, _ := ParseReport(raw)
	return s
}

// ParseReport parses a raw CSV body: a header line followed by DD-MM-YYYY,value rows.
//
// Rows without two non-empty fields are dropped silently (blank lines, trailing
// commas). Rows whose date is not a calendar day, or whose value is not a
// non-negative number once formatting characters are stripped, are rejected and
// listed in the report. The result is stable-sorted by date.
func ParseReport(raw string) (Series, Report) {
	var (
		out Series
		rep Report
	)
	lines := strings.Split(raw, "\n")
	if len(lines) <= 1 {
		return Series{}, rep
	}
	for i, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		fields := strings.Split(line, ",")
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			continue
		}
		p, err := parseRow(fields[0], fields[1])
		if err != nil {
			rep.Rejected = append(rep.Rejected, Rejection{Line: i + 2, Text: line, Reason: err.Error()})
			continue
		}
		out = append(out, p)
	}
	if out == nil {
		out = Series{}
	}
	slices.SortStableFunc(out, func(a, b Point) int { return a.Date.Compare(b.Date) })
	return out, rep
}

func parseRow(dateField, valueField string) (Point, error) {
	d, err := parseFeedDate(dateField)
	if err != nil {
		return Point{}, err
	}
	v, err := parseValue(valueField)
	if err != nil {
		return Point{}, err
	}
	return Point{Date: d, Value: v}, nil
}

// parseValue keeps digits, '.' and '-' and parses what remains.
func parseValue(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("value %q has no digits", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("value %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("value %q is negative", s)
	}
	return d.InexactFloat64(), nil
}

// Filter returns the points of s whose date lies in r, bounds included, in their original order.
func Filter(s Series, r DateRange) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if r.Contains(p.Date) {
			out = append(out, p)
		}
	}
	return out
}

// Benchmark scales every value by factor.
//
// This is a synthetic comparison line, not an independent data feed: the
// portfolio page has no benchmark source and plots the NAV scaled by a constant.
func Benchmark(s Series, factor float64) []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value * factor
	}
	return out
}
