package nav

// Window is a trailing lookback used in performance summaries.
type Window struct {
	Label  string
	Days   int
	Months int
}

// Windows are the lookbacks shown in the comparison table, shortest first.
var Windows = []Window{
	{Label: "1D", Days: 1},
	{Label: "1W", Days: 7},
	{Label: "1M", Months: 1},
	{Label: "3M", Months: 3},
	{Label: "6M", Months: 6},
	{Label: "1Y", Months: 12},
	{Label: "3Y", Months: 36},
}

// Return is the trailing return over one window. OK is false when the series
// does not reach back far enough.
type Return struct {
	Window  string  `json:"window"`
	Percent float64 `json:"percent"`
	OK      bool    `json:"ok"`
}

// Summary is computed from a series and mirrors the columns of the comparison table.
type Summary struct {
	Points          int      `json:"points"`
	First           Point    `json:"first"`
	Last            Point    `json:"last"`
	SinceStart      float64  `json:"since_start"`
	CurrentDrawdown float64  `json:"current_drawdown"`
	MaxDrawdown     float64  `json:"max_drawdown"`
	Trailing        []Return `json:"trailing"`
}

// Summarize computes performance figures for s. An empty series yields a zero Summary.
func Summarize(s Series) Summary {
	if len(s) == 0 {
		return Summary{}
	}
	dd := ComputeDrawdown(s)
	first, last := s[0], s[len(s)-1]
	sum := Summary{
		Points:          len(s),
		First:           first,
		Last:            last,
		SinceStart:      pctChange(first.Value, last.Value),
		CurrentDrawdown: dd.Current(),
		MaxDrawdown:     dd.Max(),
	}
	for _, w := range Windows {
		target := last.Date.AddDays(-w.Days).AddMonths(-w.Months)
		r := Return{Window: w.Label}
		if base, ok := lastOnOrBefore(s, target); ok {
			r.Percent = pctChange(base.Value, last.Value)
			r.OK = true
		}
		sum.Trailing = append(sum.Trailing, r)
	}
	return sum
}

// lastOnOrBefore finds the latest point dated d or earlier. s must be sorted.
func lastOnOrBefore(s Series, d Date) (Point, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if !s[i].Date.After(d) {
			return s[i], true
		}
	}
	return Point{}, false
}

func pctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}
