package nav

import (
	"testing"
	"time"
)

func TestParseFeedDate(t *testing.T) {
	tests := []struct {
		input string
		want  Date
		err   bool
	}{
		{"02-01-2020", NewDate(2020, time.January, 2), false},
		{"2-1-2020", NewDate(2020, time.January, 2), false},
		{"29-02-2024", NewDate(2024, time.February, 29), false},
		{"29-02-2023", Date{}, true},
		{"00-01-2020", Date{}, true},
		{"01-13-2020", Date{}, true},
		{"2020-01-02", Date{}, true},
		{"01/01/2020", Date{}, true},
		{"aa-01-2020", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFeedDate(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("parseFeedDate(%q) error = %v, want error %v", tt.input, err, tt.err)
			}
			if got != tt.want {
				t.Errorf("parseFeedDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateCompare(t *testing.T) {
	a := NewDate(2020, time.March, 1)
	b := NewDate(2020, time.February, 30) // normalizes to 2020-03-01
	if a != b || a.Compare(b) != 0 {
		t.Errorf("%v and %v should be equal", a, b)
	}
	c := a.AddDays(-1)
	if !c.Before(a) || !a.After(c) || c.String() != "2020-02-29" {
		t.Errorf("AddDays(-1) = %v", c)
	}
	if got := NewDate(2020, time.March, 31).AddMonths(-1).String(); got != "2020-03-02" {
		t.Errorf("AddMonths(-1) = %s", got)
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{MustParseDate("2020-01-01"), MustParseDate("2020-01-31")}
	for _, tt := range []struct {
		d    string
		want bool
	}{
		{"2019-12-31", false},
		{"2020-01-01", true},
		{"2020-01-15", true},
		{"2020-01-31", true},
		{"2020-02-01", false},
	} {
		if got := r.Contains(MustParseDate(tt.d)); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestDateText(t *testing.T) {
	var d Date
	if err := d.UnmarshalText([]byte("2024-04-24")); err != nil {
		t.Fatal(err)
	}
	b, _ := d.MarshalText()
	if string(b) != "2024-04-24" {
		t.Errorf("MarshalText() = %s", b)
	}
	if b, _ := (Date{}).MarshalText(); len(b) != 0 {
		t.Errorf("zero MarshalText() = %q", b)
	}
	if err := d.UnmarshalText(nil); err != nil || !d.IsZero() {
		t.Errorf("UnmarshalText(empty) = %v, %v", d, err)
	}
	if err := d.UnmarshalText([]byte("24-04-2024")); err == nil {
		t.Errorf("UnmarshalText accepted a feed date")
	}
}
