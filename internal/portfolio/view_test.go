package portfolio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"navboard/internal/chart"
	"navboard/internal/nav"
	"navboard/internal/source"
)

const csv = "Date,NAV\n02-01-2020,100.00\n03-01-2020,90.00\n04-01-2020,120.00\n05-01-2021,60\n"

func newView(t *testing.T, src source.Source) *View {
	t.Helper()
	v := NewView(src, chart.NewRenderer(600, 300), Options{
		Range:           nav.DateRange{From: nav.MustParseDate("2020-01-01"), To: nav.MustParseDate("2020-12-31")},
		BenchmarkFactor: 0.82,
	})
	t.Cleanup(v.Close)
	return v
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestViewLoad(t *testing.T) {
	v := newView(t, source.Static(csv))
	if st, _ := v.State(); st != Loading {
		t.Fatalf("state before load = %v", st)
	}
	if s := v.Snapshot(); !s.Loading {
		t.Fatal("snapshot before load is not loading")
	}
	v.Load(context.Background())
	v.Load(context.Background()) // second call is a no-op
	if err := v.Wait(waitCtx(t)); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	s := v.Snapshot()
	if s.Loading || s.State != "ready" || s.Error != "" {
		t.Fatalf("snapshot = %+v", s)
	}
	if len(s.Labels) != 3 || s.Labels[0] != "2020-01-02" {
		t.Errorf("labels = %v", s.Labels)
	}
	want := []float64{0, -10, 0}
	for i, w := range want {
		if d := s.Drawdown[i] - w; d > 1e-9 || d < -1e-9 {
			t.Errorf("drawdown[%d] = %v, want %v", i, s.Drawdown[i], w)
		}
	}
	if !s.BenchmarkSynthetic || s.Benchmark[0] != 82 {
		t.Errorf("benchmark = %v (%v)", s.Benchmark, s.BenchmarkSynthetic)
	}
	if len(v.Series()) != 4 {
		t.Errorf("Series() len = %d", len(v.Series()))
	}
}

func TestViewSetRange(t *testing.T) {
	v := newView(t, source.Static(csv))
	v.Load(context.Background())
	if err := v.Wait(waitCtx(t)); err != nil {
		t.Fatal(err)
	}

	s, err := v.SetRange(nav.DateRange{From: nav.MustParseDate("2020-01-03"), To: nav.MustParseDate("2021-12-31")})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.NAV) != 3 || s.Drawdown[0] != 0 {
		t.Fatalf("snapshot = %+v", s)
	}
	if d := s.Drawdown[2] - (-50); d > 1e-9 || d < -1e-9 {
		t.Errorf("drawdown = %v", s.Drawdown)
	}

	png, ok, err := v.Chart(v.Range())
	if err != nil || !ok || len(png) == 0 {
		t.Fatalf("Chart() = %d bytes, %v, %v", len(png), ok, err)
	}

	empty := nav.DateRange{From: nav.MustParseDate("2030-01-01"), To: nav.MustParseDate("2030-12-31")}
	s, err = v.SetRange(empty)
	if err != nil {
		t.Fatalf("SetRange(empty) error = %v", err)
	}
	if len(s.NAV) != 0 || len(s.Drawdown) != 0 {
		t.Errorf("empty range snapshot = %+v", s)
	}
	if _, ok, err := v.Chart(empty); ok || err != nil {
		t.Errorf("Chart(empty) = %v, %v; want nothing to draw", ok, err)
	}
}

func TestViewRangeBeforeLoad(t *testing.T) {
	v := newView(t, source.Static(csv))
	r := nav.DateRange{From: nav.MustParseDate("2021-01-01"), To: nav.MustParseDate("2021-12-31")}
	if _, err := v.SetRange(r); err != nil {
		t.Fatal(err)
	}
	v.Load(context.Background())
	if err := v.Wait(waitCtx(t)); err != nil {
		t.Fatal(err)
	}
	if s := v.Snapshot(); len(s.NAV) != 1 || s.NAV[0] != 60 {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestViewLoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	v := newView(t, source.New(srv.URL+"/nav.csv", 0))
	v.Load(context.Background())
	err := v.Wait(waitCtx(t))
	var due *nav.DataUnavailableError
	if !errors.As(err, &due) || due.Status != http.StatusNotFound {
		t.Fatalf("Wait() error = %v, want 404 DataUnavailableError", err)
	}
	s := v.Snapshot()
	if s.Loading || s.Status != 404 || s.Error == "" || len(s.NAV) != 0 {
		t.Errorf("snapshot = %+v", s)
	}
	if _, ok, err := v.Chart(v.Range()); ok || err != nil {
		t.Errorf("Chart() after failure = %v, %v", ok, err)
	}
}

func TestViewHeaderOnly(t *testing.T) {
	v := newView(t, source.Static("Date,NAV\n"))
	v.Load(context.Background())
	if err := v.Wait(waitCtx(t)); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	s := v.Snapshot()
	if s.State != "ready" || len(s.NAV) != 0 || len(s.Drawdown) != 0 {
		t.Errorf("snapshot = %+v", s)
	}
}
