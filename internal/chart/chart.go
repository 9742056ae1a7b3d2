package chart

import (
	"fmt"
	"sync"

	"github.com/vicanso/go-charts/v2"

	"navboard/internal/metrics"
	"navboard/internal/nav"
)

// Drawdown axis bounds, fixed so ranges stay visually comparable.
const (
	DrawdownMin = -50.0
	DrawdownMax = 0.0
)

// Series names as shown in the legend.
const (
	NameNAV       = "Focused"
	NameBenchmark = "NIFTY50 (synthetic)"
	NameDrawdown  = "Drawdown"
)

// Input is everything the chart needs; it carries no business logic.
type Input struct {
	Range     nav.DateRange
	Labels    []string
	NAV       []float64
	Benchmark []float64
	Drawdown  nav.Drawdown
}

// Chart is one rendered image. Release drops the bytes; a released chart must not be served.
type Chart struct {
	Range    nav.DateRange
	PNG      []byte
	released bool
}

// Release frees the image.
func (c *Chart) Release() {
	c.PNG = nil
	c.released = true
}

// Released reports whether Release was called.
func (c *Chart) Released() bool { return c.released }

// Renderer draws NAV, benchmark and drawdown with go-charts.
type Renderer struct {
	Width  int
	Height int
	cache  *imageCache
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height, cache: newImageCache(cacheTTL)}
}

// Purge empties the image cache.
func (r *Renderer) Purge() { r.cache.purge() }

// Render draws in. NAV and benchmark share the left axis; drawdown sits on the
// right axis clamped to [DrawdownMin, DrawdownMax].
func (r *Renderer) Render(in Input) (*Chart, error) {
	if len(in.Labels) == 0 || len(in.NAV) == 0 {
		metrics.ChartRendersTotal.WithLabelValues("empty").Inc()
		return nil, nav.ErrNothingToDraw
	}
	if len(in.NAV) != len(in.Labels) || len(in.Benchmark) != len(in.Labels) || len(in.Drawdown) != len(in.Labels) {
		metrics.ChartRendersTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("chart input length mismatch: labels=%d nav=%d benchmark=%d drawdown=%d",
			len(in.Labels), len(in.NAV), len(in.Benchmark), len(in.Drawdown))
	}

	cacheKey := in.Range.String()
	if img, ok := r.cache.get(cacheKey); ok {
		metrics.ChartRendersTotal.WithLabelValues("cached").Inc()
		return &Chart{Range: in.Range, PNG: img}, nil
	}

	yMin, yMax := valueBounds(in.NAV, in.Benchmark)
	ddMin, ddMax := DrawdownMin, DrawdownMax

	drawdown := make([]float64, len(in.Drawdown))
	for i, v := range in.Drawdown {
		if v < DrawdownMin {
			v = DrawdownMin
		}
		drawdown[i] = v
	}

	names := []string{NameNAV, NameBenchmark, NameDrawdown}
	seriesList := charts.NewSeriesListDataFromValues([][]float64{in.NAV, in.Benchmark, drawdown}, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}
	seriesList[2].AxisIndex = 1

	// at most six x labels, as on the portfolio page
	splitNum := len(in.Labels) - 1
	if splitNum > 6 {
		splitNum = 6
	}
	if splitNum < 1 {
		splitNum = 1
	}

	p, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(NameNAV+" • "+in.Range.String()),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        in.Labels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(
			charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5},
			charts.YAxisOption{Min: &ddMin, Max: &ddMax, DivideCount: 5, Position: charts.PositionRight},
		),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(r.Width),
		charts.HeightOptionFunc(r.Height),
	)
	if err != nil {
		metrics.ChartRendersTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	buf, err := p.Bytes()
	if err != nil {
		metrics.ChartRendersTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	r.cache.set(cacheKey, buf)
	metrics.ChartRendersTotal.WithLabelValues("ok").Inc()
	img := make([]byte, len(buf))
	copy(img, buf)
	return &Chart{Range: in.Range, PNG: img}, nil
}

// valueBounds returns a padded y-range covering every value of every series.
func valueBounds(series ...[]float64) (float64, float64) {
	first := true
	var minVal, maxVal float64
	for _, s := range series {
		for _, v := range s {
			if first {
				minVal, maxVal = v, v
				first = false
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = maxVal * 0.05
	}
	if padding == 0 {
		padding = 1
	}
	yMin := minVal - padding
	if yMin < 0 && minVal >= 0 {
		yMin = 0
	}
	return yMin, maxVal + padding
}

// Handle owns the live chart of a view. Replace releases the previous chart
// before drawing the next one, so at most one image is held at a time.
type Handle struct {
	mu  sync.Mutex
	r   *Renderer
	cur *Chart
}

func NewHandle(r *Renderer) *Handle { return &Handle{r: r} }

// Replace releases the current chart and renders in. On error, including
// nav.ErrNothingToDraw, the handle is left empty.
func (h *Handle) Replace(in Input) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cur != nil {
		h.cur.Release()
		h.cur = nil
	}
	c, err := h.r.Render(in)
	if err != nil {
		return err
	}
	h.cur = c
	return nil
}

// PNG returns a copy of the current image, false when there is nothing to show.
func (h *Handle) PNG() ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cur == nil || h.cur.released {
		return nil, false
	}
	img := make([]byte, len(h.cur.PNG))
	copy(img, h.cur.PNG)
	return img, true
}

// Close releases the current chart.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cur != nil {
		h.cur.Release()
		h.cur = nil
	}
}
