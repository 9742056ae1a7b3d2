package server

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"navboard/internal/content"
	"navboard/internal/logger"
	"navboard/internal/metrics"
	"navboard/internal/nav"
	"navboard/internal/portfolio"
	"navboard/internal/storage"
)

//go:embed templates
var assets embed.FS

// Deps are the collaborators the routes need. Store may be nil.
type Deps struct {
	View    *portfolio.View
	Content *content.Content
	Store   *storage.Store
	Range   nav.DateRange // used when a request has no from/to
}

type handlers struct{ Deps }

// NewRouter wires every route of the site.
func NewRouter(d Deps) (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"valueClass": content.ValueClass,
		"rowClass":   content.RowClass,
		"pct":        pct,
	}).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(assets, "templates")
	if err != nil {
		return nil, err
	}

	h := &handlers{d}
	r := gin.New()
	r.Use(gin.Recovery(), requestMetrics())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/home") })
	r.GET("/home", h.home)
	r.GET("/portfolios/focused", h.portfolio)
	r.GET("/static/site.css", func(c *gin.Context) { c.FileFromFS("site.css", http.FS(static)) })

	api := r.Group("/api")
	api.GET("/nav", h.nav)
	api.GET("/chart.png", h.chart)
	api.GET("/comparison", h.comparison)
	api.GET("/posts", h.posts)
	api.GET("/usage", h.usage)

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", h.readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) { c.Redirect(http.StatusFound, "/home") })
	return r, nil
}

func ListenAndServe(addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	return srv.ListenAndServe()
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// rangeFrom reads from/to query parameters, falling back to the configured range.
func (h *handlers) rangeFrom(c *gin.Context) (nav.DateRange, error) {
	r := h.Range
	if s := c.Query("from"); s != "" {
		d, err := nav.ParseDate(s)
		if err != nil {
			return r, fmt.Errorf("from: %w", err)
		}
		r.From = d
	}
	if s := c.Query("to"); s != "" {
		d, err := nav.ParseDate(s)
		if err != nil {
			return r, fmt.Errorf("to: %w", err)
		}
		r.To = d
	}
	return r, nil
}

func (h *handlers) record(route string, r *nav.DateRange) {
	if h.Store == nil {
		return
	}
	v := storage.View{Route: route, At: time.Now()}
	if r != nil {
		v.From, v.To = r.From.String(), r.To.String()
	}
	if err := h.Store.RecordView(v); err != nil {
		logger.Warn().Err(err).Str("route", route).Msg("db: record view failed")
	}
}

func (h *handlers) home(c *gin.Context) {
	h.record("/home", nil)
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title": "Home",
		"Posts": h.Content.Posts,
	})
}

func (h *handlers) portfolio(c *gin.Context) {
	r, err := h.rangeFrom(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	h.record("/portfolios/focused", &r)
	snap, err := h.View.SetRange(r)
	if err != nil {
		logger.Error().Err(err).Str("range", r.String()).Msg("chart: refresh failed")
	}
	c.HTML(http.StatusOK, "portfolio.html", gin.H{
		"Title":      "Focused",
		"Columns":    content.Columns,
		"Comparison": h.Content.Comparison,
		"Snapshot":   snap,
	})
}

func (h *handlers) nav(c *gin.Context) {
	r, err := h.rangeFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, err := h.View.SetRange(r)
	if err != nil {
		logger.Error().Err(err).Str("range", r.String()).Msg("chart: refresh failed")
	}
	switch {
	case snap.Loading:
		c.JSON(http.StatusAccepted, snap)
	case snap.Error != "":
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": snap.Error, "status": snap.Status})
	default:
		c.JSON(http.StatusOK, snap)
	}
}

func (h *handlers) chart(c *gin.Context) {
	r, err := h.rangeFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if st, loadErr := h.View.State(); st != portfolio.Ready {
		if st == portfolio.Loading {
			c.Status(http.StatusAccepted)
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": loadErr.Error()})
		return
	}
	png, ok, err := h.View.Chart(r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *handlers) comparison(c *gin.Context) {
	c.JSON(http.StatusOK, h.Content.Comparison)
}

func (h *handlers) posts(c *gin.Context) {
	c.JSON(http.StatusOK, h.Content.Posts)
}

func (h *handlers) usage(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "usage tracking disabled"})
		return
	}
	days := 7
	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}
	stats, err := h.Store.ViewStats(time.Now().AddDate(0, 0, -days))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "routes": stats})
}

func (h *handlers) readyz(c *gin.Context) {
	st, err := h.View.State()
	switch st {
	case portfolio.Ready:
		c.JSON(http.StatusOK, gin.H{"state": st.String()})
	default:
		body := gin.H{"state": st.String()}
		if err != nil {
			body["error"] = err.Error()
			var due *nav.DataUnavailableError
			if errors.As(err, &due) {
				body["status"] = due.Status
			}
		}
		c.JSON(http.StatusServiceUnavailable, body)
	}
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
