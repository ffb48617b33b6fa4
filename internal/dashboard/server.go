// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dashboard serves the explorer over HTTP: an HTML page with a
// year selector and three charts, SVG chart endpoints, and JSON endpoints
// for each view.
package dashboard

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/cord-explorer/internal/chart"
	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/internal/explore"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// errInvalidYear is returned for a year parameter that is not an integer.
var errInvalidYear = errors.New("invalid year")

// View names used in metrics and logs.
const (
	viewPage     = "page"
	viewYearly   = "yearly"
	viewJournals = "journals"
	viewWords    = "words"
)

// Server handles dashboard requests for one Explorer.
type Server struct {
	explorer *explore.Explorer
	logger   *slog.Logger
	metrics  *Metrics
	registry *prometheus.Registry
}

// NewServer creates a dashboard server. Its collectors are registered
// with registry, which /metrics also serves.
func NewServer(e *explore.Explorer, logger *slog.Logger, registry *prometheus.Registry) *Server {
	return &Server{
		explorer: e,
		logger:   logger.With(slog.String("component", "dashboard")),
		metrics:  NewMetrics(registry),
		registry: registry,
	}
}

// Warm loads the dataset and records its size. Call it before serving so
// a missing dataset fails at startup.
func (s *Server) Warm() error {
	records, err := s.explorer.Records()
	if err != nil {
		return err
	}
	s.metrics.DatasetRecords.Set(float64(len(records)))
	s.logger.Info("dataset loaded", slog.Int("records", len(records)))
	return nil
}

// Routes returns the dashboard router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.Page)
	r.Get("/healthz", s.Health)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/charts", func(r chi.Router) {
		r.Get("/yearly.svg", s.YearlyChart)
		r.Get("/journals.svg", s.JournalsChart)
		r.Get("/words.svg", s.WordsChart)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/years", s.GetYears)
		r.Get("/views/yearly", s.GetYearly)
		r.Get("/views/journals", s.GetJournals)
		r.Get("/views/words", s.GetWords)
	})

	return r
}

// logRequests logs one line per request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.InfoContext(r.Context(), "request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// selectedYear resolves the year query parameter against the dataset's
// year range. An absent parameter selects the default year.
func (s *Server) selectedYear(r *http.Request) (int, explore.Bounds, error) {
	bounds, err := s.explorer.Bounds()
	if err != nil {
		return 0, bounds, err
	}
	sel := explore.NewSelection(bounds)

	raw := r.URL.Query().Get("year")
	if raw == "" {
		return sel.Year(), bounds, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, bounds, fmt.Errorf("%w: %q", errInvalidYear, raw)
	}
	if err := sel.Set(year); err != nil {
		return 0, bounds, err
	}
	return sel.Year(), bounds, nil
}

// statusFor maps a view error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrCleanedDatasetNotFound):
		return http.StatusServiceUnavailable
	case errors.Is(err, errInvalidYear), errors.Is(err, explore.ErrYearOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body of a failed API request.
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func (s *Server) fail(r *http.Request, view string, err error) int {
	status := statusFor(err)
	s.metrics.ViewErrors.WithLabelValues(view, strconv.Itoa(status)).Inc()
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "view failed",
		slog.String("view", view),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	)
	return status
}

func (s *Server) failJSON(w http.ResponseWriter, r *http.Request, view string, err error) {
	status := s.fail(r, view, err)
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Status: status, Error: err.Error()})
}

func (s *Server) failText(w http.ResponseWriter, r *http.Request, view string, err error) {
	http.Error(w, err.Error(), s.fail(r, view, err))
}

// observe records one view computation.
func (s *Server) observe(view string, start time.Time) {
	s.metrics.ViewRequests.WithLabelValues(view).Inc()
	s.metrics.ViewDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// Health handles GET /healthz. It reports 503 until the dataset loads.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.explorer.Load(); err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	render.JSON(w, r, map[string]string{"status": "ok"})
}

type pageData struct {
	Records  int
	Bounds   explore.Bounds
	Year     int
	Yearly   template.HTML
	Journals template.HTML
	Words    template.HTML
}

// Page handles GET /?year=N, rendering all three views.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	year, bounds, err := s.selectedYear(r)
	if err != nil {
		s.failText(w, r, viewPage, err)
		return
	}
	records, err := s.explorer.Records()
	if err != nil {
		s.failText(w, r, viewPage, err)
		return
	}
	v, err := s.explorer.Views(year)
	if err != nil {
		s.failText(w, r, viewPage, err)
		return
	}

	// The chart package escapes all text it embeds.
	data := pageData{
		Records:  len(records),
		Bounds:   bounds,
		Year:     year,
		Yearly:   template.HTML(chart.Yearly(v.Yearly)),
		Journals: template.HTML(chart.Journals(year, v.Journals)),
		Words:    template.HTML(chart.WordCloud(year, v.Words)),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.ErrorContext(r.Context(), "rendering page", slog.String("error", err.Error()))
		return
	}
	s.observe(viewPage, start)
}

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

// YearlyChart handles GET /charts/yearly.svg.
func (s *Server) YearlyChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	yearly, err := s.explorer.Yearly()
	if err != nil {
		s.failText(w, r, viewYearly, err)
		return
	}
	writeSVG(w, chart.Yearly(yearly))
	s.observe(viewYearly, start)
}

// JournalsChart handles GET /charts/journals.svg?year=N.
func (s *Server) JournalsChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	year, _, err := s.selectedYear(r)
	if err != nil {
		s.failText(w, r, viewJournals, err)
		return
	}
	journals, err := s.explorer.Journals(year)
	if err != nil {
		s.failText(w, r, viewJournals, err)
		return
	}
	writeSVG(w, chart.Journals(year, journals))
	s.observe(viewJournals, start)
}

// WordsChart handles GET /charts/words.svg?year=N.
func (s *Server) WordsChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	year, _, err := s.selectedYear(r)
	if err != nil {
		s.failText(w, r, viewWords, err)
		return
	}
	words, err := s.explorer.Words(year)
	if err != nil {
		s.failText(w, r, viewWords, err)
		return
	}
	writeSVG(w, chart.WordCloud(year, words))
	s.observe(viewWords, start)
}

// GetYears handles GET /api/years.
func (s *Server) GetYears(w http.ResponseWriter, r *http.Request) {
	bounds, err := s.explorer.Bounds()
	if err != nil {
		s.failJSON(w, r, "years", err)
		return
	}
	render.JSON(w, r, bounds)
}

// GetYearly handles GET /api/views/yearly.
func (s *Server) GetYearly(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	yearly, err := s.explorer.Yearly()
	if err != nil {
		s.failJSON(w, r, viewYearly, err)
		return
	}
	render.JSON(w, r, map[string]any{"data": yearly, "count": len(yearly)})
	s.observe(viewYearly, start)
}

// GetJournals handles GET /api/views/journals?year=N.
func (s *Server) GetJournals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	year, _, err := s.selectedYear(r)
	if err != nil {
		s.failJSON(w, r, viewJournals, err)
		return
	}
	journals, err := s.explorer.Journals(year)
	if err != nil {
		s.failJSON(w, r, viewJournals, err)
		return
	}
	render.JSON(w, r, map[string]any{"year": year, "data": journals, "count": len(journals)})
	s.observe(viewJournals, start)
}

// GetWords handles GET /api/views/words?year=N.
func (s *Server) GetWords(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	year, _, err := s.selectedYear(r)
	if err != nil {
		s.failJSON(w, r, viewWords, err)
		return
	}
	words, err := s.explorer.Words(year)
	if err != nil {
		s.failJSON(w, r, viewWords, err)
		return
	}
	render.JSON(w, r, map[string]any{"year": year, "data": words, "count": len(words)})
	s.observe(viewWords, start)
}
