package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/nutrition-api/internal/domain"
	"github.com/couchcryptid/nutrition-api/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// API metadata served at the root route.
const (
	apiTitle       = "Nutrition API"
	apiDescription = "An API for getting nutrition information about food."
	apiVersion     = "1.0.0"
)

// NutritionService is the query surface the API exposes.
type NutritionService interface {
	ListFoods(ctx context.Context) ([]string, error)
	Food(ctx context.Context, name string) (domain.Food, error)
	Compute(ctx context.Context, q domain.Query) (domain.Result, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the nutrition API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        NutritionService
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /api routes and /healthz, /readyz,
// and /metrics.
func NewServer(addr string, svc NutritionService, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:     svc,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /{$}", s.instrument("/", s.handleRoot))
	mux.HandleFunc("GET /api/foods", s.instrument("/api/foods", s.handleListFoods))
	mux.HandleFunc("GET /api/foods/{name}", s.instrument("/api/foods/{name}", s.handleFood))
	mux.HandleFunc("POST /api/nutrition", s.instrument("/api/nutrition", s.handleNutritionPost))
	mux.HandleFunc("GET /api/nutrition", s.instrument("/api/nutrition", s.handleNutritionGet))

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(svc))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]string{
		"title":       apiTitle,
		"description": apiDescription,
		"version":     apiVersion,
	})
}

func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.ListFoods(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string][]string{"foods": names})
}

func (s *Server) handleFood(w http.ResponseWriter, r *http.Request) {
	food, err := s.svc.Food(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, food)
}

// nutritionRequest uses pointers so absent fields can be told apart from
// zero values.
type nutritionRequest struct {
	FoodName *string  `json:"food_name"`
	Weight   *float64 `json:"weight"`
}

func (s *Server) handleNutritionPost(w http.ResponseWriter, r *http.Request) {
	var req nutritionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.FoodName == nil || req.Weight == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "food_name and weight are required")
		return
	}
	s.compute(w, r, domain.Query{FoodName: *req.FoodName, Weight: *req.Weight})
}

func (s *Server) handleNutritionGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has("food_name") || !params.Has("weight") {
		writeDetail(w, http.StatusUnprocessableEntity, "food_name and weight are required")
		return
	}
	weight, err := strconv.ParseFloat(params.Get("weight"), 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("weight %q is not a number", params.Get("weight")))
		return
	}
	s.compute(w, r, domain.Query{FoodName: params.Get("food_name"), Weight: weight})
}

func (s *Server) compute(w http.ResponseWriter, r *http.Request, q domain.Query) {
	res, err := s.svc.Compute(r.Context(), q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// writeError maps domain error kinds to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var notFound *domain.FoodNotFoundError
	switch {
	case errors.As(err, &notFound):
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Food '%s' not found", notFound.Name))
	case errors.Is(err, domain.ErrDataUnavailable):
		writeDetail(w, http.StatusNotFound, "Food list not available. Check server data.")
	case errors.Is(err, domain.ErrInvalidWeight), errors.Is(err, domain.ErrOutOfRange):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}

// instrument records request duration by route and status code.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.RequestDuration.
			WithLabelValues(route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	sharedobs.WriteJSON(w, status, map[string]string{"detail": detail})
}

// writeJSON encodes v before committing the status so an unencodable value
// becomes a 500 instead of an empty 200.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n')) //nolint:errcheck // client may have gone away
}
