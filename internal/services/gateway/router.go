package gateway

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rs-patil/cropadvisor/internal/metrics"
)

// Routes assembles the full router, middleware included.
func (g *Gateway) Routes(rateLimit int, rateWindow time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(g.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	if rateLimit > 0 {
		r.Use(httprate.LimitByIP(rateLimit, rateWindow))
	}

	r.Get("/", g.handleRoot)
	r.Get("/health", g.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/recommend", g.handleRecommend)
		r.Get("/weather/{lat}/{lon}", g.handleWeather)
		r.Get("/soil/{lat}/{lon}", g.handleSoil)
		r.Get("/location/{lat}/{lon}", g.handleLocation)
		r.Get("/soil-weather-data/{lat}/{lon}", g.handleSoilWeather)
		r.Get("/market-trends", g.handleMarketTrends)
		r.Post("/soil-treatment", g.handleSoilTreatment)
		r.Get("/rotation-plan/{crop}", g.handleRotationPlan)
		r.Get("/crops", g.handleCrops)
		r.Post("/analyze-crop", g.handleAnalyzeCrop)
		r.Post("/analyze-crop-detailed", g.handleAnalyzeCropDetailed)
	})

	return r
}

// requestLogger records one structured line and the Prometheus counters
// per request.
func (g *Gateway) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		elapsed := time.Since(start)

		metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		g.log.Info().
			Str("method", r.Method).
			Str("route", route).
			Int("status", ww.Status()).
			Dur("elapsed", elapsed).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
