package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/attendance"
	"github.com/osse101/GuildPoints_Go/internal/handler"
	"github.com/osse101/GuildPoints_Go/internal/ledger"
	"github.com/osse101/GuildPoints_Go/internal/logger"
	"github.com/osse101/GuildPoints_Go/internal/metrics"
	"github.com/osse101/GuildPoints_Go/internal/redemption"
	"github.com/osse101/GuildPoints_Go/internal/wager"
)

// Config holds the HTTP listener settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
}

// Services are the economy components exposed over HTTP
type Services struct {
	Accounts   account.Service
	Ledger     ledger.Service
	Attendance attendance.Service
	Wagers     wager.Resolver
	Redemption redemption.Service
	DailyReset handler.DailyResetter
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, svc Services) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, svc),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the full route tree. Exposed for tests that drive the API without a listener.
func NewRouter(cfg Config, svc Services) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Accounts))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/attendance/check-in", handler.HandleCheckIn(svc.Attendance))

		r.Get("/account/balance", handler.HandleGetBalance(svc.Ledger))
		r.Get("/leaderboard", handler.HandleGetLeaderboard(svc.Ledger))

		r.Route("/wager", func(r chi.Router) {
			r.Get("/games", handler.HandleListGames(svc.Wagers))
			r.Post("/{game}", handler.HandleWager(svc.Wagers))
		})

		r.Post("/coupon/redeem", handler.HandleRedeemCoupon(svc.Redemption))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", handler.HandleListCatalog(svc.Redemption))
			r.Post("/purchase", handler.HandlePurchase(svc.Redemption))
		})

		adminPoints := handler.NewAdminPointsHandler(svc.Ledger)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/grant", adminPoints.HandleGrant)
			r.Post("/revoke", adminPoints.HandleRevoke)
			r.Post("/bonus", adminPoints.HandleGrantBonus)
			r.Get("/cache/stats", handler.HandleGetCacheStats(svc.Accounts))

			if svc.DailyReset != nil {
				r.Post("/daily-reset", handler.NewAdminDailyResetHandler(svc.DailyReset).HandleManualReset)
			}
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
