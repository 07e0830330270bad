package discord

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/GuildPoints_Go/internal/handler"
)

const (
	announceMaxBody   = 16 << 10
	readHeaderTimeout = 5 * time.Second
)

// HTTPServer is the bot's internal listener: health probe, metrics and the announcement hook
type HTTPServer struct {
	server    *http.Server
	bot       *Bot
	apiKey    string
	channelID string
}

// NewHTTPServer builds the listener. Announcements go to channelID and must
// carry apiKey in X-API-Key.
func NewHTTPServer(port string, bot *Bot, apiKey, channelID string) *HTTPServer {
	srv := &HTTPServer{
		bot:       bot,
		apiKey:    apiKey,
		channelID: channelID,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", srv.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.With(srv.requireAPIKey).Post("/admin/announce", srv.handleAnnounce)

	srv.server = &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return srv
}

// Start serves in the background until Stop
func (s *HTTPServer) Start() {
	go func() {
		slog.Info("Starting Discord internal HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Discord internal HTTP server failed", "error", err)
		}
	}()
}

// Stop drains in-flight requests until ctx expires
func (s *HTTPServer) Stop(ctx context.Context) {
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Discord internal HTTP server shutdown failed", "error", err)
	}
}

func (s *HTTPServer) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get("X-API-Key")
		if s.apiKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(s.apiKey)) != 1 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AnnounceRequest is the body of POST /admin/announce. Color defaults to ColorSuccess.
type AnnounceRequest struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description" validate:"max=4096"`
	Color       int    `json:"color" validate:"gte=0,lte=16777215"`
}

func (s *HTTPServer) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	var req AnnounceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, announceMaxBody)).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := handler.GetValidator().ValidateStruct(req); err != nil {
		http.Error(w, "Invalid announcement", http.StatusBadRequest)
		return
	}

	if req.Color == 0 {
		req.Color = ColorSuccess
	}
	embed := createEmbed(req.Title, req.Description, req.Color, "")
	embed.Timestamp = time.Now().Format(time.RFC3339)

	if err := s.bot.SendChannelMessage(s.channelID, embed); err != nil {
		slog.Error("Failed to send announcement", "channel_id", s.channelID, "error", err)
		http.Error(w, "Failed to send to Discord", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Debug("Failed to write announce response", "error", err)
	}
}
