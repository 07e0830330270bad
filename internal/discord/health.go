package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// apiProbeTimeout bounds the points API probe behind /healthz and /ping
const apiProbeTimeout = 2 * time.Second

// HealthStatus is the body of the bot's /healthz
type HealthStatus struct {
	Status           string           `json:"status"`
	Uptime           string           `json:"uptime"`
	Connected        bool             `json:"connected"`
	APIReachable     bool             `json:"api_reachable"`
	CommandsReceived int64            `json:"commands_received"`
	LastCommandTime  *time.Time       `json:"last_command_time,omitempty"`
	Commands         map[string]int64 `json:"commands,omitempty"`
}

// CommandStats counts handled slash commands per name
type CommandStats struct {
	started  time.Time
	total    atomic.Int64
	lastNano atomic.Int64

	mu     sync.Mutex
	byName map[string]int64
}

// NewCommandStats starts the uptime clock
func NewCommandStats() *CommandStats {
	return &CommandStats{started: time.Now(), byName: make(map[string]int64)}
}

func (c *CommandStats) record(name string) {
	c.total.Add(1)
	c.lastNano.Store(time.Now().UnixNano())

	c.mu.Lock()
	c.byName[name]++
	c.mu.Unlock()
}

// Total returns the number of commands handled
func (c *CommandStats) Total() int64 { return c.total.Load() }

// Last returns when the most recent command arrived, or nil before the first
func (c *CommandStats) Last() *time.Time {
	n := c.lastNano.Load()
	if n == 0 {
		return nil
	}
	t := time.Unix(0, n)
	return &t
}

// Snapshot copies the per-command counts
func (c *CommandStats) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int64, len(c.byName))
	for k, v := range c.byName {
		out[k] = v
	}
	return out
}

// Uptime is the time since the stats were created
func (c *CommandStats) Uptime() time.Duration { return time.Since(c.started) }

// HandleHealth reports gateway and points API state; either being down is degraded
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	connected := h.bot.Session != nil && h.bot.Session.DataReady

	apiReachable := false
	if h.bot.Client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), apiProbeTimeout)
		apiReachable = h.bot.Client.Healthy(ctx)
		cancel()
	}

	health := HealthStatus{
		Status:       healthStatusHealthy,
		Connected:    connected,
		APIReachable: apiReachable,
	}
	if stats := h.bot.stats(); stats != nil {
		health.Uptime = stats.Uptime().Round(time.Second).String()
		health.CommandsReceived = stats.Total()
		health.LastCommandTime = stats.Last()
		health.Commands = stats.Snapshot()
	}

	code := http.StatusOK
	if !connected || !apiReachable {
		health.Status = healthStatusDegraded
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Debug("Failed to write health response", "error", err)
	}
}

const (
	healthStatusHealthy  = "healthy"
	healthStatusDegraded = "degraded"
)
