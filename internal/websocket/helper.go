package websocket

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *WebSocketHandler) extractRoomCode(r *http.Request) string {
	if code := chi.URLParam(r, "code"); code != "" {
		return code
	}

	// Fall back to query param for clients that can't build path URLs
	if code := r.URL.Query().Get("room"); code != "" {
		return code
	}

	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) >= 2 && pathParts[len(pathParts)-2] == "rooms" {
		return pathParts[len(pathParts)-1]
	}

	return ""
}

func (h *WebSocketHandler) getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}

func (h *WebSocketHandler) checkRateLimit(clientIP string) bool {
	if !h.RateLimit.Enabled {
		return true
	}

	h.rateLimiterMu.RLock()
	limiter, exists := h.rateLimiters[clientIP]
	h.rateLimiterMu.RUnlock()

	if !exists {
		h.rateLimiterMu.Lock()
		limiter = &RateLimiter{
			connections: make(map[string]int),
			lastSeen:    time.Now(),
		}
		h.rateLimiters[clientIP] = limiter
		h.rateLimiterMu.Unlock()
	}

	limiter.mu.RLock()
	connections := limiter.connections[clientIP]
	limiter.mu.RUnlock()

	return connections < h.RateLimit.ConnectionsPerIP
}

func (h *WebSocketHandler) updateConnectionCount(clientIP string, delta int) {
	h.rateLimiterMu.RLock()
	limiter, exists := h.rateLimiters[clientIP]
	h.rateLimiterMu.RUnlock()

	if !exists {
		return
	}

	limiter.mu.Lock()
	limiter.connections[clientIP] += delta
	limiter.lastSeen = time.Now()
	if limiter.connections[clientIP] <= 0 {
		delete(limiter.connections, clientIP)
	}
	limiter.mu.Unlock()
}

func (h *WebSocketHandler) cleanupRateLimiters() {
	now := time.Now()

	h.rateLimiterMu.Lock()
	defer h.rateLimiterMu.Unlock()

	for ip, limiter := range h.rateLimiters {
		limiter.mu.Lock()
		idle := len(limiter.connections) == 0 && now.Sub(limiter.lastSeen) > h.RateLimit.WindowSize
		limiter.mu.Unlock()

		if idle {
			delete(h.rateLimiters, ip)
		}
	}
}

// StartMaintenance runs the rate limiter cleanup until stop is closed.
func (h *WebSocketHandler) StartMaintenance(stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.cleanupRateLimiters()
		}
	}
}
