package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// clientIP extracts the caller address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// criteriaFromQuery builds filter criteria from query parameters. Absent
// year/month default to the current calendar month; category defaults to
// the all-categories sentinel.
func (s *Server) criteriaFromQuery(r *http.Request) (analytics.Criteria, error) {
	c := analytics.CurrentMonth(s.now())
	q := r.URL.Query()

	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 1970 || year > 9999 {
			return analytics.Criteria{}, fmt.Errorf("invalid year %q", v)
		}
		c.Year = year
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return analytics.Criteria{}, fmt.Errorf("invalid month %q", v)
		}
		c.Month = month
	}
	if v := q.Get("category"); v != "" {
		id := core.CategoryID(v)
		if _, ok := core.CategoryByID(id); !ok && id != core.CategoryAll {
			return analytics.Criteria{}, fmt.Errorf("unknown category %q", v)
		}
		c.Category = id
	}
	if v := q.Get("type"); v != "" {
		kind := core.Kind(v)
		if err := kind.Validate(); err != nil {
			return analytics.Criteria{}, fmt.Errorf("invalid type %q", v)
		}
		c.Kind = kind
	}
	if v := q.Get("paymentMode"); v != "" {
		c.PaymentMode = core.PaymentMode(v)
	}

	return c, nil
}

func cacheKey(c analytics.Criteria) string {
	return fmt.Sprintf("%d-%02d-%s-%s-%s", c.Year, c.Month, c.Category, c.Kind, c.PaymentMode)
}
