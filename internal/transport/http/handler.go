package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/logging"
)

// NewRouter serves the read-only reporting endpoints and the live feed.
func NewRouter(service *app.GameService, watcher *app.LeaderboardWatcher, log zerolog.Logger) http.Handler {
	h := &reportHandler{service: service, log: log.With().Str("component", "http").Logger()}
	ws := NewWSHandler(watcher, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/leaderboard", h.leaderboard)
	mux.HandleFunc("/history", h.history)
	mux.HandleFunc("/ws", ws.ServeWS)
	return withRequestLogger(mux, h.log)
}

// withRequestLogger stores a logger tagged with the request path in the request context.
func withRequestLogger(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
		next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), reqLog)))
	})
}

type reportHandler struct {
	service *app.GameService
	log     zerolog.Logger
}

func (h *reportHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *reportHandler) history(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rep, err := h.service.History(r.Context(), r.URL.Query().Get("name"))
	if errors.Is(err, domain.ErrEmptyPlayerName) {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if rep.Entries == nil {
		rep.Entries = []domain.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *reportHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := logging.FromContext(r.Context())
	log.Error().Err(err).Msg("report request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
