package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	"live-sports-service/internal/dispatch"
	"live-sports-service/internal/domain"
	"live-sports-service/internal/logging"
	"live-sports-service/internal/upstream"
)

// Handler wires HTTP routes to the query dispatcher.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	readyFn    func() error
}

// NewHandler constructs a Handler. readyFn, when set, gates the /ready
// probe; a returned error is reported as not-ready.
func NewHandler(dispatcher *dispatch.Dispatcher, logger *slog.Logger, readyFn func() error) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
		readyFn:    readyFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.readyFn != nil {
		if err := h.readyFn(); err != nil {
			writeError(w, nethttp.StatusServiceUnavailable, err.Error(), h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Live serves GET /api/live: the unified query surface over every
// registered sport upstream.
func (h *Handler) Live(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := r.URL.Query()
	params := dispatch.Params{
		Sport:    q.Get("sport"),
		MatchID:  q.Get("matchId"),
		TeamID:   q.Get("teamId"),
		H2H:      q.Get("h2h"),
		Season:   q.Get("season"),
		League:   q.Get("league"),
		Last:     parseLast(q.Get("last")),
		LiveOnly: parseBool(q.Get("live")),
	}

	logger := logging.FromContext(r.Context(), h.logger)

	env, err := h.dispatcher.Query(r.Context(), params)
	if err != nil {
		h.writeQueryError(w, logger, env, err)
		return
	}

	logging.Info(logger, "query served",
		logging.FieldSport, env.Sport,
		logging.FieldCount, len(env.Response))
	writeJSON(w, nethttp.StatusOK, env, h.logger)
}

// writeQueryError maps the dispatcher's error taxonomy onto the
// uniform error envelope.
func (h *Handler) writeQueryError(w nethttp.ResponseWriter, logger *slog.Logger, env domain.Envelope, err error) {
	switch {
	case errors.Is(err, upstream.ErrMissingAPIKey):
		logging.Error(logger, "upstream credential missing", err)
		writeError(w, nethttp.StatusInternalServerError, "missing API key", h.logger)

	default:
		if mErr, ok := dispatch.AsMalformedParameterError(err); ok {
			writeError(w, nethttp.StatusBadRequest, mErr.Error(), h.logger)
			return
		}
		if uErr, ok := dispatch.AsUnsupportedCapabilityError(err); ok {
			// Not a hard failure: callers may treat this as "no data".
			writeJSON(w, nethttp.StatusBadRequest, map[string]any{
				"error":    uErr.Error(),
				"sport":    env.Sport,
				"response": env.Response,
			}, h.logger)
			return
		}
		if rlErr, ok := upstream.AsRateLimitError(err); ok {
			writeJSON(w, rlErr.StatusCode, map[string]any{
				"error":  "upstream error",
				"status": rlErr.StatusCode,
			}, h.logger)
			return
		}
		if sErr, ok := upstream.AsStatusError(err); ok {
			writeJSON(w, sErr.Code, map[string]any{
				"error":  "upstream error",
				"status": sErr.Code,
			}, h.logger)
			return
		}
		logging.Error(logger, "upstream fetch failed", err)
		writeJSON(w, nethttp.StatusInternalServerError, map[string]any{
			"error":   "upstream fetch failed",
			"details": err.Error(),
		}, h.logger)
	}
}

func parseLast(raw string) int {
	if raw == "" {
		return 0
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return val
}

func parseBool(raw string) bool {
	return raw == "1" || strings.EqualFold(raw, "true")
}
