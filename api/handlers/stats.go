package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/ragflow/store"
)

// StatsProvider aggregates project usage numbers.
type StatsProvider interface {
	Stats(ctx context.Context, projectID string) (*store.ProjectStats, error)
	ModelUsageCounts(ctx context.Context, projectID string) ([]store.ModelUsage, error)
	ConversationActivity(ctx context.Context, projectID string) (*store.ConversationActivity, error)
}

// StatsHandler serves project statistics endpoints.
type StatsHandler struct {
	provider StatsProvider
	logger   *zap.Logger
}

// NewStatsHandler creates the stats handler.
func NewStatsHandler(provider StatsProvider, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{
		provider: provider,
		logger:   logger.With(zap.String("component", "stats_handler")),
	}
}

// ProjectStats handles GET /stats.
func (h *StatsHandler) ProjectStats(w http.ResponseWriter, r *http.Request) {
	projectID := strings.TrimSpace(r.URL.Query().Get("course_name"))
	if projectID == "" {
		WriteErrorMessage(w, http.StatusBadRequest, "INVALID_REQUEST", "course_name is required")
		return
	}

	stats, err := h.provider.Stats(r.Context(), projectID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	WriteSuccess(w, stats)
}

// ConversationActivity handles GET /stats/conversations.
func (h *StatsHandler) ConversationActivity(w http.ResponseWriter, r *http.Request) {
	projectID := strings.TrimSpace(r.URL.Query().Get("course_name"))
	if projectID == "" {
		WriteErrorMessage(w, http.StatusBadRequest, "INVALID_REQUEST", "course_name is required")
		return
	}

	activity, err := h.provider.ConversationActivity(r.Context(), projectID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	WriteSuccess(w, activity)
}

// ModelUsage handles GET /stats/models.
func (h *StatsHandler) ModelUsage(w http.ResponseWriter, r *http.Request) {
	projectID := strings.TrimSpace(r.URL.Query().Get("course_name"))
	if projectID == "" {
		WriteErrorMessage(w, http.StatusBadRequest, "INVALID_REQUEST", "course_name is required")
		return
	}

	usage, err := h.provider.ModelUsageCounts(r.Context(), projectID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	if usage == nil {
		usage = []store.ModelUsage{}
	}
	WriteSuccess(w, usage)
}
