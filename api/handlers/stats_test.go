package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BaSui01/ragflow/store"
)

type fakeStats struct {
	stats    *store.ProjectStats
	usage    []store.ModelUsage
	activity *store.ConversationActivity
	err      error
}

func (f *fakeStats) Stats(context.Context, string) (*store.ProjectStats, error) {
	return f.stats, f.err
}

func (f *fakeStats) ModelUsageCounts(context.Context, string) ([]store.ModelUsage, error) {
	return f.usage, f.err
}

func (f *fakeStats) ConversationActivity(context.Context, string) (*store.ConversationActivity, error) {
	return f.activity, f.err
}

func TestStatsHandler_ProjectStats(t *testing.T) {
	h := NewStatsHandler(&fakeStats{stats: &store.ProjectStats{
		ProjectID: "bio200", Documents: 12, Conversations: 40, UniqueUsers: 7,
	}}, nil)

	rec := httptest.NewRecorder()
	h.ProjectStats(rec, httptest.NewRequest(http.MethodGet, "/stats?course_name=bio200", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"documents":12`)
}

func TestStatsHandler_ModelUsage(t *testing.T) {
	h := NewStatsHandler(&fakeStats{usage: []store.ModelUsage{
		{Model: "gpt-4o", Count: 30},
	}}, nil)

	rec := httptest.NewRecorder()
	h.ModelUsage(rec, httptest.NewRequest(http.MethodGet, "/stats/models?course_name=bio200", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gpt-4o")
}

func TestStatsHandler_ConversationActivity(t *testing.T) {
	h := NewStatsHandler(&fakeStats{activity: &store.ConversationActivity{
		PerDay:     map[string]int64{"2026-08-31": 2},
		PerHour:    map[int]int64{9: 2},
		PerWeekday: map[string]int64{"Monday": 2},
	}}, nil)

	rec := httptest.NewRecorder()
	h.ConversationActivity(rec, httptest.NewRequest(http.MethodGet, "/stats/conversations?course_name=bio200", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"2026-08-31":2`)
	assert.Contains(t, rec.Body.String(), `"Monday":2`)
}

func TestStatsHandler_RequiresProject(t *testing.T) {
	h := NewStatsHandler(&fakeStats{}, nil)

	rec := httptest.NewRecorder()
	h.ProjectStats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ModelUsage(rec, httptest.NewRequest(http.MethodGet, "/stats/models", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ConversationActivity(rec, httptest.NewRequest(http.MethodGet, "/stats/conversations", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
