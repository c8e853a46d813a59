package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectStore reads project metadata from the relational database.
type ProjectStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProjectStore creates a store over an open gorm connection.
func NewProjectStore(db *gorm.DB, logger *zap.Logger) *ProjectStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectStore{
		db:     db,
		logger: logger.With(zap.String("component", "project_store")),
	}
}

// ResolveGroups returns the project's disabled and public document group
// names. Public means enabled and not private.
func (s *ProjectStore) ResolveGroups(ctx context.Context, projectID string) (disabled, public []string, err error) {
	var groups []DocGroup
	if err := s.db.WithContext(ctx).
		Where("course_name = ?", projectID).
		Find(&groups).Error; err != nil {
		return nil, nil, fmt.Errorf("load doc groups for %q: %w", projectID, err)
	}

	for _, g := range groups {
		switch {
		case !g.Enabled:
			disabled = append(disabled, g.Name)
		case !g.Private:
			public = append(public, g.Name)
		}
	}
	return disabled, public, nil
}

// ListMaterials returns the distinct documents of a project.
func (s *ProjectStore) ListMaterials(ctx context.Context, projectID string) ([]Material, error) {
	var materials []Material
	err := s.db.WithContext(ctx).
		Model(&Document{}).
		Distinct("readable_filename", "s3_path", "url", "base_url").
		Where("course_name = ?", projectID).
		Order("readable_filename").
		Scan(&materials).Error
	if err != nil {
		return nil, fmt.Errorf("list materials for %q: %w", projectID, err)
	}
	return materials, nil
}

// Stats aggregates document and conversation counts for a project.
func (s *ProjectStore) Stats(ctx context.Context, projectID string) (*ProjectStats, error) {
	stats := &ProjectStats{ProjectID: projectID}

	if err := s.db.WithContext(ctx).
		Model(&Document{}).
		Where("course_name = ?", projectID).
		Count(&stats.Documents).Error; err != nil {
		return nil, fmt.Errorf("count documents for %q: %w", projectID, err)
	}
	if err := s.db.WithContext(ctx).
		Model(&Conversation{}).
		Where("course_name = ?", projectID).
		Count(&stats.Conversations).Error; err != nil {
		return nil, fmt.Errorf("count conversations for %q: %w", projectID, err)
	}
	if err := s.db.WithContext(ctx).
		Model(&Conversation{}).
		Where("course_name = ?", projectID).
		Distinct("user_email").
		Count(&stats.UniqueUsers).Error; err != nil {
		return nil, fmt.Errorf("count users for %q: %w", projectID, err)
	}
	return stats, nil
}

// ConversationActivity returns the project's conversation volume grouped
// by day, hour, and weekday. Timestamps are bucketed in Go; the query
// itself stays dialect-neutral.
func (s *ProjectStore) ConversationActivity(ctx context.Context, projectID string) (*ConversationActivity, error) {
	var times []time.Time
	if err := s.db.WithContext(ctx).
		Model(&Conversation{}).
		Where("course_name = ?", projectID).
		Pluck("created_at", &times).Error; err != nil {
		return nil, fmt.Errorf("conversation activity for %q: %w", projectID, err)
	}

	activity := &ConversationActivity{
		PerDay:     make(map[string]int64),
		PerHour:    make(map[int]int64),
		PerWeekday: make(map[string]int64),
	}
	for _, ts := range times {
		activity.PerDay[ts.Format("2006-01-02")]++
		activity.PerHour[ts.Hour()]++
		activity.PerWeekday[ts.Weekday().String()]++
	}
	return activity, nil
}

// ModelUsageCounts returns per-model conversation counts, most used first.
func (s *ProjectStore) ModelUsageCounts(ctx context.Context, projectID string) ([]ModelUsage, error) {
	var usage []ModelUsage
	err := s.db.WithContext(ctx).
		Model(&Conversation{}).
		Select("model, count(*) as count").
		Where("course_name = ?", projectID).
		Group("model").
		Order("count DESC").
		Scan(&usage).Error
	if err != nil {
		return nil, fmt.Errorf("model usage for %q: %w", projectID, err)
	}
	return usage, nil
}
