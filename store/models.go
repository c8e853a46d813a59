// Package store persists project metadata: document groups, ingested
// documents, and conversation records, with a Redis read-through cache in
// front of the permission lookups.
package store

import "time"

// DocGroup is one named document group inside a project. Disabled groups
// are hidden from retrieval; private groups are excluded unless requested
// explicitly.
type DocGroup struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_doc_groups_project_name"`
	ProjectID string    `gorm:"size:255;not null;uniqueIndex:idx_doc_groups_project_name;column:course_name"`
	Enabled   bool      `gorm:"not null;default:true"`
	Private   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (DocGroup) TableName() string { return "doc_groups" }

// Document is one ingested source document.
type Document struct {
	ID           uint      `gorm:"primaryKey"`
	ProjectID    string    `gorm:"size:255;not null;index;column:course_name"`
	ReadableName string    `gorm:"size:512;column:readable_filename"`
	S3Path       string    `gorm:"size:1024;column:s3_path"`
	URL          string    `gorm:"size:2048"`
	BaseURL      string    `gorm:"size:2048;column:base_url"`
	CreatedAt    time.Time
}

func (Document) TableName() string { return "documents" }

// Conversation is one stored conversation, kept for usage statistics.
type Conversation struct {
	ID        uint      `gorm:"primaryKey"`
	ProjectID string    `gorm:"size:255;not null;index;column:course_name"`
	UserEmail string    `gorm:"size:255;index"`
	Model     string    `gorm:"size:128"`
	CreatedAt time.Time
}

func (Conversation) TableName() string { return "conversations" }

// Material is one distinct document reference surfaced to clients.
type Material struct {
	ReadableName string `gorm:"column:readable_filename" json:"readable_filename"`
	S3Path       string `gorm:"column:s3_path" json:"s3_path,omitempty"`
	URL          string `gorm:"column:url" json:"url,omitempty"`
	BaseURL      string `gorm:"column:base_url" json:"base_url,omitempty"`
}

// ProjectStats summarizes a project's stored activity.
type ProjectStats struct {
	ProjectID     string `json:"project_id"`
	Documents     int64  `json:"documents"`
	Conversations int64  `json:"conversations"`
	UniqueUsers   int64  `json:"unique_users"`
}

// ModelUsage counts conversations per model inside a project.
type ModelUsage struct {
	Model string `json:"model"`
	Count int64  `json:"count"`
}

// ConversationActivity buckets a project's conversation volume by calendar
// day, hour of day, and weekday.
type ConversationActivity struct {
	PerDay     map[string]int64 `json:"per_day"`
	PerHour    map[int]int64    `json:"per_hour"`
	PerWeekday map[string]int64 `json:"per_weekday"`
}
