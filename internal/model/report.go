package model

import "time"

// Report statuses.
const (
	ReportPending  = "pending"
	ReportResolved = "resolved"
)

// Report is a flag raised against a media item. Creating one immediately
// disables the referenced media for students; resolution optionally
// re-enables it.
type Report struct {
	ID           int64      `json:"id"`
	MediaID      int64      `json:"media_id"`
	ReporterID   string     `json:"reporter_id"`
	ReporterName string     `json:"reporter_name,omitempty"`
	ReportType   string     `json:"report_type"`
	Notes        string     `json:"notes,omitempty"`
	Status       string     `json:"status"`
	ResolvedBy   string     `json:"resolved_by,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	// Joined context for the moderation queue listing.
	MediaTitle   string `json:"media_title,omitempty"`
	MediaType    string `json:"media_type,omitempty"`
	TopicName    string `json:"topic_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	GradeNumber  string `json:"grade_number,omitempty"`
}

// ReportRequest is the API request body for submitting a report.
type ReportRequest struct {
	MediaID      int64  `json:"mediaId"`
	ReporterID   string `json:"reporterId"`
	ReporterName string `json:"reporterName,omitempty"`
	ReportType   string `json:"reportType"`
	Notes        string `json:"notes,omitempty"`
}

// ReportResolveRequest is the API request body for resolving a report.
type ReportResolveRequest struct {
	Status        string `json:"status"`
	ResolvedBy    string `json:"resolvedBy"`
	ReenableMedia bool   `json:"reenableMedia,omitempty"`
}
