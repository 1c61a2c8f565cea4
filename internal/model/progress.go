package model

import "time"

// WatchedRecord is one student's progress row for a media item. Rows are
// never deleted, only flipped.
type WatchedRecord struct {
	StudentID   string     `json:"student_id"`
	MediaID     int64      `json:"media_id"`
	Watched     bool       `json:"watched"`
	Notes       string     `json:"notes,omitempty"`
	Rating      int        `json:"rating,omitempty"`
	WatchDate   *time.Time `json:"watch_date,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
	MediaTitle  string     `json:"title,omitempty"`
	MediaType   string     `json:"type,omitempty"`
	GradeNumber string     `json:"grade_number,omitempty"`
}

// ProgressRequest is the API request body for saving watched status.
type ProgressRequest struct {
	StudentID string `json:"studentId"`
	MediaID   int64  `json:"mediaId"`
	Watched   bool   `json:"watched"`
	Notes     string `json:"notes,omitempty"`
	Rating    int    `json:"rating,omitempty"`
}

// BulkCreditRequest is the API request body for marking a media item
// watched (or unwatched) for every registered student at once.
type BulkCreditRequest struct {
	MediaID  int64  `json:"mediaId"`
	Watched  bool   `json:"watched"`
	MarkedBy string `json:"markedBy"`
}

// BulkCreditResponse reports how many students a bulk credit reached.
// StudentsUpdated may be lower than the student count when the loop
// failed partway; partial completion is reported, not rolled back.
type BulkCreditResponse struct {
	Success         bool  `json:"success"`
	StudentsUpdated int   `json:"studentsUpdated"`
	MediaID         int64 `json:"mediaId"`
	Watched         bool  `json:"watched"`
}
