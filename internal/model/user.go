package model

import "time"

// User roles. The role string gates bulk credit, report resolution and
// visibility of disabled media; there is no further authorization model.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User is a registered catalog user.
type User struct {
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	AvatarColor string     `json:"avatar_color,omitempty"`
	LastActive  *time.Time `json:"last_active,omitempty"`

	// Aggregated progress stats, joined in listings.
	WatchedCount  int        `json:"watched_count"`
	GradesTouched int        `json:"grades_touched"`
	LastActivity  *time.Time `json:"last_activity,omitempty"`
}

// StudentSummary is one row of the teacher dashboard's student listing.
type StudentSummary struct {
	StudentID     string     `json:"student_id"`
	Name          string     `json:"name"`
	AvatarColor   string     `json:"avatar_color,omitempty"`
	WatchedCount  int        `json:"watched_count"`
	GradesTouched int        `json:"grades_touched"`
	LastActivity  *time.Time `json:"last_activity,omitempty"`
	RecentTitles  []string   `json:"recent_titles,omitempty"`
}

// CanModerate reports whether a role may resolve reports and grant bulk
// credit, and whether disabled media is shown unredacted to it.
func CanModerate(role string) bool {
	return role == RoleTeacher || role == RoleAdmin
}
