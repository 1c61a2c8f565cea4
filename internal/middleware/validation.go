package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxStudentIDLen = 64  // users.user_id VARCHAR(64)
	MaxNotesLen     = 500 // student_progress.notes TEXT, capped at API edge
	MaxDetailsLen   = 1000
)

var (
	// gradeNumRe matches one or two digit grade numbers.
	gradeNumRe = regexp.MustCompile(`^[0-9]{1,2}$`)
	// studentIDRe matches identifiers like "student_a1b2c3d4e" plus plain usernames.
	studentIDRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// reportTypes enumerates the accepted values for reports.report_type.
var reportTypes = map[string]bool{
	"broken_link":   true,
	"inappropriate": true,
	"inaccurate":    true,
	"wrong_grade":   true,
	"other":         true,
}

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateGradeNumber checks that a grade path parameter is numeric.
func ValidateGradeNumber(grade string) (string, string) {
	grade = strings.TrimSpace(grade)
	if grade == "" {
		return "", "grade number is required"
	}
	if !gradeNumRe.MatchString(grade) {
		return "", "grade number must be numeric"
	}
	return grade, ""
}

// ValidateStudentID checks that a student ID is well-formed and within DB limits.
func ValidateStudentID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "studentId is required"
	}
	if len(id) > MaxStudentIDLen {
		return "", "studentId must be at most 64 characters"
	}
	if !studentIDRe.MatchString(id) {
		return "", "studentId contains invalid characters"
	}
	return id, ""
}

// ValidateReportType checks that a report type is one of the accepted values.
func ValidateReportType(reportType string) (string, string) {
	reportType = strings.TrimSpace(strings.ToLower(reportType))
	if reportType == "" {
		return "", "reportType is required"
	}
	if !reportTypes[reportType] {
		return "", "reportType must be one of: broken_link, inappropriate, inaccurate, wrong_grade, other"
	}
	return reportType, ""
}

// ValidateNotes trims and truncates free-text notes to the API cap.
func ValidateNotes(notes string) string {
	notes = strings.TrimSpace(notes)
	if len(notes) > MaxNotesLen {
		notes = notes[:MaxNotesLen]
	}
	return notes
}
