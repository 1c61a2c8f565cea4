package browse

import (
	"strings"

	"github.com/andytrench/history-media-hunter/internal/model"
)

// Visibility of a media item for a given role.
type Visibility int

const (
	// VisibilityFull shows the item as-is.
	VisibilityFull Visibility = iota
	// VisibilityReported shows full content plus a reported indicator
	// (teachers and admins reviewing flagged items).
	VisibilityReported
	// VisibilityRedacted shows a redacted placeholder (students looking
	// at disabled items).
	VisibilityRedacted
)

// VisibilityFor applies the viewing-permission rule: disabled media is
// redacted for students while teachers and admins see it with a reported
// indicator.
func VisibilityFor(m *model.Media, role string) Visibility {
	if !m.Disabled {
		return VisibilityFull
	}
	if model.CanModerate(role) {
		return VisibilityReported
	}
	return VisibilityRedacted
}

// ServiceBadge is the display badge for a streaming service.
type ServiceBadge struct {
	Icon  string
	Color string
}

var defaultBadge = ServiceBadge{Icon: "TV", Color: "#888888"}

// serviceBadges maps known streaming services to their badges. Unknown
// services get defaultBadge.
var serviceBadges = map[string]ServiceBadge{
	"Disney+":            {Icon: "D+", Color: "#113ccf"},
	"Netflix":            {Icon: "N", Color: "#e50914"},
	"PBS":                {Icon: "PBS", Color: "#2638c4"},
	"YouTube":            {Icon: "YT", Color: "#ff0000"},
	"Amazon":             {Icon: "A", Color: "#ff9900"},
	"Amazon Prime Video": {Icon: "P", Color: "#00A8E1"},
	"Hulu":               {Icon: "h", Color: "#1ce783"},
	"HBO Max":            {Icon: "HBO", Color: "#5822b4"},
	"BrainPOP":           {Icon: "BP", Color: "#ff6b35"},
	"JustWatch":          {Icon: "JW", Color: "#ffce00"},
	"YouTube (Trailer)":  {Icon: "YT", Color: "#ff0000"},
}

// BadgeFor returns the display badge for a streaming service name.
func BadgeFor(service string) ServiceBadge {
	if b, ok := serviceBadges[service]; ok {
		return b
	}
	return defaultBadge
}

var typeIcons = map[string]string{
	model.MediaTypeMovie:       "movie",
	model.MediaTypeDocumentary: "documentary",
	model.MediaTypeSeries:      "series",
	model.MediaTypeShort:       "short",
	model.MediaTypeEducational: "educational",
}

// TypeIcon returns the icon name for a media type, defaulting to the
// movie icon for unknown types.
func TypeIcon(mediaType string) string {
	if icon, ok := typeIcons[mediaType]; ok {
		return icon
	}
	return typeIcons[model.MediaTypeMovie]
}

// RatingClass buckets a free-form classification string into a CSS class.
// Unrated content is bucketed with the caution group so it is never styled
// as safe for the youngest viewers; unrecognized strings get no class.
func RatingClass(rating string) string {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "G", "TV-Y", "TV-Y7", "TV-G":
		return "rating-safe"
	case "PG", "PG-13", "TV-PG", "TV-14", "NR":
		return "rating-caution"
	case "R", "TV-MA":
		return "rating-restricted"
	default:
		return ""
	}
}
