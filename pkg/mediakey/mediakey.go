package mediakey

import (
	"strconv"
	"strings"

	"github.com/andytrench/history-media-hunter/internal/model"
)

// Resolve returns the canonical storage key for a media item. A positive
// database id is authoritative and wins regardless of title or year.
// Otherwise the key is derived from title and year so that a watched mark
// made before the item ever reached the database still resolves to the
// same slot after a reload.
func Resolve(id int64, title string, year int) string {
	if id > 0 {
		return strconv.FormatInt(id, 10)
	}
	return Derive(title, year)
}

// ResolveMedia is Resolve applied to a media record.
func ResolveMedia(m *model.Media) string {
	return Resolve(m.ID, m.Title, m.Year)
}

// Derive computes the title+year key: lowercase title, a hyphen, and the
// year (or "unknown" when absent), with every rune outside [a-z0-9]
// replaced by a hyphen. Deterministic and total; equal title+year always
// yields an equal key. Distinct items sharing title and year collide,
// which is a known limitation of the scheme.
func Derive(title string, year int) string {
	raw := title + "-" + yearLabel(year)
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

func yearLabel(year int) string {
	if year == 0 {
		return "unknown"
	}
	return strconv.Itoa(year)
}
