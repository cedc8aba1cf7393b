package catalog

import (
	"regexp"
	"strings"

	"github.com/bookflow/lms/internal/entities"
)

// subjectOverrides pins a subject tag to specific base ids where the prefix
// rule below would guess wrong.
var subjectOverrides = map[string]string{
	"ENG001": "Physics",
	"ENG002": "Physics",
	"ENG003": "Mathematics",
	"CRS001": "Mathematics",
	"CRS002": "Psychology",
	"T001":   "Mathematics",
	"T002":   "Science",
	"T003":   "Psychology",
}

// subjectPrefixDefaults maps an id prefix to its default subject tag.
var subjectPrefixDefaults = map[string]string{
	"AI":   "Artificial Intelligence",
	"ART":  "Liberal Arts",
	"DES":  "Design",
	"MGT":  "Management",
	"MED":  "Media Studies",
	"LAW":  "Law",
	"GEN":  "Classic Literature",
	"FIC":  "Fiction",
	"MAG":  "Magazines",
	"CRS":  "Course Books",
	"ENC":  "Reference",
	"NEWS": "Newspapers",
}

var idPrefix = regexp.MustCompile(`^[A-Z]+`)

// resolveSubject picks the subject tag for an entry: explicit subject first,
// then the per-id override table, then the prefix default table, then the
// entry's format, then nothing.
func resolveSubject(baseID, explicit, format string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}

	baseID = strings.TrimSpace(baseID)
	if baseID == "" {
		return ""
	}
	if s, ok := subjectOverrides[baseID]; ok {
		return s
	}
	if prefix := idPrefix.FindString(baseID); prefix != "" {
		if s, ok := subjectPrefixDefaults[prefix]; ok {
			return s
		}
	}
	return strings.TrimSpace(format)
}

// EnsureSubjectTag assigns a subject to the book if it has none, and returns
// whatever tag the book ends up with.
func EnsureSubjectTag(book *entities.Book) string {
	if s := strings.TrimSpace(book.Subject); s != "" {
		book.Subject = s
		return s
	}
	baseID, _, _ := strings.Cut(book.ID, "_")
	subject := resolveSubject(baseID, "", book.Format)
	if subject != "" {
		book.Subject = subject
	}
	return subject
}
