// Package catalog owns the book inventory: the programme taxonomy, the
// seeded default shelves, invariant normalization and all catalog queries.
package catalog

import (
	"regexp"
	"strings"
)

// Category groups the degree programmes offered under one academic school.
type Category struct {
	Name       string
	Programmes []string
}

// Categories is the static programme taxonomy. Order matters: seeding walks
// it top to bottom so freshly created data files are deterministic.
var Categories = []Category{
	{
		Name: "Artificial Intelligence",
		Programmes: []string{
			"B.Tech (Artificial Intelligence)",
			"BCA (Artificial Intelligence)",
			"B.Sc. (Artificial Intelligence)",
		},
	},
	{
		Name: "Engineering",
		Programmes: []string{
			"B.Tech (Computer Science Engineering)",
			"B.Tech (Electronics & Communication Engineering)",
			"B.Tech (Electronics & Computer Engineering)",
			"B.Tech (Mechanical Engineering)",
			"B.Tech (Engineering Physics)",
			"B.Tech (Biotech)",
			"B.Tech + M. Tech (Biotech) (Dual Degree)",
			"B.Tech + M.Tech (Computer Science & Engineering) (Dual Degree)",
			"BCA",
			"BCA + MCA (Dual Degree)",
		},
	},
	{
		Name: "Liberal Arts",
		Programmes: []string{
			"B.A. (Hons.)",
			"B.A. (Hons.) Psychology",
			"B.A. (Hons.) Economics",
			"B.A. (Hons.) English Literature",
			"B.A. (Hons.) Sociology",
			"B.A. (Hons.) Philosophy",
			"B.A. (Hons.) Business Studies",
			"B.A. (Hons.) Political Science & International Relations",
		},
	},
	{
		Name: "Design",
		Programmes: []string{
			"B. Des (Hons.)",
			"B. Des (Hons.) Fashion Design",
			"B. Des (Hons.) Intelligent Textile Design",
			"B. Des (Hons.) Product Design with AI",
			"B. Des (Hons.) Game Design",
			"B. Des (Hons.) Advanced Animation & VFX in partnership with CII",
			"B. Des (Hons.) Communication Design",
		},
	},
	{
		Name: "Management",
		Programmes: []string{
			"BBA",
			"BBA + MBA (Dual Degree)",
			"B. Com (Finance & Accounting)",
			"B. Com (International Accounting & Finance) Integrated with ACCA",
		},
	},
	{
		Name: "Media",
		Programmes: []string{
			"B.A. (Mass Communication)",
			"B.A. (Film, TV & Web Series)",
		},
	},
	{
		Name: "Law",
		Programmes: []string{
			"Integ. BBA LL.B. (Hons.)",
			"Integ. B.A. LL.B. (Hons.)",
		},
	},
}

// GeneralLibrary is the pseudo-programme holding titles open to everyone.
const GeneralLibrary = "General Library"

// AllProgrammes returns every programme across all categories, in taxonomy
// order.
func AllProgrammes() []string {
	var programmes []string
	for _, category := range Categories {
		programmes = append(programmes, category.Programmes...)
	}
	return programmes
}

// ProgrammeCategory looks up the category a programme belongs to.
func ProgrammeCategory(programme string) (string, bool) {
	for _, category := range Categories {
		for _, p := range category.Programmes {
			if p == programme {
				return category.Name, true
			}
		}
	}
	return "", false
}

// KnownProgramme reports whether the programme exists in the taxonomy.
func KnownProgramme(programme string) bool {
	_, ok := ProgrammeCategory(programme)
	return ok
}

var nonAlnum = regexp.MustCompile(`[^A-Z0-9]`)

// SlugifyProgramme derives the id suffix for a programme: upper-cased,
// non-alphanumerics stripped, truncated to 8 characters, "GEN" when nothing
// survives.
func SlugifyProgramme(programme string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToUpper(programme), "")
	if len(slug) > 8 {
		slug = slug[:8]
	}
	if slug == "" {
		return "GEN"
	}
	return slug
}
