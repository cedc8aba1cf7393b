package catalog

import (
	"strings"

	"github.com/bookflow/lms/internal/entities"
)

func baseID(id string) string {
	base, _, _ := strings.Cut(id, "_")
	return base
}

func newProgrammeBook(t template, programme, category, slug string) *entities.Book {
	copies := t.Copies
	if copies < 1 {
		copies = 1
	}
	book := &entities.Book{
		ID:              t.ID + "_" + slug,
		Title:           t.Title,
		Author:          t.Author,
		Copies:          copies,
		Available:       copies,
		Borrowable:      true,
		Subject:         resolveSubject(t.ID, t.Subject, t.Format),
		PDFURL:          strings.TrimSpace(t.PDFURL),
		Programme:       programme,
		ProgramCategory: category,
		CatalogType:     entities.CatalogProgram,
	}
	return book
}

func newGeneralBook(t template) *entities.Book {
	copies := t.Copies
	if copies < 1 {
		copies = 1
	}
	return &entities.Book{
		ID:              t.ID,
		Title:           t.Title,
		Author:          t.Author,
		Copies:          copies,
		Available:       copies,
		Borrowable:      true,
		Subject:         resolveSubject(t.ID, t.Subject, t.Format),
		PDFURL:          strings.TrimSpace(t.PDFURL),
		Programme:       GeneralLibrary,
		ProgramCategory: "General",
		CatalogType:     entities.CatalogProgram,
	}
}

func newTeacherBook(t template) *entities.Book {
	copies := t.Copies
	if copies < 1 {
		copies = 1
	}
	return &entities.Book{
		ID:          t.ID,
		Title:       t.Title,
		Author:      t.Author,
		Copies:      copies,
		Available:   copies,
		Borrowable:  true,
		Subject:     resolveSubject(t.ID, t.Subject, t.Format),
		CatalogType: entities.CatalogTeacher,
	}
}

func newCollectionItem(t template, collection string) *entities.Book {
	copies := t.Copies
	if t.Borrowable && copies <= 0 {
		copies = 1
	}
	if !t.Borrowable {
		copies = 0
	}
	return &entities.Book{
		ID:          t.ID,
		Title:       t.Title,
		Author:      t.Author,
		Copies:      copies,
		Available:   copies,
		Borrowable:  t.Borrowable,
		Subject:     resolveSubject(t.ID, t.Subject, t.Format),
		Format:      t.Format,
		IssueDate:   strings.TrimSpace(t.IssueDate),
		PDFURL:      strings.TrimSpace(t.PDFURL),
		Collection:  collection,
		CatalogType: entities.CatalogCollection,
	}
}

// refreshFromTemplate raises an existing entry to the template's copy
// minimum and backfills a missing PDF link. Never lowers anything: local
// admin edits that grew a shelf survive reseeding.
func refreshFromTemplate(book *entities.Book, t template) bool {
	changed := false
	if t.Copies > 0 && book.Copies < t.Copies {
		book.Copies = t.Copies
		if book.Available > book.Copies {
			book.Available = book.Copies
		}
		changed = true
	}
	if t.PDFURL != "" && book.PDFURL == "" {
		book.PDFURL = strings.TrimSpace(t.PDFURL)
		changed = true
	}
	return changed
}

// SeedDefaults builds or refreshes the default catalog from the static
// templates. Idempotent: entries are keyed by their pre-suffix base id, so
// reseeding never duplicates and never resets live availability. Reports
// whether anything changed.
func (e *Engine) SeedDefaults() bool {
	changed := false

	if e.shelf.ProgramBooks == nil {
		e.shelf.ProgramBooks = make(map[string][]*entities.Book)
	}
	if e.shelf.CollectionCatalog == nil {
		e.shelf.CollectionCatalog = make(map[string][]*entities.Book)
	}

	for _, category := range Categories {
		templates := categoryTemplates[category.Name]
		for _, programme := range category.Programmes {
			slug := SlugifyProgramme(programme)
			existing := e.shelf.ProgramBooks[programme]
			byBase := make(map[string]*entities.Book, len(existing))
			for _, book := range existing {
				byBase[baseID(book.ID)] = book
			}
			for _, t := range templates {
				if book, ok := byBase[t.ID]; ok {
					if refreshFromTemplate(book, t) {
						changed = true
					}
					continue
				}
				existing = append(existing, newProgrammeBook(t, programme, category.Name, slug))
				changed = true
			}
			e.shelf.ProgramBooks[programme] = existing
		}
	}

	general := e.shelf.ProgramBooks[GeneralLibrary]
	byID := make(map[string]*entities.Book, len(general))
	for _, book := range general {
		byID[book.ID] = book
	}
	for _, t := range generalLibraryTemplates {
		if book, ok := byID[t.ID]; ok {
			if refreshFromTemplate(book, t) {
				changed = true
			}
			continue
		}
		general = append(general, newGeneralBook(t))
		changed = true
	}
	e.shelf.ProgramBooks[GeneralLibrary] = general

	teacherByID := make(map[string]*entities.Book, len(e.shelf.TeacherBooks))
	for _, book := range e.shelf.TeacherBooks {
		teacherByID[book.ID] = book
	}
	for _, t := range teacherTemplates {
		if book, ok := teacherByID[t.ID]; ok {
			if refreshFromTemplate(book, t) {
				changed = true
			}
			continue
		}
		e.shelf.TeacherBooks = append(e.shelf.TeacherBooks, newTeacherBook(t))
		changed = true
	}

	for _, set := range collectionDefaults {
		items := e.shelf.CollectionCatalog[set.Name]
		itemByID := make(map[string]*entities.Book, len(items))
		for _, item := range items {
			itemByID[item.ID] = item
		}
		for _, t := range set.Items {
			item, ok := itemByID[t.ID]
			if !ok {
				items = append(items, newCollectionItem(t, set.Name))
				changed = true
				continue
			}
			if item.Borrowable != t.Borrowable {
				item.Borrowable = t.Borrowable
				changed = true
			}
			if t.Format != "" && item.Format != t.Format {
				item.Format = t.Format
				changed = true
			}
			if t.IssueDate != "" && item.IssueDate != t.IssueDate {
				item.IssueDate = t.IssueDate
				changed = true
			}
			if refreshFromTemplate(item, t) {
				changed = true
			}
		}
		e.shelf.CollectionCatalog[set.Name] = items
	}

	return changed
}
