package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/bookflow/lms/internal/entities"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrDuplicateBookID   = errors.New("a book with this id already exists")
	ErrUnknownProgramme  = errors.New("unknown programme")
	ErrAvailabilityRange = errors.New("availability adjustment out of range")
)

// Scope narrows catalog queries to one pool of the shelf.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeProgrammes
	ScopeTeacher
	ScopeCollections
)

// Engine owns the shelf: it is the only component that mutates book records.
// The lending ledger drives availability changes through AdjustAvailability
// and trusts the engine to keep 0 <= available <= copies.
type Engine struct {
	shelf *entities.Shelf
}

func NewEngine(shelf *entities.Shelf) *Engine {
	return &Engine{shelf: shelf}
}

// programmeOrder lists programme shelves deterministically: taxonomy order,
// then the general library, then any stray shelves sorted by name.
func (e *Engine) programmeOrder() []string {
	order := AllProgrammes()
	order = append(order, GeneralLibrary)

	seen := make(map[string]bool, len(order))
	for _, p := range order {
		seen[p] = true
	}
	var extra []string
	for p := range e.shelf.ProgramBooks {
		if !seen[p] {
			extra = append(extra, p)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

func (e *Engine) collectionOrder() []string {
	var order []string
	seen := make(map[string]bool)
	for _, set := range collectionDefaults {
		order = append(order, set.Name)
		seen[set.Name] = true
	}
	var extra []string
	for name := range e.shelf.CollectionCatalog {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

// forEach visits every book in scope, in deterministic order.
func (e *Engine) forEach(scope Scope, fn func(*entities.Book)) {
	if scope == ScopeAll || scope == ScopeProgrammes {
		for _, programme := range e.programmeOrder() {
			for _, book := range e.shelf.ProgramBooks[programme] {
				fn(book)
			}
		}
	}
	if scope == ScopeAll || scope == ScopeTeacher {
		for _, book := range e.shelf.TeacherBooks {
			fn(book)
		}
	}
	if scope == ScopeAll || scope == ScopeCollections {
		for _, name := range e.collectionOrder() {
			for _, book := range e.shelf.CollectionCatalog[name] {
				fn(book)
			}
		}
	}
}

// ProgrammeBooks returns the shelf for one programme.
func (e *Engine) ProgrammeBooks(programme string) []*entities.Book {
	return e.shelf.ProgramBooks[programme]
}

// TeacherBooks returns the teacher-only pool.
func (e *Engine) TeacherBooks() []*entities.Book {
	return e.shelf.TeacherBooks
}

// CollectionItems returns the items of one special collection.
func (e *Engine) CollectionItems(name string) []*entities.Book {
	return e.shelf.CollectionCatalog[name]
}

// Collections lists collection names, seeded ones first.
func (e *Engine) Collections() []string {
	var names []string
	for _, name := range e.collectionOrder() {
		if len(e.shelf.CollectionCatalog[name]) > 0 {
			names = append(names, name)
		}
	}
	return names
}

// Subjects returns the sorted set of subject tags across the whole catalog.
func (e *Engine) Subjects() []string {
	seen := make(map[string]bool)
	e.forEach(ScopeAll, func(book *entities.Book) {
		if subject := EnsureSubjectTag(book); subject != "" {
			seen[subject] = true
		}
	})
	subjects := make([]string, 0, len(seen))
	for subject := range seen {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

// Search matches a term against title and author, case-insensitive
// substring.
func (e *Engine) Search(term string, scope Scope) []*entities.Book {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var matches []*entities.Book
	e.forEach(scope, func(book *entities.Book) {
		if strings.Contains(strings.ToLower(book.Title), term) ||
			strings.Contains(strings.ToLower(book.Author), term) {
			matches = append(matches, book)
		}
	})
	return matches
}

// FilterBySubject returns the books tagged with the given subject.
func (e *Engine) FilterBySubject(subject string, scope Scope) []*entities.Book {
	var matches []*entities.Book
	e.forEach(scope, func(book *entities.Book) {
		if strings.EqualFold(EnsureSubjectTag(book), subject) {
			matches = append(matches, book)
		}
	})
	return matches
}

// FindBook locates a book anywhere on the shelf.
func (e *Engine) FindBook(id string) (*entities.Book, bool) {
	_, _, _, book, ok := e.locate(id)
	return book, ok
}

// FindLendable resolves the book a transaction refers to: the recorded
// programme shelf when one was recorded, otherwise the teacher pool, then
// the collections.
func (e *Engine) FindLendable(programme, id string) (*entities.Book, bool) {
	if programme != "" {
		for _, book := range e.shelf.ProgramBooks[programme] {
			if book.ID == id {
				return book, true
			}
		}
		return nil, false
	}
	for _, book := range e.shelf.TeacherBooks {
		if book.ID == id {
			return book, true
		}
	}
	for _, items := range e.shelf.CollectionCatalog {
		for _, book := range items {
			if book.ID == id {
				return book, true
			}
		}
	}
	return nil, false
}

// AdjustAvailability is the single mutation point for availability counters.
// Deltas that would leave the counter outside [0, copies] are rejected.
func (e *Engine) AdjustAvailability(id string, delta int) error {
	book, ok := e.FindBook(id)
	if !ok {
		return ErrBookNotFound
	}
	next := book.Available + delta
	if next < 0 || next > book.Copies {
		return ErrAvailabilityRange
	}
	book.Available = next
	return nil
}

// locate finds a book and remembers which pool and slot it occupies, so
// edits and deletes can splice in place.
func (e *Engine) locate(id string) (pool entities.CatalogType, shelfName string, index int, book *entities.Book, ok bool) {
	for programme, books := range e.shelf.ProgramBooks {
		for i, b := range books {
			if b.ID == id {
				return entities.CatalogProgram, programme, i, b, true
			}
		}
	}
	for i, b := range e.shelf.TeacherBooks {
		if b.ID == id {
			return entities.CatalogTeacher, "", i, b, true
		}
	}
	for name, items := range e.shelf.CollectionCatalog {
		for i, b := range items {
			if b.ID == id {
				return entities.CatalogCollection, name, i, b, true
			}
		}
	}
	return "", "", 0, nil, false
}

// AddBook inserts a new entry into the pool named by its CatalogType and
// Programme/Collection fields. Ids must be unique catalog-wide.
func (e *Engine) AddBook(book *entities.Book) error {
	if _, exists := e.FindBook(book.ID); exists {
		return ErrDuplicateBookID
	}

	switch book.CatalogType {
	case entities.CatalogTeacher:
		e.normalizeLendable(book, entities.CatalogTeacher, "")
		e.shelf.TeacherBooks = append(e.shelf.TeacherBooks, book)
	case entities.CatalogCollection:
		if e.shelf.CollectionCatalog == nil {
			e.shelf.CollectionCatalog = make(map[string][]*entities.Book)
		}
		e.normalizeCollectionItem(book, book.Collection)
		e.shelf.CollectionCatalog[book.Collection] = append(e.shelf.CollectionCatalog[book.Collection], book)
	default:
		programme := book.Programme
		if programme == "" {
			programme = GeneralLibrary
		}
		if programme != GeneralLibrary && !KnownProgramme(programme) {
			return ErrUnknownProgramme
		}
		if e.shelf.ProgramBooks == nil {
			e.shelf.ProgramBooks = make(map[string][]*entities.Book)
		}
		book.Programme = programme
		e.normalizeLendable(book, entities.CatalogProgram, programme)
		e.shelf.ProgramBooks[programme] = append(e.shelf.ProgramBooks[programme], book)
	}
	return nil
}

// EditBook applies an in-place edit and re-clamps the record so edits can
// never break the availability invariant.
func (e *Engine) EditBook(id string, apply func(*entities.Book)) error {
	pool, shelfName, _, book, ok := e.locate(id)
	if !ok {
		return ErrBookNotFound
	}
	apply(book)
	book.ID = id // ids are immutable, they key transactions
	switch pool {
	case entities.CatalogCollection:
		e.normalizeCollectionItem(book, shelfName)
	default:
		e.normalizeLendable(book, pool, shelfName)
	}
	return nil
}

// DeleteBook removes a book from the shelf. The active-borrow guard lives in
// the application layer, which consults the ledger before calling this.
func (e *Engine) DeleteBook(id string) error {
	pool, shelfName, index, _, ok := e.locate(id)
	if !ok {
		return ErrBookNotFound
	}
	switch pool {
	case entities.CatalogProgram:
		books := e.shelf.ProgramBooks[shelfName]
		e.shelf.ProgramBooks[shelfName] = append(books[:index], books[index+1:]...)
	case entities.CatalogTeacher:
		e.shelf.TeacherBooks = append(e.shelf.TeacherBooks[:index], e.shelf.TeacherBooks[index+1:]...)
	case entities.CatalogCollection:
		items := e.shelf.CollectionCatalog[shelfName]
		e.shelf.CollectionCatalog[shelfName] = append(items[:index], items[index+1:]...)
	}
	return nil
}

// normalizeLendable clamps a programme/teacher book into its invariants:
// at least one copy, availability within [0, copies], always borrowable.
func (e *Engine) normalizeLendable(book *entities.Book, pool entities.CatalogType, programme string) {
	book.CatalogType = pool
	book.Borrowable = true
	book.Collection = ""
	if pool == entities.CatalogTeacher {
		book.Programme = ""
		book.ProgramCategory = ""
	} else {
		book.Programme = programme
		if category, ok := ProgrammeCategory(programme); ok {
			book.ProgramCategory = category
		} else {
			book.ProgramCategory = "General"
		}
	}
	if book.Copies < 1 {
		book.Copies = 1
	}
	if book.Available > book.Copies {
		book.Available = book.Copies
	}
	if book.Available < 0 {
		book.Available = 0
	}
	book.PDFURL = strings.TrimSpace(book.PDFURL)
	EnsureSubjectTag(book)
}

// normalizeCollectionItem clamps a collection item: non-borrowable items are
// reference-only with zero copies, borrowable ones need at least one.
func (e *Engine) normalizeCollectionItem(book *entities.Book, collection string) {
	book.CatalogType = entities.CatalogCollection
	book.Collection = collection
	book.Programme = ""
	book.ProgramCategory = ""
	if book.Borrowable {
		if book.Copies <= 0 {
			book.Copies = 1
		}
		if book.Available > book.Copies {
			book.Available = book.Copies
		}
		if book.Available < 0 {
			book.Available = 0
		}
	} else {
		book.Copies = 0
		book.Available = 0
	}
	book.IssueDate = strings.TrimSpace(book.IssueDate)
	book.PDFURL = strings.TrimSpace(book.PDFURL)
	EnsureSubjectTag(book)
}

// Normalize re-clamps every entry on the shelf. Runs after every load so the
// rest of the system can trust the invariants without re-checking them.
func (e *Engine) Normalize() {
	for programme, books := range e.shelf.ProgramBooks {
		for _, book := range books {
			e.normalizeLendable(book, entities.CatalogProgram, programme)
		}
	}
	for _, book := range e.shelf.TeacherBooks {
		e.normalizeLendable(book, entities.CatalogTeacher, "")
	}
	for name, items := range e.shelf.CollectionCatalog {
		for _, book := range items {
			e.normalizeCollectionItem(book, name)
		}
	}
}
