package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflow/lms/internal/entities"
)

func newSeededEngine(t *testing.T) *Engine {
	t.Helper()
	engine := NewEngine(&entities.Shelf{})
	require.True(t, engine.SeedDefaults())
	engine.Normalize()
	return engine
}

func catalogIDs(engine *Engine) map[string]int {
	ids := make(map[string]int)
	engine.forEach(ScopeAll, func(book *entities.Book) {
		ids[book.ID] = book.Copies
	})
	return ids
}

func TestSlugifyProgramme(t *testing.T) {
	assert.Equal(t, "BTECHART", SlugifyProgramme("B.Tech (Artificial Intelligence)"))
	assert.Equal(t, "BCA", SlugifyProgramme("BCA"))
	assert.Equal(t, "BTECHCOM", SlugifyProgramme("B.Tech (Computer Science Engineering)"))
	assert.Equal(t, "GEN", SlugifyProgramme(""))
	assert.Equal(t, "GEN", SlugifyProgramme("---"))
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	engine := newSeededEngine(t)
	first := catalogIDs(engine)

	changed := engine.SeedDefaults()
	assert.False(t, changed)
	assert.Equal(t, first, catalogIDs(engine))
}

func TestSeedDefaults_ProgrammeIDsCarrySlug(t *testing.T) {
	engine := newSeededEngine(t)

	books := engine.ProgrammeBooks("B.Tech (Artificial Intelligence)")
	require.NotEmpty(t, books)
	assert.Equal(t, "AI001_BTECHART", books[0].ID)
	assert.Equal(t, 6, books[0].Copies)
	assert.Equal(t, 6, books[0].Available)
	assert.Equal(t, "Artificial Intelligence", books[0].ProgramCategory)
}

func TestSeedDefaults_RaisesCopiesToTemplateMinimum(t *testing.T) {
	engine := newSeededEngine(t)
	book, ok := engine.FindBook("AI001_BTECHART")
	require.True(t, ok)

	book.Copies = 2
	book.Available = 1

	assert.True(t, engine.SeedDefaults())
	assert.Equal(t, 6, book.Copies)
	assert.Equal(t, 1, book.Available, "live availability must not be reset")
}

func TestSeedDefaults_BackfillsMissingPDF(t *testing.T) {
	engine := newSeededEngine(t)
	book, ok := engine.FindBook("GEN001")
	require.True(t, ok)

	book.PDFURL = ""
	assert.True(t, engine.SeedDefaults())
	assert.NotEmpty(t, book.PDFURL)
}

func TestSeedDefaults_SeedsCollections(t *testing.T) {
	engine := newSeededEngine(t)

	items := engine.CollectionItems("Magazines")
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.False(t, item.Borrowable)
		assert.Zero(t, item.Copies)
		assert.Zero(t, item.Available)
	}

	fiction := engine.CollectionItems("Fiction")
	require.NotEmpty(t, fiction)
	assert.True(t, fiction[0].Borrowable)
	assert.Positive(t, fiction[0].Copies)
}

func TestNormalize_ClampsAvailability(t *testing.T) {
	engine := newSeededEngine(t)
	book, ok := engine.FindBook("GEN002")
	require.True(t, ok)

	book.Available = book.Copies + 5
	engine.Normalize()
	assert.Equal(t, book.Copies, book.Available)

	book.Available = -3
	engine.Normalize()
	assert.Equal(t, 0, book.Available)
}

func TestNormalize_CollectionInvariants(t *testing.T) {
	shelf := &entities.Shelf{
		CollectionCatalog: map[string][]*entities.Book{
			"Fiction": {
				{ID: "FIC099", Title: "Stray", Author: "Unknown", Borrowable: true, Copies: 0},
			},
			"Magazines": {
				{ID: "MAG099", Title: "Stray Issue", Author: "Unknown", Borrowable: false, Copies: 7, Available: 7},
			},
		},
	}
	engine := NewEngine(shelf)
	engine.Normalize()

	fiction, _ := engine.FindBook("FIC099")
	assert.Equal(t, 1, fiction.Copies)

	magazine, _ := engine.FindBook("MAG099")
	assert.Zero(t, magazine.Copies)
	assert.Zero(t, magazine.Available)
}

func TestSubjectResolution(t *testing.T) {
	// Explicit subject always wins.
	explicit := &entities.Book{ID: "ENG003_BCA", Subject: "Numerical Methods"}
	assert.Equal(t, "Numerical Methods", EnsureSubjectTag(explicit))

	// Per-id override beats the prefix default.
	override := &entities.Book{ID: "ENG003_BCA"}
	assert.Equal(t, "Mathematics", EnsureSubjectTag(override))

	// Prefix default.
	prefixed := &entities.Book{ID: "AI002_BTECHART"}
	assert.Equal(t, "Artificial Intelligence", EnsureSubjectTag(prefixed))

	// Format fallback when nothing else matches.
	formatted := &entities.Book{ID: "XYZ001", Format: "Course Textbook"}
	assert.Equal(t, "Course Textbook", EnsureSubjectTag(formatted))

	// Nothing to go on.
	blank := &entities.Book{ID: "XYZ002"}
	assert.Empty(t, EnsureSubjectTag(blank))
}

func TestSearch(t *testing.T) {
	engine := newSeededEngine(t)

	matches := engine.Search("machine learning", ScopeAll)
	require.NotEmpty(t, matches)
	for _, book := range matches {
		assert.Contains(t, book.Title, "Machine Learning")
	}

	// Author search, case-insensitive.
	assert.NotEmpty(t, engine.Search("AUSTEN", ScopeProgrammes))

	// Scope excludes other pools.
	assert.Empty(t, engine.Search("National Geographic", ScopeTeacher))
	assert.NotEmpty(t, engine.Search("National Geographic", ScopeCollections))

	assert.Empty(t, engine.Search("   ", ScopeAll))
}

func TestFilterBySubject(t *testing.T) {
	engine := newSeededEngine(t)

	physics := engine.FilterBySubject("Physics", ScopeAll)
	require.NotEmpty(t, physics)
	for _, book := range physics {
		assert.Equal(t, "Physics", book.Subject)
	}
}

func TestAdjustAvailability(t *testing.T) {
	engine := newSeededEngine(t)
	book, ok := engine.FindBook("GEN001")
	require.True(t, ok)
	before := book.Available

	require.NoError(t, engine.AdjustAvailability("GEN001", -1))
	assert.Equal(t, before-1, book.Available)

	require.NoError(t, engine.AdjustAvailability("GEN001", 1))
	assert.Equal(t, before, book.Available)

	err := engine.AdjustAvailability("GEN001", 1)
	assert.ErrorIs(t, err, ErrAvailabilityRange)

	err = engine.AdjustAvailability("NOPE", 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestAddBook(t *testing.T) {
	engine := newSeededEngine(t)

	err := engine.AddBook(&entities.Book{
		ID:        "NEW001",
		Title:     "Compilers: Principles and Practice",
		Author:    "Aho et al.",
		Copies:    3,
		Available: 3,
		Programme: "B.Tech (Computer Science Engineering)",
	})
	require.NoError(t, err)

	book, ok := engine.FindBook("NEW001")
	require.True(t, ok)
	assert.Equal(t, entities.CatalogProgram, book.CatalogType)
	assert.Equal(t, "Engineering", book.ProgramCategory)

	err = engine.AddBook(&entities.Book{ID: "NEW001", Title: "Duplicate"})
	assert.ErrorIs(t, err, ErrDuplicateBookID)

	err = engine.AddBook(&entities.Book{ID: "NEW002", Title: "Nowhere", Programme: "B.Sc. Astrology"})
	assert.ErrorIs(t, err, ErrUnknownProgramme)
}

func TestEditBook_ReclampsInvariants(t *testing.T) {
	engine := newSeededEngine(t)

	err := engine.EditBook("GEN001", func(book *entities.Book) {
		book.Copies = 2
		book.Available = 10
	})
	require.NoError(t, err)

	book, _ := engine.FindBook("GEN001")
	assert.Equal(t, 2, book.Copies)
	assert.Equal(t, 2, book.Available)

	err = engine.EditBook("NOPE", func(*entities.Book) {})
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDeleteBook(t *testing.T) {
	engine := newSeededEngine(t)

	require.NoError(t, engine.DeleteBook("GEN001"))
	_, ok := engine.FindBook("GEN001")
	assert.False(t, ok)

	assert.ErrorIs(t, engine.DeleteBook("GEN001"), ErrBookNotFound)
}

func TestFindLendable(t *testing.T) {
	engine := newSeededEngine(t)

	// Programme-scoped lookup.
	book, ok := engine.FindLendable("General Library", "GEN002")
	require.True(t, ok)
	assert.Equal(t, "GEN002", book.ID)

	// No programme recorded: teacher pool first, then collections.
	teacher, ok := engine.FindLendable("", "T001")
	require.True(t, ok)
	assert.Equal(t, entities.CatalogTeacher, teacher.CatalogType)

	fiction, ok := engine.FindLendable("", "FIC001")
	require.True(t, ok)
	assert.Equal(t, entities.CatalogCollection, fiction.CatalogType)

	_, ok = engine.FindLendable("General Library", "T001")
	assert.False(t, ok)
}
