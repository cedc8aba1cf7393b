package entities

// CatalogType says which pool of the shelf a book belongs to.
type CatalogType string

const (
	CatalogProgram    CatalogType = "program"
	CatalogTeacher    CatalogType = "teacher"
	CatalogCollection CatalogType = "collection"
)

// Book is a single catalog entry: a lendable title or a reference-only
// collection item. Programme-scoped ids carry a programme slug suffix
// ("AI001_BTECHART") so ids stay unique across the whole catalog.
type Book struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Author          string      `json:"author"`
	Copies          int         `json:"copies"`
	Available       int         `json:"available"`
	Borrowable      bool        `json:"borrowable"`
	Subject         string      `json:"subject,omitempty"`
	Format          string      `json:"format,omitempty"`
	IssueDate       string      `json:"issue_date,omitempty"`
	PDFURL          string      `json:"pdf_url,omitempty"`
	Programme       string      `json:"programme,omitempty"`
	ProgramCategory string      `json:"program_category,omitempty"`
	Collection      string      `json:"collection,omitempty"`
	CatalogType     CatalogType `json:"catalog_type,omitempty"`
}

// Shelf is the books section of the persisted document. StudentBooks is the
// pre-programme legacy list; the load migration folds it into
// ProgramBooks["General Library"] and clears it.
type Shelf struct {
	ProgramBooks      map[string][]*Book `json:"program_books"`
	TeacherBooks      []*Book            `json:"teacher_books"`
	CollectionCatalog map[string][]*Book `json:"collection_catalog"`
	StudentBooks      []*Book            `json:"student_books,omitempty"`
}
