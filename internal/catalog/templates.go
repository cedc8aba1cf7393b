package catalog

// template is a seed record for a catalog entry, before programme suffixing
// and availability initialization.
type template struct {
	ID         string
	Title      string
	Author     string
	Copies     int
	Subject    string
	Format     string
	IssueDate  string
	Borrowable bool
	PDFURL     string
}

// categoryTemplates seeds every programme under a category with the same
// base set; seeding suffixes the ids with the programme slug.
var categoryTemplates = map[string][]template{
	"Artificial Intelligence": {
		{ID: "AI001", Title: "Machine Learning Yearning", Author: "Andrew Ng", Copies: 6, Subject: "Artificial Intelligence",
			PDFURL: "https://assets.anaconda.com/production/uploads/Machine-Learning-Yearning-Andrew-Ng.pdf"},
		{ID: "AI002", Title: "CS229 Lecture Notes", Author: "Stanford University", Copies: 5, Subject: "Artificial Intelligence",
			PDFURL: "https://cs229.stanford.edu/main_notes.pdf"},
		{ID: "AI003", Title: "Reinforcement Learning: An Introduction", Author: "Richard S. Sutton & Andrew G. Barto", Copies: 4, Subject: "Artificial Intelligence",
			PDFURL: "http://incompleteideas.net/book/RLbook2020.pdf"},
	},
	"Engineering": {
		{ID: "ENG001", Title: "Engineering Mechanics: Statics", Author: "OpenStax", Copies: 5, Subject: "Physics",
			PDFURL: "https://openstax.org/resources/engineering-mechanics-statics.pdf"},
		{ID: "ENG002", Title: "University Physics Volume 1", Author: "Samuel J. Ling et al.", Copies: 6, Subject: "Physics",
			PDFURL: "https://openstax.org/resources/university-physics-volume-1.pdf"},
		{ID: "ENG003", Title: "Calculus Volume 2", Author: "Gilbert Strang & Edwin 'Jed' Herman", Copies: 5, Subject: "Mathematics",
			PDFURL: "https://openstax.org/resources/calculus-volume-2.pdf"},
	},
	"Liberal Arts": {
		{ID: "ART001", Title: "The Republic", Author: "Plato", Copies: 3, Subject: "Liberal Arts",
			PDFURL: "https://www.gutenberg.org/files/1497/1497-pdf.pdf"},
		{ID: "ART002", Title: "Pride and Prejudice", Author: "Jane Austen", Copies: 3, Subject: "Liberal Arts",
			PDFURL: "https://www.gutenberg.org/files/1342/1342-pdf.pdf"},
		{ID: "ART003", Title: "Meditations", Author: "Marcus Aurelius", Copies: 3, Subject: "Liberal Arts",
			PDFURL: "https://www.gutenberg.org/files/2680/2680-pdf.pdf"},
	},
	"Design": {
		{ID: "DES001", Title: "Graphic Design and Print Production Fundamentals", Author: "BCcampus OpenEd", Copies: 4, Subject: "Design",
			PDFURL: "https://opentextbc.ca/graphicdesign/wp-content/uploads/sites/153/2014/10/Graphic-Design-and-Print-Production-Fundamentals-1534799288.pdf"},
		{ID: "DES002", Title: "Design Thinking (2nd Edition)", Author: "Open School BC", Copies: 4, Subject: "Design",
			PDFURL: "https://opentextbc.ca/designthinking/wp-content/uploads/sites/435/2022/05/Design-Thinking-2nd-Edition-1652302589.pdf"},
		{ID: "DES003", Title: "WCAG 2.1 Quick Reference", Author: "W3C Web Accessibility Initiative", Copies: 4, Subject: "Design",
			PDFURL: "https://www.w3.org/WAI/WCAG21/quickref/wcag2.1.pdf"},
	},
	"Management": {
		{ID: "MGT001", Title: "Principles of Management (3e)", Author: "OpenStax", Copies: 4, Subject: "Management",
			PDFURL: "https://openstax.org/resources/principles-of-management-3e.pdf"},
		{ID: "MGT002", Title: "Organizational Behavior (3e)", Author: "OpenStax", Copies: 4, Subject: "Management",
			PDFURL: "https://openstax.org/resources/organizational-behavior-3e.pdf"},
		{ID: "MGT003", Title: "Business Ethics (2e)", Author: "OpenStax", Copies: 4, Subject: "Management",
			PDFURL: "https://openstax.org/resources/business-ethics-2e.pdf"},
	},
	"Media": {
		{ID: "MED001", Title: "Understanding Media and Culture", Author: "University of Minnesota Libraries", Copies: 4, Subject: "Media Studies",
			PDFURL: "https://open.lib.umn.edu/mediaandculture/open/download?type=pdf"},
		{ID: "MED002", Title: "Writing for Strategic Communication Industries", Author: "Jasmine Roberts", Copies: 3, Subject: "Media Studies",
			PDFURL: "https://ohiostate.pressbooks.pub/stratcommwriting/open/download?type=pdf"},
	},
	"Law": {
		{ID: "LAW001", Title: "Fundamentals of Business Law", Author: "Melissa Randall", Copies: 4, Subject: "Law",
			PDFURL: "https://opentextbc.ca/businesslaw/open/download?type=pdf"},
		{ID: "LAW002", Title: "Criminal Law", Author: "University of Minnesota Libraries", Copies: 3, Subject: "Law",
			PDFURL: "https://open.lib.umn.edu/criminallaw/open/download?type=pdf"},
	},
}

// generalLibraryTemplates are seeded under the "General Library" programme
// without id suffixing; every role can borrow them.
var generalLibraryTemplates = []template{
	{ID: "GEN001", Title: "Pride and Prejudice", Author: "Jane Austen", Copies: 4,
		PDFURL: "https://www.gutenberg.org/files/1342/1342-pdf.pdf"},
	{ID: "GEN002", Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Copies: 4,
		PDFURL: "https://www.gutenberg.org/files/2554/2554-pdf.pdf"},
	{ID: "GEN003", Title: "War and Peace", Author: "Leo Tolstoy", Copies: 4,
		PDFURL: "https://www.gutenberg.org/files/2600/2600-pdf.pdf"},
	{ID: "GEN004", Title: "Frankenstein", Author: "Mary Shelley", Copies: 4,
		PDFURL: "https://www.gutenberg.org/files/84/84-pdf.pdf"},
}

// teacherTemplates seed the teacher-only pool.
var teacherTemplates = []template{
	{ID: "T001", Title: "R.D. Sharma Mathematics", Author: "R.D. Sharma", Copies: 5},
	{ID: "T002", Title: "NCERT Science", Author: "NCERT", Copies: 10},
	{ID: "T003", Title: "Psychology of Prejudice", Author: "Various", Copies: 2},
}

// collectionSet names one special collection and its seed items.
type collectionSet struct {
	Name  string
	Items []template
}

// collectionDefaults seed the special collections. Non-borrowable items are
// reference-only: they always carry zero copies.
var collectionDefaults = []collectionSet{
	{
		Name: "Encyclopaedia",
		Items: []template{
			{ID: "ENC001", Title: "Encyclopaedia Britannica – Science & Technology", Author: "Britannica Group",
				Format: "Reference", Subject: "Reference", Copies: 3, Borrowable: true,
				PDFURL: "https://www.britannica.com/summary/science-summary.pdf"},
			{ID: "ENC002", Title: "Oxford Encyclopaedia of World History", Author: "Oxford University Press",
				Format: "Reference", Subject: "Reference", Copies: 2, Borrowable: true,
				PDFURL: "https://global.oup.com/example/world-history-encyclopedia.pdf"},
		},
	},
	{
		Name: "Magazines",
		Items: []template{
			{ID: "MAG001", Title: "National Geographic – November 2025", Author: "National Geographic Society",
				Format: "Monthly Magazine", Subject: "Magazines", Borrowable: false, IssueDate: "November 2025",
				PDFURL: "https://www.nationalgeographic.com/magazine/2025/11/national-geographic-november-2025.pdf"},
			{ID: "MAG002", Title: "Scientific American – AI Special", Author: "Springer Nature",
				Format: "Monthly Magazine", Subject: "Magazines", Borrowable: false, IssueDate: "October 2025",
				PDFURL: "https://www.scientificamerican.com/media/pdf/ai-special-issue-2025.pdf"},
		},
	},
	{
		Name: "Fiction",
		Items: []template{
			{ID: "FIC001", Title: "The Great Gatsby", Author: "F. Scott Fitzgerald",
				Format: "Novel", Subject: "Fiction", Copies: 4, Borrowable: true,
				PDFURL: "https://www.gutenberg.org/cache/epub/64317/pg64317-images.html"},
			{ID: "FIC002", Title: "1984", Author: "George Orwell",
				Format: "Novel", Subject: "Fiction", Copies: 4, Borrowable: true,
				PDFURL: "https://www.gutenberg.org/files/40697/40697-pdf.pdf"},
			{ID: "FIC003", Title: "Jane Eyre", Author: "Charlotte Brontë",
				Format: "Novel", Subject: "Fiction", Copies: 3, Borrowable: true,
				PDFURL: "https://www.gutenberg.org/files/1260/1260-pdf.pdf"},
		},
	},
	{
		Name: "Course Books",
		Items: []template{
			{ID: "CRS001", Title: "Discrete Mathematics (3e)", Author: "OpenStax",
				Format: "Course Textbook", Copies: 6, Borrowable: true,
				PDFURL: "https://openstax.org/resources/discrete-mathematics-3e.pdf"},
			{ID: "CRS002", Title: "Introduction to Psychology", Author: "OpenStax",
				Format: "Course Textbook", Copies: 6, Borrowable: true,
				PDFURL: "https://openstax.org/resources/psychology-3e.pdf"},
		},
	},
	{
		Name: "Newspapers",
		Items: []template{
			{ID: "NEWS001", Title: "The Guardian – Morning Edition", Author: "Guardian News & Media",
				Format: "Daily Newspaper", Subject: "Newspapers", Borrowable: false, IssueDate: "12 Nov 2025",
				PDFURL: "https://static.guim.co.uk/2025/11/12/TheGuardian-MorningEdition.pdf"},
			{ID: "NEWS002", Title: "Financial Times – Markets & Finance", Author: "Nikkei Inc.",
				Format: "Daily Newspaper", Subject: "Newspapers", Borrowable: false, IssueDate: "12 Nov 2025",
				PDFURL: "https://www.ft.com/content/2025/11/12/markets-finance.pdf"},
		},
	},
}
