package entities

// Dates inside the document are stored as strings, matching the format the
// original data files were written with.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// TransactionStatus is the lifecycle state of a borrow record.
type TransactionStatus string

const (
	StatusBorrowed TransactionStatus = "borrowed"
	StatusReturned TransactionStatus = "returned"
)

// Transaction records one borrow of one book by one user. The user and book
// titles are denormalized on purpose: admin transaction views must render
// even after the referenced book or user is edited.
type Transaction struct {
	ID            int               `json:"id"`
	UserID        string            `json:"user_id"`
	UserName      string            `json:"user_name"`
	BookID        string            `json:"book_id"`
	BookTitle     string            `json:"book_title"`
	BookProgramme string            `json:"book_programme,omitempty"`
	BorrowDate    string            `json:"borrow_date"`
	DueDate       string            `json:"due_date"`
	ReturnDate    string            `json:"return_date,omitempty"`
	Status        TransactionStatus `json:"status"`
	Fine          int               `json:"fine"`
}

// ReservationStatus is the lifecycle state of a waitlist record.
type ReservationStatus string

const (
	ReservationWaiting   ReservationStatus = "waiting"
	ReservationNotified  ReservationStatus = "notified"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a waitlist entry for a book that had no available copies at
// borrow time. The holder is emailed when a copy comes back.
type Reservation struct {
	ID         string            `json:"id"`
	BookID     string            `json:"book_id"`
	BookTitle  string            `json:"book_title,omitempty"`
	Programme  string            `json:"programme,omitempty"`
	UserID     string            `json:"user_id"`
	UserName   string            `json:"user_name,omitempty"`
	UserEmail  string            `json:"user_email,omitempty"`
	Status     ReservationStatus `json:"status"`
	ReservedAt string            `json:"reserved_at"`
}
