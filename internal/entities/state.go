package entities

// State is the whole application document: everything the system knows,
// loaded in one piece and written back in one piece after every mutation.
// SchemaVersion tracks which one-time migrations have already been applied.
type State struct {
	SchemaVersion int            `json:"schema_version"`
	Users         Users          `json:"users"`
	Books         Shelf          `json:"books"`
	Transactions  []*Transaction `json:"transactions"`
	Reservations  []*Reservation `json:"reservations"`
}
