package models

// Note represents a (moxie) note: an atomic recipe, how-to or gist.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewNote carries the fields of a note that is about to be created.
// Nil fields are stored as NULL, so the database decides whether they are acceptable.
type NewNote struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Equivalent reports whether two notes denote the same stored row.
func (n Note) Equivalent(other Note) bool {
	return n.ID == other.ID
}
