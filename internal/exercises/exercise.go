package exercises

type Exercise struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	BodyPart *string `json:"body_part,omitempty"`
}

// Resolution is the outcome of a find-or-create lookup by name, so that
// callers can tell whether the exercise existed before or was just created.
type Resolution struct {
	ID      int
	Created bool
}
