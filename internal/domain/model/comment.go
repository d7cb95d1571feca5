package model

// Comment is a pull request conversation comment. Only the body is kept; it
// is scanned for the approval marker.
type Comment struct {
	Body string
}
