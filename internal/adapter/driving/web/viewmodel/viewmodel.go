// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// SanitizedHTML is markup that already passed the HTML sanitizer. It is the
// only non-constant value components write without escaping.
type SanitizedHTML string

// PanelViewModel holds everything the celebration panel renders.
type PanelViewModel struct {
	PageTitle      string
	CSRFToken      string
	RefreshSeconds int
	Latest         *CelebrationViewModel
	History        []HistoryItemViewModel
}

// CelebrationViewModel is the featured presentation with its stick figure.
type CelebrationViewModel struct {
	Positive    bool
	Headline    string
	TitleHTML   SanitizedHTML
	NumberLabel string // "PR #42", empty when the number is unknown.
	URL         string
	PresentedAt string
}

// FigureClass returns the CSS class animating the stick figure.
func (c CelebrationViewModel) FigureClass() string {
	if c.Positive {
		return "dancing"
	}
	return "sad"
}

// MoodClass returns the CSS class for the page background and headline.
func (c CelebrationViewModel) MoodClass() string {
	if c.Positive {
		return "happy"
	}
	return "unhappy"
}

// HistoryItemViewModel is one row of the recent presentations list.
type HistoryItemViewModel struct {
	Positive    bool
	TitleHTML   SanitizedHTML
	NumberLabel string
	Ago         string
}
