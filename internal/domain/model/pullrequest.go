package model

import "time"

// DefaultPRTitle is shown when the provider returned a pull request without a title.
const DefaultPRTitle = "Pull Request"

// PullRequestDetail is the read-only snapshot of a pull request fetched from
// a notification's subject URL. It is not cached across polls.
type PullRequestDetail struct {
	Title       string
	Number      int
	HTMLURL     string
	Merged      bool
	CommentsURL string
	UpdatedAt   time.Time
}

// Summary builds the record handed to presenters.
func (d PullRequestDetail) Summary() PRSummary {
	title := d.Title
	if title == "" {
		title = DefaultPRTitle
	}
	return PRSummary{
		Title:   title,
		Number:  d.Number,
		HTMLURL: d.HTMLURL,
	}
}

// PRSummary is the small pull request record shown on the panel.
// Number 0 and an empty HTMLURL mean the provider did not send them.
type PRSummary struct {
	Title   string
	Number  int
	HTMLURL string
}

// HasNumber reports whether a pull request number is known.
func (s PRSummary) HasNumber() bool {
	return s.Number > 0
}
