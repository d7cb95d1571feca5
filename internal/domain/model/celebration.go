package model

import "time"

// Classification is the result of classifying a pull request.
type Classification struct {
	Outcome Outcome
	Reason  Reason
}

// Celebration records one presentation so the panel can render it.
type Celebration struct {
	ID          int64
	Outcome     Outcome
	Title       string
	Number      int
	HTMLURL     string
	PresentedAt time.Time
}

// Summary returns the presenter-facing view of the celebration.
func (c Celebration) Summary() PRSummary {
	return PRSummary{Title: c.Title, Number: c.Number, HTMLURL: c.HTMLURL}
}

// PresentedOutcome is the last outcome shown for a pull request, keyed by the
// pull request's API URL.
type PresentedOutcome struct {
	PRURL       string
	Outcome     Outcome
	Reason      Reason
	PresentedAt time.Time
}
