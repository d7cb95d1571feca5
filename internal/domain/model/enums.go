package model

// SubjectType is the kind of item a notification refers to.
type SubjectType string

const (
	SubjectPullRequest SubjectType = "PullRequest"
	SubjectOther       SubjectType = "Other"
)

// ParseSubjectType maps the provider's subject.type string. Anything that is
// not a pull request collapses to SubjectOther.
func ParseSubjectType(s string) SubjectType {
	if s == string(SubjectPullRequest) {
		return SubjectPullRequest
	}
	return SubjectOther
}

// Outcome is the presentation variant chosen for a pull request.
type Outcome string

const (
	OutcomePositive Outcome = "positive"
	OutcomeNegative Outcome = "negative"
)

// OutcomeOf maps the presenter's positive flag onto an Outcome.
func OutcomeOf(positive bool) Outcome {
	if positive {
		return OutcomePositive
	}
	return OutcomeNegative
}

// IsPositive reports whether the celebratory variant should be shown.
func (o Outcome) IsPositive() bool {
	return o == OutcomePositive
}

// Headline is the message shown alongside a presentation.
func (o Outcome) Headline() string {
	if o.IsPositive() {
		return "Woohoo! PR approved or merged!"
	}
	return "Still waiting for approval..."
}

// Reason records which classification rule produced an outcome.
type Reason string

const (
	ReasonMerged         Reason = "merged"
	ReasonApproved       Reason = "approved"
	ReasonRecentActivity Reason = "recent_activity"
)
