package model

// Notification is an unread provider notification. It lives for a single
// poll cycle; ID is only used to mark the thread read.
type Notification struct {
	ID          string
	SubjectType SubjectType
	SubjectURL  string // Empty when the provider sent no subject URL.
}

// IsPullRequest reports whether the notification points at a pull request
// that can be fetched.
func (n Notification) IsPullRequest() bool {
	return n.SubjectType == SubjectPullRequest && n.SubjectURL != ""
}
