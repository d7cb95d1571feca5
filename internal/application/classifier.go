package application

import (
	"strings"
	"time"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

// ApprovalMarker is the comment text the merge bot's approval command starts with.
const ApprovalMarker = "@robodoo r+"

// RecentActivityWindow bounds how old a non-approved pull request's last
// update may be for the discouraging variant to still be shown.
const RecentActivityWindow = 10 * time.Minute

// Classifier decides which presentation a pull request deserves.
// The zero value uses ApprovalMarker.
type Classifier struct {
	marker string
}

// NewClassifier returns a Classifier matching the given approval marker.
// An empty marker falls back to ApprovalMarker.
func NewClassifier(marker string) Classifier {
	return Classifier{marker: marker}
}

// Marker returns the approval marker in effect.
func (c Classifier) Marker() string {
	if c.marker == "" {
		return ApprovalMarker
	}
	return c.marker
}

// Classify applies the rules in order: merged, approval marker, recent
// activity. It returns ok == false when the pull request is stale and
// neither merged nor approved; nothing should be presented then.
func (c Classifier) Classify(detail model.PullRequestDetail, comments []model.Comment, now time.Time) (model.Classification, bool) {
	if detail.Merged {
		return model.Classification{Outcome: model.OutcomePositive, Reason: model.ReasonMerged}, true
	}

	if c.hasApproval(comments) {
		return model.Classification{Outcome: model.OutcomePositive, Reason: model.ReasonApproved}, true
	}

	if now.Sub(detail.UpdatedAt) < RecentActivityWindow {
		return model.Classification{Outcome: model.OutcomeNegative, Reason: model.ReasonRecentActivity}, true
	}

	return model.Classification{}, false
}

func (c Classifier) hasApproval(comments []model.Comment) bool {
	marker := c.Marker()
	for _, comment := range comments {
		if strings.Contains(comment.Body, marker) {
			return true
		}
	}
	return false
}
