package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/prcelebration/internal/application"
	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

func TestClassifier_Classify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	approval := []model.Comment{{Body: "thanks"}, {Body: "@robodoo r+"}}

	tests := []struct {
		name     string
		detail   model.PullRequestDetail
		comments []model.Comment
		wantOK   bool
		want     model.Classification
	}{
		{
			name:   "merged wins over everything",
			detail: model.PullRequestDetail{Merged: true, UpdatedAt: now.Add(-48 * time.Hour)},
			wantOK: true,
			want:   model.Classification{Outcome: model.OutcomePositive, Reason: model.ReasonMerged},
		},
		{
			name:     "merged with approval still reports merged",
			detail:   model.PullRequestDetail{Merged: true, UpdatedAt: now},
			comments: approval,
			wantOK:   true,
			want:     model.Classification{Outcome: model.OutcomePositive, Reason: model.ReasonMerged},
		},
		{
			name:     "approval marker on a stale pull request",
			detail:   model.PullRequestDetail{UpdatedAt: now.Add(-time.Hour)},
			comments: approval,
			wantOK:   true,
			want:     model.Classification{Outcome: model.OutcomePositive, Reason: model.ReasonApproved},
		},
		{
			name:     "marker embedded in a longer comment",
			detail:   model.PullRequestDetail{UpdatedAt: now.Add(-time.Hour)},
			comments: []model.Comment{{Body: "all good\n@robodoo r+ rebase-ff"}},
			wantOK:   true,
			want:     model.Classification{Outcome: model.OutcomePositive, Reason: model.ReasonApproved},
		},
		{
			name:     "marker is case sensitive",
			detail:   model.PullRequestDetail{UpdatedAt: now.Add(-time.Hour)},
			comments: []model.Comment{{Body: "@Robodoo R+"}},
			wantOK:   false,
		},
		{
			name:   "recent activity without approval",
			detail: model.PullRequestDetail{UpdatedAt: now.Add(-9*time.Minute - 59*time.Second)},
			wantOK: true,
			want:   model.Classification{Outcome: model.OutcomeNegative, Reason: model.ReasonRecentActivity},
		},
		{
			name:   "exactly ten minutes is stale",
			detail: model.PullRequestDetail{UpdatedAt: now.Add(-10 * time.Minute)},
			wantOK: false,
		},
		{
			name:   "future timestamp counts as recent",
			detail: model.PullRequestDetail{UpdatedAt: now.Add(time.Minute)},
			wantOK: true,
			want:   model.Classification{Outcome: model.OutcomeNegative, Reason: model.ReasonRecentActivity},
		},
	}

	classifier := application.NewClassifier("")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifier.Classify(tt.detail, tt.comments, now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClassifier_CustomMarker(t *testing.T) {
	now := time.Now()
	classifier := application.NewClassifier("/merge")
	stale := model.PullRequestDetail{UpdatedAt: now.Add(-time.Hour)}

	assert.Equal(t, "/merge", classifier.Marker())

	_, ok := classifier.Classify(stale, []model.Comment{{Body: "@robodoo r+"}}, now)
	assert.False(t, ok)

	got, ok := classifier.Classify(stale, []model.Comment{{Body: "/merge please"}}, now)
	assert.True(t, ok)
	assert.Equal(t, model.ReasonApproved, got.Reason)
}

func TestClassifier_ZeroValueUsesDefaultMarker(t *testing.T) {
	var classifier application.Classifier
	assert.Equal(t, application.ApprovalMarker, classifier.Marker())
}
