package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vm "github.com/ericfisherdev/prcelebration/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

func TestToPanelViewModel_NoLatest(t *testing.T) {
	panel := toPanelViewModel(nil, nil, "tok", time.Now())

	assert.Equal(t, "PR Status", panel.PageTitle)
	assert.Equal(t, "tok", panel.CSRFToken)
	assert.Equal(t, panelRefreshSeconds, panel.RefreshSeconds)
	assert.Nil(t, panel.Latest)
	assert.Empty(t, panel.History)
}

func TestToPanelViewModel_SkipsLatestInHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	latest := model.Celebration{ID: 3, Outcome: model.OutcomeNegative, Title: "Fix", Number: 9, PresentedAt: now}
	recent := []model.Celebration{
		latest,
		{ID: 2, Outcome: model.OutcomePositive, Title: "Ship", Number: 8, PresentedAt: now.Add(-2 * time.Hour)},
	}

	panel := toPanelViewModel(&latest, recent, "", now)

	require.NotNil(t, panel.Latest)
	assert.Equal(t, "PR Status", panel.PageTitle)
	assert.Equal(t, "sad", panel.Latest.FigureClass())
	assert.Equal(t, "unhappy", panel.Latest.MoodClass())
	assert.Equal(t, "PR #9", panel.Latest.NumberLabel)
	require.Len(t, panel.History, 1)
	assert.True(t, panel.History[0].Positive)
	assert.Equal(t, vm.SanitizedHTML("Ship"), panel.History[0].TitleHTML)
	assert.Equal(t, "2h ago", panel.History[0].Ago)
}

func TestNumberLabel(t *testing.T) {
	assert.Equal(t, "PR #123", numberLabel(123))
	assert.Empty(t, numberLabel(0))
}

func TestFormatAgo(t *testing.T) {
	assert.Equal(t, "just now", formatAgo(10*time.Second))
	assert.Equal(t, "5m ago", formatAgo(5*time.Minute))
	assert.Equal(t, "3h ago", formatAgo(3*time.Hour))
	assert.Equal(t, "2d ago", formatAgo(49*time.Hour))
}
