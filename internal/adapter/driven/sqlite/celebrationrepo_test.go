package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

func makeCelebration(title string, outcome model.Outcome, at time.Time) model.Celebration {
	return model.Celebration{
		Outcome:     outcome,
		Title:       title,
		Number:      42,
		HTMLURL:     "https://github.com/o/r/pull/42",
		PresentedAt: at,
	}
}

func TestCelebrationRepo_LatestEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCelebrationRepo(db)

	got, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCelebrationRepo_RecordAssignsID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCelebrationRepo(db)

	got, err := repo.Record(context.Background(), makeCelebration("Add feature", model.OutcomePositive, time.Now()))
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
}

func TestCelebrationRepo_ListRecent_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCelebrationRepo(db)
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	_, err := repo.Record(ctx, makeCelebration("first", model.OutcomePositive, base))
	require.NoError(t, err)
	_, err = repo.Record(ctx, makeCelebration("second", model.OutcomeNegative, base.Add(500*time.Millisecond)))
	require.NoError(t, err)
	_, err = repo.Record(ctx, makeCelebration("third", model.OutcomePositive, base.Add(time.Second)))
	require.NoError(t, err)

	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, model.OutcomeNegative, list[1].Outcome)
	assert.Equal(t, 42, list[1].Number)
	assert.Equal(t, "https://github.com/o/r/pull/42", list[1].HTMLURL)
	assert.True(t, base.Add(500*time.Millisecond).Equal(list[1].PresentedAt))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "third", latest.Title)
}
