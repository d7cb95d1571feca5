package present_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/prcelebration/internal/adapter/driven/present"
	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

type stubPresenter struct {
	presents int
	advices  []string
	err      error
}

func (s *stubPresenter) Present(_ context.Context, _ bool, _ model.PRSummary) error {
	s.presents++
	return s.err
}

func (s *stubPresenter) Advise(_ context.Context, message string) error {
	s.advices = append(s.advices, message)
	return s.err
}

type stubCelebrationStore struct {
	recorded []model.Celebration
	err      error
}

func (s *stubCelebrationStore) Record(_ context.Context, c model.Celebration) (model.Celebration, error) {
	if s.err != nil {
		return model.Celebration{}, s.err
	}
	c.ID = int64(len(s.recorded) + 1)
	s.recorded = append(s.recorded, c)
	return c, nil
}

func (s *stubCelebrationStore) Latest(_ context.Context) (*model.Celebration, error) {
	return nil, nil
}

func (s *stubCelebrationStore) ListRecent(_ context.Context, _ int) ([]model.Celebration, error) {
	return s.recorded, nil
}

func TestFanout_PartialFailureCountsAsShown(t *testing.T) {
	failing := &stubPresenter{err: errors.New("terminal closed")}
	ok := &stubPresenter{}
	fanout := present.Fanout{ok, failing}

	err := fanout.Present(context.Background(), true, model.PRSummary{Title: "x"})

	require.NoError(t, err)
	assert.Equal(t, 1, failing.presents)
	assert.Equal(t, 1, ok.presents)
}

func TestFanout_RecorderSucceedsWhenDesktopFails(t *testing.T) {
	store := &stubCelebrationStore{}
	desktop := &stubPresenter{err: errors.New("no tty")}
	fanout := present.Fanout{present.NewRecorder(store), desktop}

	require.NoError(t, fanout.Present(context.Background(), true, model.PRSummary{Title: "x"}))

	assert.Len(t, store.recorded, 1)
	assert.Equal(t, 1, desktop.presents)
}

func TestFanout_AllFailingJoinsErrors(t *testing.T) {
	a := &stubPresenter{err: errors.New("terminal closed")}
	b := &stubPresenter{err: errors.New("db locked")}

	err := present.Fanout{a, b}.Present(context.Background(), false, model.PRSummary{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal closed")
	assert.Contains(t, err.Error(), "db locked")
}

func TestFanout_Advise(t *testing.T) {
	a, b := &stubPresenter{}, &stubPresenter{}

	require.NoError(t, present.Fanout{a, b}.Advise(context.Background(), "hello"))

	assert.Equal(t, []string{"hello"}, a.advices)
	assert.Equal(t, []string{"hello"}, b.advices)
}

func TestFanout_EmptyIsNoop(t *testing.T) {
	assert.NoError(t, present.Fanout{}.Present(context.Background(), false, model.PRSummary{}))
}

func TestRecorder_RecordsOutcome(t *testing.T) {
	store := &stubCelebrationStore{}
	recorder := present.NewRecorder(store)
	pr := model.PRSummary{Title: "Add feature", Number: 42, HTMLURL: "https://x/pull/42"}

	require.NoError(t, recorder.Present(context.Background(), true, pr))
	require.NoError(t, recorder.Present(context.Background(), false, pr))

	require.Len(t, store.recorded, 2)
	assert.Equal(t, model.OutcomePositive, store.recorded[0].Outcome)
	assert.Equal(t, model.OutcomeNegative, store.recorded[1].Outcome)
	assert.Equal(t, pr, store.recorded[0].Summary())
	assert.False(t, store.recorded[0].PresentedAt.IsZero())
}

func TestRecorder_StoreError(t *testing.T) {
	recorder := present.NewRecorder(&stubCelebrationStore{err: errors.New("locked")})

	err := recorder.Present(context.Background(), true, model.PRSummary{})
	require.Error(t, err)
}
