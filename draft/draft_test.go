package draft

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativVentures-hub/focus-group-ai/catalog"
	"github.com/CreativVentures-hub/focus-group-ai/criteria"
	"github.com/CreativVentures-hub/focus-group-ai/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	store := NewStore(cat, time.Minute)
	t.Cleanup(store.Close)
	return store
}

func TestCreateDefaults(t *testing.T) {
	store := testStore(t)

	d, err := store.Create()
	require.NoError(t, err)

	view := d.View()
	assert.Equal(t, "market_research", view.Fields.SessionType,
		"the first enabled session type is preselected")
	assert.Equal(t, DefaultParticipants, view.Fields.NumberOfParticipants)
	assert.Equal(t, "idle", view.Status)

	for _, name := range []string{"gender", "age_range", DimensionBuyingBehaviors} {
		assert.Empty(t, view.Selections[name].Selected, name)
	}
}

func TestStoreGetDelete(t *testing.T) {
	store := testStore(t)

	d, err := store.Create()
	require.NoError(t, err)

	got, err := store.Get(d.ID)
	require.NoError(t, err)
	assert.Same(t, d, got)

	require.NoError(t, store.Delete(d.ID))
	_, err = store.Get(d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(d.ID), ErrNotFound)
}

func TestSetFieldsRejectsDisabledType(t *testing.T) {
	store := testStore(t)
	d, err := store.Create()
	require.NoError(t, err)

	err = d.SetFields(model.SessionFields{SessionType: "user_experience"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available yet")

	// unknown types pass through; validation catches them at submit time
	assert.NoError(t, d.SetFields(model.SessionFields{SessionType: "palm_reading"}))
}

func TestSetFieldsDropsEmptyQuestions(t *testing.T) {
	store := testStore(t)
	d, err := store.Create()
	require.NoError(t, err)

	err = d.SetFields(model.SessionFields{
		SessionType: "market_research",
		Questions: []model.Question{
			{Text: "How often do you buy soda?"},
			{Text: ""},
			{Text: "What brands do you recognize?"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, d.View().Fields.Questions, 2)
}

func TestSnapshotUsesWireValues(t *testing.T) {
	store := testStore(t)
	d, err := store.Create()
	require.NoError(t, err)

	err = d.Selector("gender", func(s *criteria.Selector) error {
		s.Open("")
		if err := s.Toggle("Male"); err != nil {
			return err
		}
		s.Confirm()
		return nil
	})
	require.NoError(t, err)

	err = d.Selector(DimensionProductCategories, func(s *criteria.Selector) error {
		s.Open("")
		if err := s.Toggle("Food and Beverage"); err != nil {
			return err
		}
		s.Confirm()
		return nil
	})
	require.NoError(t, err)

	form := d.Snapshot()
	assert.Equal(t, []string{"male"}, form.Demographics["gender"])
	assert.Equal(t, []string{"food_beverage"}, form.ProductCategories)
	assert.Empty(t, form.Demographics["race"])
}

func TestSelectorUnknownDimension(t *testing.T) {
	store := testStore(t)
	d, err := store.Create()
	require.NoError(t, err)

	err = d.Selector("shoe_size", func(s *criteria.Selector) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown criteria dimension")
}

func TestSingleSubmissionSlot(t *testing.T) {
	store := testStore(t)
	d, err := store.Create()
	require.NoError(t, err)

	require.NoError(t, d.BeginSubmit(func() {}))
	assert.True(t, d.Submitting())

	assert.ErrorIs(t, d.BeginSubmit(func() {}), ErrSubmissionInFlight)

	d.EndSubmit()
	assert.False(t, d.Submitting())
	assert.NoError(t, d.BeginSubmit(func() {}))
	d.EndSubmit()
}

func TestConcurrentSubmitsClaimOnce(t *testing.T) {
	store := testStore(t)
	d, err := store.Create()
	require.NoError(t, err)

	const attempts = 16
	var wg sync.WaitGroup
	claims := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.BeginSubmit(func() {}) == nil {
				claims <- struct{}{}
			}
		}()
	}
	wg.Wait()

	assert.Len(t, claims, 1, "exactly one concurrent submit may win the slot")
}

func TestCancelSubmit(t *testing.T) {
	store := testStore(t)
	d, err := store.Create()
	require.NoError(t, err)

	assert.False(t, d.CancelSubmit(), "nothing to cancel while idle")

	cancelled := false
	require.NoError(t, d.BeginSubmit(func() { cancelled = true }))
	assert.True(t, d.CancelSubmit())
	assert.True(t, cancelled)
	d.EndSubmit()
}

func TestExpireSweepsIdleDrafts(t *testing.T) {
	store := testStore(t)

	stale, err := store.Create()
	require.NoError(t, err)
	busy, err := store.Create()
	require.NoError(t, err)
	require.NoError(t, busy.BeginSubmit(func() {}))

	store.expire(time.Now().Add(2 * store.ttl))

	_, err = store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(busy.ID)
	assert.NoError(t, err, "a draft with a request in flight survives the sweep")
	busy.EndSubmit()
}
