package check

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitch/internal/domain/entity"
)

func fixedUpdates(updates ...entity.Update) FetchFunc {
	return func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
		return updates, nil
	}
}

func fixedErr(err error) FetchFunc {
	return func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
		return nil, err
	}
}

func TestGroup_CheckAll_Empty(t *testing.T) {
	g := NewGroup("RSS")

	assert.Nil(t, g.CheckAll(context.Background(), nil))
}

func TestGroup_CheckAll_ResultsInRegistrationOrder(t *testing.T) {
	g := NewGroup("RSS")
	names := []string{"first", "second", "third", "fourth"}
	for _, name := range names {
		g.Add(&entity.Item{Name: name}, fixedUpdates())
	}

	results := g.CheckAll(context.Background(), nil)

	require.Len(t, results, len(names))
	for i, res := range results {
		assert.Equal(t, names[i], res.Item)
		assert.Equal(t, "RSS", res.Platform)
	}
}

func TestGroup_CheckAll_SortsUpdates(t *testing.T) {
	later := entity.Update{Title: "later", PublishedAt: time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)}
	earlier := entity.Update{Title: "earlier", PublishedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}

	g := NewGroup("Anime")
	g.Add(&entity.Item{Name: "show"}, fixedUpdates(later, earlier))

	results := g.CheckAll(context.Background(), nil)

	require.Len(t, results, 1)
	require.Len(t, results[0].Updates, 2)
	assert.Equal(t, "earlier", results[0].Updates[0].Title)
	assert.Equal(t, "later", results[0].Updates[1].Title)
}

func TestGroup_CheckAll_FailureIsIsolated(t *testing.T) {
	boom := errors.New("boom")
	fresh := entity.Update{Title: "fresh", PublishedAt: time.Now()}

	g := NewGroup("Manga")
	g.Add(&entity.Item{Name: "ok"}, fixedUpdates(fresh))
	g.Add(&entity.Item{Name: "bad"}, fixedErr(boom))
	g.Add(&entity.Item{Name: "also ok"}, fixedUpdates())

	results := g.CheckAll(context.Background(), nil)

	require.Len(t, results, 3)
	assert.True(t, results[0].HasUpdates())
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Empty(t, results[1].Updates)
	assert.NoError(t, results[2].Err)
}

func TestGroup_CheckAll_PassesEffectiveCheckpoint(t *testing.T) {
	global := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	own := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	var gotSince *time.Time
	g := NewGroup("RSS")
	g.Add(&entity.Item{Name: "feed", LastChecked: &own}, func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
		gotSince = since
		return nil, nil
	})

	g.CheckAll(context.Background(), &global)

	// the item's own earlier checkpoint wins over the global one
	require.NotNil(t, gotSince)
	assert.True(t, gotSince.Equal(own))
}

func TestGroup_CheckAll_ReconcilesCheckpoints(t *testing.T) {
	global := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	update := entity.Update{Title: "new", PublishedAt: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)}

	updated := &entity.Item{Name: "updated"}
	unchecked := &entity.Item{Name: "unchecked"}
	failing := &entity.Item{Name: "failing"}

	g := NewGroup("RSS")
	g.Add(updated, fixedUpdates(update))
	g.Add(unchecked, fixedUpdates())
	g.Add(failing, fixedErr(errors.New("boom")))

	before := time.Now()
	g.CheckAll(context.Background(), &global)

	// found updates: checkpoint advances to the check's wall-clock time
	require.NotNil(t, updated.LastChecked)
	assert.False(t, updated.LastChecked.Before(before))

	// nothing found, never checked: inherits the global checkpoint
	require.NotNil(t, unchecked.LastChecked)
	assert.True(t, unchecked.LastChecked.Equal(global))

	// a failed check counts as nothing found and still inherits
	require.NotNil(t, failing.LastChecked)
	assert.True(t, failing.LastChecked.Equal(global))
}

func TestGroup_CheckAll_KeepsExistingCheckpointWithoutUpdates(t *testing.T) {
	global := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	own := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	item := &entity.Item{Name: "quiet", LastChecked: &own}
	g := NewGroup("RSS")
	g.Add(item, fixedUpdates())

	g.CheckAll(context.Background(), &global)

	require.NotNil(t, item.LastChecked)
	assert.True(t, item.LastChecked.Equal(own))
}

func TestGroup_CheckAll_BoundsParallelism(t *testing.T) {
	const items = 20
	const bound = 3

	g := NewGroup("RSS")
	g.parallelism = bound

	var mu sync.Mutex
	inFlight, peak := 0, 0
	for i := 0; i < items; i++ {
		g.Add(&entity.Item{Name: "item"}, func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
			return nil, nil
		})
	}

	g.CheckAll(context.Background(), nil)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, bound)
}

func TestGroup_CheckAll_MeasuresElapsed(t *testing.T) {
	g := NewGroup("RSS")
	g.Add(&entity.Item{Name: "slow"}, func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
		time.Sleep(10 * time.Millisecond)
		return nil, nil
	})

	results := g.CheckAll(context.Background(), nil)

	require.Len(t, results, 1)
	assert.GreaterOrEqual(t, results[0].Elapsed, 10*time.Millisecond)
}
