package check

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sitch/internal/domain/entity"
)

// defaultItemParallelism caps how many items of a single platform are
// checked at the same time.
const defaultItemParallelism = 8

// FetchFunc fetches the updates for one item that were published strictly
// after since. A nil since means there is no lower bound and everything
// the platform returns counts as new.
type FetchFunc func(ctx context.Context, since *time.Time) ([]entity.Update, error)

// entry pairs an item with the fetch that checks it.
type entry struct {
	item  *entity.Item
	fetch FetchFunc
}

// Group runs the per-item fan-out that every platform checker shares:
// bounded concurrency, one result slot per item, isolated failures and
// checkpoint reconciliation. Construct one per run with NewGroup, register
// items with Add, then call CheckAll once.
type Group struct {
	platform    string
	parallelism int
	entries     []entry
}

// NewGroup returns an empty group for the named platform.
func NewGroup(platform string) *Group {
	return &Group{platform: platform, parallelism: defaultItemParallelism}
}

// Add registers an item and the fetch that checks it. The group reconciles
// item.LastChecked in place during CheckAll.
func (g *Group) Add(item *entity.Item, fetch FetchFunc) {
	g.entries = append(g.entries, entry{item: item, fetch: fetch})
}

// CheckAll checks every registered item concurrently and returns one
// result per item, in registration order. A failing item never affects
// its siblings; the error lands in that item's slot. Elapsed times are
// measured from the start of CheckAll to each item's completion.
func (g *Group) CheckAll(ctx context.Context, global *time.Time) []ItemResult {
	if len(g.entries) == 0 {
		return nil
	}

	start := time.Now()
	results := make([]ItemResult, len(g.entries))
	sem := make(chan struct{}, g.parallelism)

	var wg sync.WaitGroup
	for i, e := range g.entries {
		wg.Add(1)
		go func(i int, e entry) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = g.checkOne(ctx, e, global, start)
		}(i, e)
	}
	wg.Wait()

	return results
}

// checkOne checks a single item against its effective checkpoint and
// reconciles the item's own checkpoint from the outcome. Failed checks
// reconcile as "nothing found".
func (g *Group) checkOne(ctx context.Context, e entry, global *time.Time, start time.Time) ItemResult {
	res := ItemResult{Platform: g.platform, Item: e.item.Name}

	since := entity.EffectiveCheckpoint(global, e.item.LastChecked)
	updates, err := e.fetch(ctx, since)
	res.Elapsed = time.Since(start)

	if err != nil {
		res.Err = err
		e.item.Reconcile(global, false, time.Now())
		slog.Default().Debug("item check failed",
			slog.String("platform", g.platform),
			slog.String("item", e.item.Name),
			slog.Any("error", err),
			slog.Duration("elapsed", res.Elapsed))
		return res
	}

	entity.SortUpdates(updates)
	res.Updates = updates
	e.item.Reconcile(global, len(updates) > 0, time.Now())

	slog.Default().Debug("item check completed",
		slog.String("platform", g.platform),
		slog.String("item", e.item.Name),
		slog.Int("updates", len(updates)),
		slog.Duration("elapsed", res.Elapsed))
	return res
}
