package check

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"sitch/internal/domain/entity"
)

// Checker checks every followed item of one platform.
//
// Implementations reconcile item checkpoints in place as part of CheckAll.
// A platform whose credentials are missing returns nil: zero results, zero
// errors, checkpoints untouched.
type Checker interface {
	// Platform is the display name of the platform, e.g. "RSS".
	Platform() string
	// CheckAll checks all followed items against the global checkpoint and
	// returns one result per item.
	CheckAll(ctx context.Context, global *time.Time) []ItemResult
}

// ItemResult is the outcome of checking a single followed item. Updates
// and Err are mutually exclusive: a result either carries the (possibly
// empty) update list, sorted ascending by publish time, or the failure
// that prevented the check.
type ItemResult struct {
	Platform string
	Item     string
	Updates  []entity.Update
	Err      error
	Elapsed  time.Duration
}

// HasUpdates reports whether the check found at least one update.
func (r ItemResult) HasUpdates() bool { return len(r.Updates) > 0 }

// Service checks all platforms concurrently and aggregates their results.
type Service struct {
	checkers []Checker
}

// NewService creates a Service over a fixed set of platform checkers.
func NewService(checkers ...Checker) *Service {
	return &Service{checkers: checkers}
}

// Run checks every platform concurrently against the global checkpoint and
// returns the aggregated report. Each platform runs in its own goroutine;
// a panicking platform is logged and contributes no results, the others
// are unaffected.
func (s *Service) Run(ctx context.Context, global *time.Time) *Report {
	report := &Report{Since: global, StartedAt: time.Now()}
	perPlatform := make([][]ItemResult, len(s.checkers))

	var wg sync.WaitGroup
	for i, c := range s.checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Default().Error("panic while checking platform",
						slog.String("platform", c.Platform()),
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())))
				}
			}()

			perPlatform[i] = c.CheckAll(ctx, global)
		}(i, c)
	}
	wg.Wait()

	for _, results := range perPlatform {
		report.Results = append(report.Results, results...)
	}

	slog.Default().Debug("check run completed",
		slog.Int("platforms", len(s.checkers)),
		slog.Int("items", len(report.Results)),
		slog.Int("failures", len(report.Failures())),
		slog.Duration("duration", time.Since(report.StartedAt)))

	return report
}

// Report is the aggregate outcome of one check run. Results are ordered by
// platform registration order, then item registration order within each
// platform.
type Report struct {
	Since     *time.Time
	StartedAt time.Time
	Results   []ItemResult
}

// AnyUpdates reports whether any item on any platform found at least one
// update. It decides whether the global checkpoint advances after a run.
func (r *Report) AnyUpdates() bool {
	for _, res := range r.Results {
		if res.HasUpdates() {
			return true
		}
	}
	return false
}

// Updated returns the results that found updates, preserving report order.
func (r *Report) Updated() []ItemResult {
	var updated []ItemResult
	for _, res := range r.Results {
		if res.HasUpdates() {
			updated = append(updated, res)
		}
	}
	return updated
}

// Failures returns the results whose checks failed, preserving report
// order.
func (r *Report) Failures() []ItemResult {
	var failed []ItemResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
