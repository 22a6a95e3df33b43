package notify

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"sitch/internal/domain/entity"
)

// Dispatcher fans update and error notifications out to a Notifier.
// Update notifications run in tracked goroutines joined by Wait; error
// alerts are sent inline and never awaited.
type Dispatcher struct {
	notifier Notifier
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher over the given notifier.
func NewDispatcher(notifier Notifier) *Dispatcher {
	return &Dispatcher{notifier: notifier}
}

// UpdateFound dispatches an actionable notification for one updated item
// in a tracked goroutine. The goroutine blocks until the user dismisses
// the notification or opens the update, and Wait joins it before the run
// finishes. Notifier errors are logged, never propagated.
func (d *Dispatcher) UpdateFound(ctx context.Context, platform, item string, u entity.Update) {
	notifyID := uuid.New().String()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		// Panic recovery
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic in update notification",
					slog.String("notify_id", notifyID),
					slog.String("platform", platform),
					slog.String("item", item),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
			}
		}()

		slog.Debug("Dispatching update notification",
			slog.String("notify_id", notifyID),
			slog.String("platform", platform),
			slog.String("item", item),
			slog.String("link", u.Link))

		n := Notification{
			Summary: fmt.Sprintf("Sitch - %s", item),
			Body:    u.Title,
			Link:    u.Link,
		}
		if err := d.notifier.Notify(ctx, n); err != nil {
			slog.Warn("Update notification failed",
				slog.String("notify_id", notifyID),
				slog.String("platform", platform),
				slog.String("item", item),
				slog.Any("error", err))
			return
		}

		slog.Debug("Update notification completed",
			slog.String("notify_id", notifyID),
			slog.String("item", item))
	}()
}

// CheckFailed sends a one-shot error alert for a failed item check. The
// alert is not tracked and Wait does not join it.
func (d *Dispatcher) CheckFailed(ctx context.Context, platform, item string, err error) {
	n := Notification{
		Summary: fmt.Sprintf("Sitch Error - %s", item),
		Body:    err.Error(),
	}
	if alertErr := d.notifier.Alert(ctx, n); alertErr != nil {
		slog.Warn("Error alert failed",
			slog.String("platform", platform),
			slog.String("item", item),
			slog.Any("error", alertErr))
	}
}

// Wait blocks until every tracked update notification has been dismissed
// or actioned, or ctx is cancelled. The caller must not persist run state
// before Wait returns.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		slog.Warn("Abandoned pending notifications", slog.Any("cause", ctx.Err()))
		return ctx.Err()
	}
}
