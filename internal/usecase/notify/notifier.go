// Package notify dispatches check results to the user as notifications.
// Update notifications are actionable and tracked, so a run can hold its
// final state save until the user has seen every one; error alerts are
// fire and forget.
package notify

import "context"

// Notification is one message handed to a Notifier.
type Notification struct {
	// Summary is the notification headline.
	Summary string
	// Body is the message text under the headline.
	Body string
	// Link, when non-empty, enables the "open" action on notifiers that
	// support actions.
	Link string
}

// Notifier delivers notifications to the user.
//
// Thread Safety:
//   - All methods must be safe for concurrent use by multiple goroutines
type Notifier interface {
	// Notify displays an actionable notification and blocks until the
	// user dismisses it or invokes an action, or ctx is cancelled. It has
	// no timeout of its own.
	Notify(ctx context.Context, n Notification) error

	// Alert displays a plain notification and returns once it has been
	// handed off for display. It is never awaited.
	Alert(ctx context.Context, n Notification) error
}
