// Package desktop delivers notifications to the user's desktop over the
// D-Bus notification service. Update notifications carry an "Open in
// Browser" action and are held open until the user reacts, which is what
// lets a run wait for every notification before it saves and exits.
package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	libnotify "github.com/esiqveland/notify"
	"github.com/godbus/dbus/v5"
	"github.com/pkg/browser"

	"sitch/internal/usecase/notify"
)

const openActionKey = "open"

// pending tracks one displayed notification until the server reports it
// actioned or closed.
type pending struct {
	link string
	done chan struct{}
}

// Notifier shows desktop notifications on the D-Bus session bus. It
// implements notify.Notifier.
type Notifier struct {
	conn     *dbus.Conn
	notifier libnotify.Notifier

	mu      sync.Mutex
	pending map[uint32]*pending
}

var _ notify.Notifier = (*Notifier)(nil)

// New connects to the session bus and registers for notification action
// and close signals. The caller owns the returned Notifier and must Close
// it.
func New() (*Notifier, error) {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	if err := conn.Auth(nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("authenticate on session bus: %w", err)
	}
	if err := conn.Hello(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("register on session bus: %w", err)
	}

	n := &Notifier{conn: conn, pending: make(map[uint32]*pending)}
	notifier, err := libnotify.New(conn,
		libnotify.WithOnAction(n.onAction),
		libnotify.WithOnClosed(n.onClosed),
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create desktop notifier: %w", err)
	}
	n.notifier = notifier
	return n, nil
}

// Notify displays an actionable notification that never expires on its
// own and blocks until the user opens or dismisses it, or ctx is
// cancelled.
func (n *Notifier) Notify(ctx context.Context, msg notify.Notification) error {
	notification := libnotify.Notification{
		AppName:       "sitch",
		Summary:       msg.Summary,
		Body:          msg.Body,
		ExpireTimeout: libnotify.ExpireTimeoutNever,
	}
	if msg.Link != "" {
		notification.Actions = []libnotify.Action{{Key: openActionKey, Label: "Open in Browser"}}
	}

	entry := &pending{link: msg.Link, done: make(chan struct{})}

	// The map entry must exist before a signal for this ID can be
	// handled; the handlers take the same lock.
	n.mu.Lock()
	id, err := n.notifier.SendNotification(notification)
	if err != nil {
		n.mu.Unlock()
		return fmt.Errorf("send notification: %w", err)
	}
	n.pending[id] = entry
	n.mu.Unlock()

	select {
	case <-entry.done:
		return nil
	case <-ctx.Done():
		n.mu.Lock()
		delete(n.pending, id)
		n.mu.Unlock()
		return ctx.Err()
	}
}

// Alert displays a plain notification and returns as soon as the server
// has accepted it. The notification expires on the server's schedule and
// is never waited on.
func (n *Notifier) Alert(ctx context.Context, msg notify.Notification) error {
	_, err := n.notifier.SendNotification(libnotify.Notification{
		AppName:       "sitch",
		Summary:       msg.Summary,
		Body:          msg.Body,
		ExpireTimeout: libnotify.ExpireTimeoutSetByNotificationServer,
	})
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// Close tears down the notifier and the bus connection. Pending Notify
// calls are released by their contexts, not by Close.
func (n *Notifier) Close() error {
	if err := n.notifier.Close(); err != nil {
		_ = n.conn.Close()
		return err
	}
	return n.conn.Close()
}

func (n *Notifier) onAction(action *libnotify.ActionInvokedSignal) {
	n.mu.Lock()
	entry, ok := n.pending[action.ID]
	delete(n.pending, action.ID)
	n.mu.Unlock()
	if !ok {
		return
	}

	if action.ActionKey == openActionKey && entry.link != "" {
		if err := browser.OpenURL(entry.link); err != nil {
			slog.Warn("Couldn't open link in browser",
				slog.String("link", entry.link),
				slog.Any("error", err))
		}
	}
	close(entry.done)
}

func (n *Notifier) onClosed(closed *libnotify.NotificationClosedSignal) {
	n.mu.Lock()
	entry, ok := n.pending[closed.ID]
	delete(n.pending, closed.ID)
	n.mu.Unlock()
	if !ok {
		return
	}
	close(entry.done)
}
