package notify

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

// blockingNotifier records calls and holds every Notify until released.
type blockingNotifier struct {
	mu        sync.Mutex
	notifies  []Notification
	alerts    []Notification
	release   chan struct{}
	notifyErr error
	alertErr  error
}

func newBlockingNotifier() *blockingNotifier {
	return &blockingNotifier{release: make(chan struct{})}
}

func (n *blockingNotifier) Notify(ctx context.Context, notification Notification) error {
	n.mu.Lock()
	n.notifies = append(n.notifies, notification)
	n.mu.Unlock()

	select {
	case <-n.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return n.notifyErr
}

func (n *blockingNotifier) Alert(ctx context.Context, notification Notification) error {
	n.mu.Lock()
	n.alerts = append(n.alerts, notification)
	n.mu.Unlock()
	return n.alertErr
}

func (n *blockingNotifier) pendingNotifies() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notifies)
}

func TestDispatcher_WaitJoinsAllUpdateNotifications(t *testing.T) {
	notifier := newBlockingNotifier()
	d := NewDispatcher(notifier)
	ctx := context.Background()

	u := entity.Update{Title: "new thing", Link: "https://example.com/u"}
	d.UpdateFound(ctx, "RSS", "feed one", u)
	d.UpdateFound(ctx, "Anime", "show", u)
	d.UpdateFound(ctx, "Manga", "series", u)

	// all three notifications are on screen
	require.Eventually(t, func() bool { return notifier.pendingNotifies() == 3 },
		time.Second, 5*time.Millisecond)

	waitDone := make(chan struct{})
	go func() {
		_ = d.Wait(ctx)
		close(waitDone)
	}()

	select {
	case <-waitDone:
		t.Fatal("Wait returned while notifications were still pending")
	case <-time.After(50 * time.Millisecond):
	}

	close(notifier.release)

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after all notifications completed")
	}
}

func TestDispatcher_UpdateFound_BuildsNotification(t *testing.T) {
	notifier := newBlockingNotifier()
	close(notifier.release)
	d := NewDispatcher(notifier)

	d.UpdateFound(context.Background(), "Bandcamp", "My Artist", entity.Update{
		Title:       "New Album by My Artist",
		Link:        "https://artist.bandcamp.com/album/new",
		PublishedAt: time.Now(),
	})
	require.NoError(t, d.Wait(context.Background()))

	require.Len(t, notifier.notifies, 1)
	got := notifier.notifies[0]
	assert.Equal(t, "Sitch - My Artist", got.Summary)
	assert.Equal(t, "New Album by My Artist", got.Body)
	assert.Equal(t, "https://artist.bandcamp.com/album/new", got.Link)
}

func TestDispatcher_CheckFailed_IsSynchronousAndNotJoined(t *testing.T) {
	notifier := newBlockingNotifier()
	d := NewDispatcher(notifier)

	d.CheckFailed(context.Background(), "RSS", "broken feed", errors.New("Couldn't load RSS feed from https://x: 503"))

	// the alert was delivered inline, nothing is tracked
	require.Len(t, notifier.alerts, 1)
	got := notifier.alerts[0]
	assert.Equal(t, "Sitch Error - broken feed", got.Summary)
	assert.Equal(t, "Couldn't load RSS feed from https://x: 503", got.Body)
	assert.Empty(t, got.Link)

	require.NoError(t, d.Wait(context.Background()))
}

func TestDispatcher_Wait_UnblocksOnContextCancel(t *testing.T) {
	notifier := newBlockingNotifier()
	defer close(notifier.release)
	d := NewDispatcher(notifier)

	// the notification itself ignores cancellation; only Wait's ctx fires
	d.UpdateFound(context.Background(), "RSS", "feed", entity.Update{Title: "t", Link: "https://x"})
	require.Eventually(t, func() bool { return notifier.pendingNotifies() == 1 },
		time.Second, 5*time.Millisecond)

	waitCtx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := d.Wait(waitCtx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDispatcher_NotifierErrorIsSwallowed(t *testing.T) {
	notifier := newBlockingNotifier()
	close(notifier.release)
	notifier.notifyErr = errors.New("session bus gone")
	d := NewDispatcher(notifier)

	d.UpdateFound(context.Background(), "RSS", "feed", entity.Update{Title: "t"})

	assert.NoError(t, d.Wait(context.Background()))
}

type panickingNotifier struct{}

func (panickingNotifier) Notify(ctx context.Context, n Notification) error { panic("bus exploded") }
func (panickingNotifier) Alert(ctx context.Context, n Notification) error  { return nil }

func TestDispatcher_RecoversNotifierPanic(t *testing.T) {
	d := NewDispatcher(panickingNotifier{})

	d.UpdateFound(context.Background(), "RSS", "feed", entity.Update{Title: "t"})

	// the panic is recovered and the tracked goroutine still completes
	assert.NoError(t, d.Wait(context.Background()))
}
