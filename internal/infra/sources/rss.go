package sources

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"sitch/internal/domain/entity"
	"sitch/internal/usecase/check"
)

// RSS checks followed RSS/Atom feeds for newly published entries.
type RSS struct {
	client *http.Client
	feeds  []*entity.FeedSource
}

// NewRSS creates an RSS checker over the followed feeds. The checker
// reconciles each feed's LastChecked in place during CheckAll.
func NewRSS(client *http.Client, feeds []*entity.FeedSource) *RSS {
	return &RSS{client: client, feeds: feeds}
}

// Platform returns the display name of the platform.
func (r *RSS) Platform() string { return "RSS" }

// CheckAll checks every followed feed concurrently.
func (r *RSS) CheckAll(ctx context.Context, global *time.Time) []check.ItemResult {
	group := check.NewGroup(r.Platform())
	for _, feed := range r.feeds {
		feed := feed
		group.Add(&feed.Item, func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
			return r.fetch(ctx, feed.FeedURL, since)
		})
	}
	return group.CheckAll(ctx, global)
}

// fetch loads one feed and returns its entries published strictly after
// since. Entries without a parseable publish date are skipped.
func (r *RSS) fetch(ctx context.Context, feedURL string, since *time.Time) ([]entity.Update, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = r.client

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, classifyFeedError(feedURL, err)
	}

	var updates []entity.Update
	for _, item := range feed.Items {
		if item.PublishedParsed == nil {
			continue
		}
		published := *item.PublishedParsed
		if !publishedAfter(since, published) {
			continue
		}

		title := item.Title
		if title == "" {
			title = "<unnamed>"
		}
		link := item.Link
		if link == "" {
			link = "<no link>"
		}
		updates = append(updates, entity.Update{Title: title, Link: link, PublishedAt: published})
	}
	return updates, nil
}

// classifyFeedError maps a gofeed failure onto an error kind: transport
// and HTTP status failures are network errors, everything else means the
// body wasn't a feed.
func classifyFeedError(feedURL string, err error) error {
	var urlErr *url.Error
	var httpErr gofeed.HTTPError
	if errors.As(err, &urlErr) || errors.As(err, &httpErr) {
		return entity.NetworkUnavailable("Couldn't load RSS feed from %s: %v", feedURL, err)
	}
	return entity.MalformedResponse("Couldn't load RSS feed from %s: %v", feedURL, err)
}
