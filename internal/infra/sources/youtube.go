package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"sitch/internal/domain/entity"
	"sitch/internal/usecase/check"
)

const (
	defaultYouTubeBaseURL       = "https://www.googleapis.com/youtube/v3"
	defaultYouTubeSearchBaseURL = "https://content.googleapis.com/youtube/v3"

	// epochRFC3339 stands in for a nil checkpoint: the Data API requires a
	// publishedAfter value, so "since forever" becomes "since the epoch".
	epochRFC3339 = "1970-01-01T00:00:00Z"
)

// YouTube checks followed channels for new videos through the YouTube
// Data API v3. The platform is credential gated: without an API key,
// CheckAll silently checks nothing.
type YouTube struct {
	client        *http.Client
	apiKey        string
	channels      []*entity.Channel
	baseURL       string
	searchBaseURL string
}

// NewYouTube creates a YouTube checker over the followed channels.
func NewYouTube(client *http.Client, apiKey string, channels []*entity.Channel) *YouTube {
	return &YouTube{
		client:        client,
		apiKey:        apiKey,
		channels:      channels,
		baseURL:       defaultYouTubeBaseURL,
		searchBaseURL: defaultYouTubeSearchBaseURL,
	}
}

// Platform returns the display name of the platform.
func (y *YouTube) Platform() string { return "YouTube" }

// CheckAll checks every followed channel concurrently. Without an API key
// it returns nil: zero results, zero errors, checkpoints untouched.
func (y *YouTube) CheckAll(ctx context.Context, global *time.Time) []check.ItemResult {
	if y.apiKey == "" {
		return nil
	}

	group := check.NewGroup(y.Platform())
	for _, channel := range y.channels {
		channel := channel
		group.Add(&channel.Item, func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
			return y.fetch(ctx, channel.ChannelID, since)
		})
	}
	return group.CheckAll(ctx, global)
}

// fetch lists a channel's recent videos. The since filter is delegated to
// the API through publishedAfter rather than applied client-side.
func (y *YouTube) fetch(ctx context.Context, channelID string, since *time.Time) ([]entity.Update, error) {
	after := epochRFC3339
	if since != nil {
		after = since.Format(time.RFC3339)
	}

	params := url.Values{
		"part":           {"snippet"},
		"channelId":      {channelID},
		"maxResults":     {"25"},
		"order":          {"date"},
		"type":           {"video"},
		"key":            {y.apiKey},
		"publishedAfter": {after},
	}

	var payload struct {
		Items *[]struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				PublishedAt string `json:"publishedAt"`
				Title       string `json:"title"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := getJSON(ctx, y.client, y.baseURL+"/search", params, &payload, "key"); err != nil {
		return nil, err
	}
	if payload.Items == nil {
		return nil, entity.MalformedResponse("YouTube API JSON data wasn't an object")
	}

	var updates []entity.Update
	for _, item := range *payload.Items {
		published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			continue
		}

		title := item.Snippet.Title
		if title == "" {
			title = "<unnamed>"
		}
		link := "<no link>"
		if item.ID.VideoID != "" {
			link = "https://www.youtube.com/watch?v=" + item.ID.VideoID
		}
		updates = append(updates, entity.Update{Title: title, Link: link, PublishedAt: published.Local()})
	}
	return updates, nil
}

// SearchChannels searches the Data API for channels matching the query.
// The caller must hold an API key; without one the API rejects the call.
func (y *YouTube) SearchChannels(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{
		"part":       {"snippet"},
		"maxResults": {fmt.Sprint(searchResultLimit)},
		"type":       {"channel"},
		"key":        {y.apiKey},
		"q":          {query},
	}

	var payload struct {
		Items *[]struct {
			Snippet struct {
				ChannelID    string `json:"channelId"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := getJSON(ctx, y.client, y.searchBaseURL+"/search", params, &payload, "key"); err != nil {
		return nil, err
	}
	if payload.Items == nil {
		return nil, entity.MalformedResponse("Couldn't parse results as JSON array")
	}

	results := make([]SearchResult, 0, len(*payload.Items))
	for _, item := range *payload.Items {
		if item.Snippet.ChannelID == "" {
			return nil, entity.MissingField("No id found in search result")
		}
		if item.Snippet.ChannelTitle == "" {
			return nil, entity.MissingField("No title found for search result")
		}
		results = append(results, SearchResult{ID: item.Snippet.ChannelID, Title: item.Snippet.ChannelTitle})
	}
	return results, nil
}
