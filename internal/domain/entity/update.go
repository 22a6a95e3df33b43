package entity

import (
	"sort"
	"time"
)

// Update represents a single piece of new content found on a followed
// source: a feed entry, video, episode, chapter or album.
type Update struct {
	Title       string
	Link        string
	PublishedAt time.Time
}

// SortUpdates orders updates ascending by publish time so that index 0
// always holds the earliest update. Platform APIs do not agree on result
// order, so the check engine applies this after every fetch.
func SortUpdates(updates []Update) {
	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].PublishedAt.Before(updates[j].PublishedAt)
	})
}
