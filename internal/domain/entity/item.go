// Package entity defines the followed sources, the updates found on
// them and the checkpoint rules that decide what counts as new.
package entity

import "time"

// Item holds the fields every followed source shares: the user's name for
// it and the last time sitch found an update for it. A nil LastChecked
// means the item has never been checked.
type Item struct {
	Name        string     `json:"name"`
	LastChecked *time.Time `json:"last_checked,omitempty"`
}

// FeedSource is a followed RSS/Atom feed.
type FeedSource struct {
	Item
	FeedURL string `json:"feed"`
}

// Validate checks that the feed has a name and a usable feed URL.
func (f *FeedSource) Validate() error {
	if f.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return ValidateURL("feed", f.FeedURL)
}

// Channel is a followed YouTube channel, identified by the channel ID
// found in the channel page URL.
type Channel struct {
	Item
	ChannelID string `json:"channel_id"`
}

// Validate checks that the channel has a name and a channel ID.
func (c *Channel) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if c.ChannelID == "" {
		return &ValidationError{Field: "channel_id", Message: "channel_id is required"}
	}
	return nil
}

// Anime is a followed anime, identified by its myanimelist.net ID.
type Anime struct {
	Item
	ID string `json:"id"`
}

// Validate checks that the anime has a name and an ID.
func (a *Anime) Validate() error {
	if a.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if a.ID == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	return nil
}

// Manga is a followed manga, identified by its mangaeden.com ID.
type Manga struct {
	Item
	ID string `json:"id"`
}

// Validate checks that the manga has a name and an ID.
func (m *Manga) Validate() error {
	if m.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if m.ID == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	return nil
}

// Artist is a followed Bandcamp artist, identified by the artist page URL.
type Artist struct {
	Item
	PageURL string `json:"url"`
}

// Validate checks that the artist has a name and a usable page URL.
func (a *Artist) Validate() error {
	if a.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return ValidateURL("url", a.PageURL)
}
