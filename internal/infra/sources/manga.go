package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sitch/internal/domain/entity"
	"sitch/internal/usecase/check"
)

const defaultMangaEdenBaseURL = "https://www.mangaeden.com/api"

// Manga checks followed manga for new chapters through the MangaEden API.
type Manga struct {
	client  *http.Client
	list    []*entity.Manga
	baseURL string
}

// NewManga creates a Manga checker over the followed manga.
func NewManga(client *http.Client, list []*entity.Manga) *Manga {
	return &Manga{client: client, list: list, baseURL: defaultMangaEdenBaseURL}
}

// Platform returns the display name of the platform.
func (m *Manga) Platform() string { return "Manga" }

// CheckAll checks every followed manga concurrently.
func (m *Manga) CheckAll(ctx context.Context, global *time.Time) []check.ItemResult {
	group := check.NewGroup(m.Platform())
	for _, manga := range m.list {
		manga := manga
		group.Add(&manga.Item, func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
			return m.fetch(ctx, manga.ID, since)
		})
	}
	return group.CheckAll(ctx, global)
}

// fetch lists a manga's chapters released strictly after since. MangaEden
// encodes each chapter as a positional array:
//
//	[41, 1543389646.0, "A Spiritually Transmitted Cold", "5bfe41ce719a..."]
//
// holding the chapter number, release epoch, title and an id. Rows that
// don't fit that shape are skipped.
func (m *Manga) fetch(ctx context.Context, id string, since *time.Time) ([]entity.Update, error) {
	var payload struct {
		Chapters *[][]any `json:"chapters"`
		URL      string   `json:"url"`
	}
	endpoint := fmt.Sprintf("%s/manga/%s/", m.baseURL, url.PathEscape(id))
	if err := getJSON(ctx, m.client, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	if payload.Chapters == nil {
		return nil, entity.MalformedResponse("Could not find chapters in received JSON")
	}

	var updates []entity.Update
	for _, chapter := range *payload.Chapters {
		if len(chapter) < 3 {
			continue
		}
		number, ok := chapter[0].(float64)
		if !ok {
			continue
		}
		epoch, ok := chapter[1].(float64)
		if !ok {
			continue
		}
		title, ok := chapter[2].(string)
		if !ok {
			continue
		}

		released := time.Unix(int64(epoch), 0)
		if !publishedAfter(since, released) {
			continue
		}

		link := "<no link>"
		if payload.URL != "" {
			link = fmt.Sprintf("%s/%d", payload.URL, int64(number))
		}
		updates = append(updates, entity.Update{
			Title:       fmt.Sprintf("Chapter %d - %s", int64(number), title),
			Link:        link,
			PublishedAt: released,
		})
	}
	return updates, nil
}

// Search filters the MangaEden catalogue for titles containing the query,
// case-insensitively. The API has no search endpoint, so the full list is
// fetched and filtered here.
func (m *Manga) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var payload struct {
		Manga *[]struct {
			ID    string `json:"i"`
			Title string `json:"t"`
		} `json:"manga"`
	}
	if err := getJSON(ctx, m.client, m.baseURL+"/list/0/", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Manga == nil {
		return nil, entity.MalformedResponse("Couldn't parse received manga as JSON array")
	}

	needle := strings.ToLower(query)
	var results []SearchResult
	for _, manga := range *payload.Manga {
		if manga.ID == "" || manga.Title == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(manga.Title), needle) {
			continue
		}
		results = append(results, SearchResult{ID: manga.ID, Title: manga.Title})
		if len(results) == searchResultLimit {
			break
		}
	}
	return results, nil
}
