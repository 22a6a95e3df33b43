package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sitch/internal/domain/entity"
	"sitch/internal/usecase/check"
)

const defaultJikanBaseURL = "https://api.jikan.moe/v3"

// Anime checks followed anime for newly aired episodes through the Jikan
// API.
type Anime struct {
	client  *http.Client
	list    []*entity.Anime
	baseURL string
}

// NewAnime creates an Anime checker over the followed anime.
func NewAnime(client *http.Client, list []*entity.Anime) *Anime {
	return &Anime{client: client, list: list, baseURL: defaultJikanBaseURL}
}

// Platform returns the display name of the platform.
func (a *Anime) Platform() string { return "Anime" }

// CheckAll checks every followed anime concurrently.
func (a *Anime) CheckAll(ctx context.Context, global *time.Time) []check.ItemResult {
	group := check.NewGroup(a.Platform())
	for _, anime := range a.list {
		anime := anime
		group.Add(&anime.Item, func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
			return a.fetch(ctx, anime.ID, since)
		})
	}
	return group.CheckAll(ctx, global)
}

// fetch lists an anime's episodes aired strictly after since. Episodes
// missing an air date, number, title or link are skipped.
func (a *Anime) fetch(ctx context.Context, id string, since *time.Time) ([]entity.Update, error) {
	var payload struct {
		Episodes *[]struct {
			Aired     string  `json:"aired"`
			EpisodeID *int64  `json:"episode_id"`
			Title     *string `json:"title"`
			VideoURL  *string `json:"video_url"`
		} `json:"episodes"`
	}
	endpoint := fmt.Sprintf("%s/anime/%s/episodes/1", a.baseURL, url.PathEscape(id))
	if err := getJSON(ctx, a.client, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	if payload.Episodes == nil {
		return nil, entity.MalformedResponse("Could not find episodes in received JSON")
	}

	var updates []entity.Update
	for _, episode := range *payload.Episodes {
		aired, err := time.Parse(time.RFC3339, episode.Aired)
		if err != nil {
			continue
		}
		if !publishedAfter(since, aired) {
			continue
		}
		if episode.EpisodeID == nil || episode.Title == nil || episode.VideoURL == nil {
			continue
		}

		updates = append(updates, entity.Update{
			Title:       fmt.Sprintf("Episode %d - %s", *episode.EpisodeID, *episode.Title),
			Link:        *episode.VideoURL,
			PublishedAt: aired.Local(),
		})
	}
	return updates, nil
}

// Search queries the Jikan search endpoint for anime matching the query.
func (a *Anime) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{
		"q":     {strings.ToLower(query)},
		"limit": {fmt.Sprint(searchResultLimit)},
	}

	var payload struct {
		Results *[]struct {
			MalID *int64  `json:"mal_id"`
			Title *string `json:"title"`
		} `json:"results"`
	}
	if err := getJSON(ctx, a.client, a.baseURL+"/search/anime", params, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return nil, entity.MalformedResponse("Couldn't parse results as JSON array")
	}

	results := make([]SearchResult, 0, len(*payload.Results))
	for _, result := range *payload.Results {
		if result.MalID == nil {
			return nil, entity.MissingField("No id found in search result")
		}
		if result.Title == nil {
			return nil, entity.MissingField("No title found for search result")
		}
		results = append(results, SearchResult{ID: strconv.FormatInt(*result.MalID, 10), Title: *result.Title})
	}
	return results, nil
}
