package sources

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"sitch/internal/domain/entity"
	"sitch/internal/usecase/check"
)

// maxAlbumPages caps how many album pages are fetched per artist, to keep
// the request count per check reasonable.
const maxAlbumPages = 10

// Bandcamp checks followed artists for new albums. Bandcamp retired its
// general purpose API, so this checker scrapes the artist's public page
// and the album pages linked from it.
type Bandcamp struct {
	client  *http.Client
	artists []*entity.Artist
}

// NewBandcamp creates a Bandcamp checker over the followed artists.
func NewBandcamp(client *http.Client, artists []*entity.Artist) *Bandcamp {
	return &Bandcamp{client: client, artists: artists}
}

// Platform returns the display name of the platform.
func (b *Bandcamp) Platform() string { return "Bandcamp" }

// CheckAll checks every followed artist concurrently.
func (b *Bandcamp) CheckAll(ctx context.Context, global *time.Time) []check.ItemResult {
	group := check.NewGroup(b.Platform())
	for _, artist := range b.artists {
		artist := artist
		group.Add(&artist.Item, func(ctx context.Context, since *time.Time) ([]entity.Update, error) {
			return b.fetch(ctx, artist.PageURL, since)
		})
	}
	return group.CheckAll(ctx, global)
}

// fetch scrapes an artist page for album links, then the linked album
// pages for release dates. Album pages are fetched concurrently; the
// first page that fails fails the whole artist check.
func (b *Bandcamp) fetch(ctx context.Context, pageURL string, since *time.Time) ([]entity.Update, error) {
	doc, err := getDocument(ctx, b.client, pageURL, "artist")
	if err != nil {
		return nil, err
	}

	links := albumLinks(doc, pageURL)

	albums := make([]*entity.Update, len(links))
	g, gctx := errgroup.WithContext(ctx)
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			update, err := b.fetchAlbum(gctx, link, since)
			if err != nil {
				return err
			}
			albums[i] = update
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var updates []entity.Update
	for _, album := range albums {
		if album != nil {
			updates = append(updates, *album)
		}
	}
	return updates, nil
}

// fetchAlbum scrapes one album page, returning nil when the album wasn't
// released strictly after since. A page without a publish date is a
// missing-field failure.
func (b *Bandcamp) fetchAlbum(ctx context.Context, link string, since *time.Time) (*entity.Update, error) {
	doc, err := getDocument(ctx, b.client, link, "album")
	if err != nil {
		return nil, err
	}

	dateAttr, ok := doc.Find(`meta[itemprop=datePublished]`).First().Attr("content")
	if !ok {
		return nil, entity.MissingField("No published date on album at %s", link)
	}
	published, err := time.ParseInLocation("20060102", dateAttr, time.Local)
	if err != nil {
		return nil, entity.MissingField("No published date on album at %s", link)
	}
	if !publishedAfter(since, published) {
		return nil, nil
	}

	albumName := strings.TrimSpace(doc.Find(".trackTitle").First().Text())
	if albumName == "" {
		albumName = "<no album name>"
	}
	artistName := strings.TrimSpace(doc.Find(`[itemprop=byArtist] a`).First().Text())
	if artistName == "" {
		artistName = "<no artist>"
	}

	return &entity.Update{
		Title:       albumName + " by " + artistName,
		Link:        link,
		PublishedAt: published,
	}, nil
}

// albumLinks extracts album links from an artist page, trying the grid
// page layout first and the older discography layout second. Links are
// resolved against the artist page URL and capped at maxAlbumPages.
func albumLinks(doc *goquery.Document, pageURL string) []string {
	links := collectLinks(doc, "li.music-grid-item a[href]", pageURL)
	if len(links) == 0 {
		links = collectLinks(doc, "#discography .trackTitle a[href]", pageURL)
	}
	return links
}

func collectLinks(doc *goquery.Document, selector, pageURL string) []string {
	var links []string
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if href, ok := sel.Attr("href"); ok {
			links = append(links, resolveURL(pageURL, href))
		}
		return len(links) < maxAlbumPages
	})
	return links
}
