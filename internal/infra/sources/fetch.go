// Package sources implements the platform checkers: RSS feeds, YouTube
// channels, anime via the Jikan API, manga via the MangaEden API and
// Bandcamp artist pages. Every checker is built on the shared per-item
// fan-out in the check package and classifies its failures with the
// entity error kinds.
package sources

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"sitch/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB

	userAgent = "sitch/1.0"

	// searchResultLimit caps how many hits a platform search returns.
	searchResultLimit = 5
)

// SearchResult is one hit from a platform search: the identity the
// platform knows the source by and its human title.
type SearchResult struct {
	ID    string
	Title string
}

// getJSON fetches endpoint with the given query parameters and decodes
// the JSON response into v. Parameters named in redact are masked in
// error messages so credentials never reach report lines or logs.
func getJSON(ctx context.Context, client *http.Client, endpoint string, params url.Values, v any, redact ...string) error {
	requestURL := endpoint
	if len(params) > 0 {
		requestURL = endpoint + "?" + params.Encode()
	}
	shown := displayURL(endpoint, params, redact)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return entity.NetworkUnavailable("Couldn't access %s", shown)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return entity.NetworkUnavailable("Couldn't access %s", shown)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return entity.NetworkUnavailable("Couldn't access %s: unexpected status: %s", shown, resp.Status)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(v); err != nil {
		return entity.MalformedResponse("Couldn't parse request data as JSON")
	}
	return nil
}

// getDocument fetches pageURL and parses the response body as HTML.
// kind names the page in error messages ("artist", "album").
func getDocument(ctx context.Context, client *http.Client, pageURL, kind string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, entity.NetworkUnavailable("Could not fetch %s page: %v", kind, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, entity.NetworkUnavailable("Could not fetch %s page: %v", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, entity.NetworkUnavailable("Could not fetch %s page: unexpected status: %s", kind, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, entity.MalformedResponse("No html found on %s page", kind)
	}
	return doc, nil
}

// publishedAfter reports whether t falls strictly after since. A nil
// since means there is no lower bound.
func publishedAfter(since *time.Time, t time.Time) bool {
	return since == nil || t.After(*since)
}

// resolveURL resolves href against base, so relative album links on an
// artist page become absolute. An unparseable href falls back to naive
// concatenation.
func resolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return base + href
	}
	hrefURL, err := url.Parse(href)
	if err != nil {
		return base + href
	}
	return baseURL.ResolveReference(hrefURL).String()
}

// displayURL renders the request URL for error messages, masking the
// named query parameters.
func displayURL(endpoint string, params url.Values, redact []string) string {
	if len(params) == 0 {
		return endpoint
	}
	if len(redact) == 0 {
		return endpoint + "?" + params.Encode()
	}

	masked := url.Values{}
	for key, values := range params {
		masked[key] = values
	}
	for _, key := range redact {
		if masked.Has(key) {
			masked.Set(key, "REDACTED")
		}
	}
	return endpoint + "?" + masked.Encode()
}
