package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitch/internal/domain/entity"
)

const artistGridPage = `<html><body>
  <ol>
    <li class="music-grid-item square first-four"><a href="/album/meat-machine-ep"></a></li>
    <li class="music-grid-item"><a href="/album/older-record"></a></li>
  </ol>
</body></html>`

const artistDiscographyPage = `<html><body>
  <div id="discography">
    <div class="trackTitle"><a href="/album/meat-machine-ep">Meat Machine EP</a></div>
  </div>
</body></html>`

func albumPage(date string) string {
	return `<html><body>
  <h2 class="trackTitle"> Meat Machine EP </h2>
  <span itemprop="byArtist"><a href="/">Test Artist</a></span>
  <meta itemprop="datePublished" content="` + date + `">
</body></html>`
}

const albumPageNoDate = `<html><body>
  <h2 class="trackTitle">Meat Machine EP</h2>
</body></html>`

// newBandcampServer serves an artist page at / and album pages from the
// given map of path to body.
func newBandcampServer(t *testing.T, artistPage string, albums map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			_, _ = w.Write([]byte(artistPage))
			return
		}
		if body, ok := albums[r.URL.Path]; ok {
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBandcamp_Fetch_ScrapesGridLayout(t *testing.T) {
	server := newBandcampServer(t, artistGridPage, map[string]string{
		"/album/meat-machine-ep": albumPage("20240426"),
		"/album/older-record":    albumPage("20200101"),
	})
	checker := NewBandcamp(server.Client(), nil)

	since := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	updates, err := checker.fetch(context.Background(), server.URL+"/", &since)

	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "Meat Machine EP by Test Artist", updates[0].Title)
	assert.Equal(t, server.URL+"/album/meat-machine-ep", updates[0].Link)
	assert.Equal(t, time.Date(2024, time.April, 26, 0, 0, 0, 0, time.Local), updates[0].PublishedAt)
}

func TestBandcamp_Fetch_FallsBackToDiscographyLayout(t *testing.T) {
	server := newBandcampServer(t, artistDiscographyPage, map[string]string{
		"/album/meat-machine-ep": albumPage("20240426"),
	})
	checker := NewBandcamp(server.Client(), nil)

	updates, err := checker.fetch(context.Background(), server.URL+"/", nil)

	require.NoError(t, err)
	require.Len(t, updates, 1)
}

func TestBandcamp_Fetch_MissingDateIsMissingField(t *testing.T) {
	server := newBandcampServer(t, artistGridPage, map[string]string{
		"/album/meat-machine-ep": albumPageNoDate,
		"/album/older-record":    albumPage("20200101"),
	})
	checker := NewBandcamp(server.Client(), nil)

	_, err := checker.fetch(context.Background(), server.URL+"/", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrMissingField)
	assert.Equal(t, "No published date on album at "+server.URL+"/album/meat-machine-ep", err.Error())
}

func TestBandcamp_Fetch_AlbumFetchFailureFailsArtist(t *testing.T) {
	server := newBandcampServer(t, artistGridPage, map[string]string{
		"/album/meat-machine-ep": albumPage("20240426"),
		// /album/older-record 404s
	})
	checker := NewBandcamp(server.Client(), nil)

	_, err := checker.fetch(context.Background(), server.URL+"/", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNetworkUnavailable)
	assert.Contains(t, err.Error(), "Could not fetch album page")
}

func TestBandcamp_Fetch_UnreachableArtistPageIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close()

	checker := NewBandcamp(http.DefaultClient, nil)
	_, err := checker.fetch(context.Background(), serverURL, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNetworkUnavailable)
	assert.Contains(t, err.Error(), "Could not fetch artist page")
}

func TestBandcamp_CheckAll_IsolatesArtistFailures(t *testing.T) {
	good := newBandcampServer(t, artistGridPage, map[string]string{
		"/album/meat-machine-ep": albumPage("20240426"),
		"/album/older-record":    albumPage("20200101"),
	})
	bad := httptest.NewServer(http.NotFoundHandler())
	badURL := bad.URL
	bad.Close()

	artists := []*entity.Artist{
		{Item: entity.Item{Name: "good artist"}, PageURL: good.URL + "/"},
		{Item: entity.Item{Name: "bad artist"}, PageURL: badURL},
	}
	checker := NewBandcamp(good.Client(), artists)

	results := checker.CheckAll(context.Background(), nil)

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.True(t, results[0].HasUpdates())
	assert.Error(t, results[1].Err)
}
