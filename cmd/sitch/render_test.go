package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sitch/internal/domain/entity"
	"sitch/internal/usecase/check"
)

func sampleReport() *check.Report {
	since := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	return &check.Report{
		Since:     &since,
		StartedAt: time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC),
		Results: []check.ItemResult{
			{
				Platform: "RSS",
				Item:     "some blog",
				Updates: []entity.Update{{
					Title:       "a post",
					Link:        "https://example.com/a-post",
					PublishedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
				}},
				Elapsed: 2 * time.Second,
			},
			{
				Platform: "anime",
				Item:     "quiet show",
				Elapsed:  time.Second,
			},
			{
				Platform: "YouTube",
				Item:     "bad channel",
				Err:      errors.New("Couldn't access https://www.googleapis.com/youtube/v3/search"),
				Elapsed:  time.Second,
			},
		},
	}
}

func TestRenderReport(t *testing.T) {
	var stdout, stderr bytes.Buffer
	renderReport(&stdout, &stderr, sampleReport(), false)

	assert.Equal(t,
		"The following sources have updated since March 01, 2024 at 9:00 AM:\n"+
			"RSS - some blog: There has been 1 update, it was \"a post\" released on March 1, 2024 at 12:00 PM, "+
			"found here: https://example.com/a-post [2 seconds]\n",
		stdout.String())
	assert.Equal(t,
		"\nThe following errors occurred:\n"+
			"YouTube - bad channel: Couldn't access https://www.googleapis.com/youtube/v3/search [1 second]\n",
		stderr.String())
}

func TestRenderReport_Quiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	renderReport(&stdout, &stderr, sampleReport(), true)

	assert.Equal(t, "some blog: \"a post\" https://example.com/a-post\n", stdout.String())
	assert.Empty(t, stderr.String(), "quiet mode discards failures")
}

func TestRenderReport_NoUpdates(t *testing.T) {
	var stdout, stderr bytes.Buffer
	report := &check.Report{
		Results: []check.ItemResult{
			{Platform: "manga", Item: "finished series", Elapsed: time.Second},
		},
	}
	renderReport(&stdout, &stderr, report, false)

	assert.Empty(t, stdout.String())
	assert.Equal(t, "No updates at this time.\n", stderr.String())
}

func TestPaint(t *testing.T) {
	assert.Equal(t, "\x1b[32mhi\x1b[0m", paint(true, ansiGreen, "hi"))
	assert.Equal(t, "hi", paint(false, ansiGreen, "hi"))
}

func TestShouldColorize_NonFile(t *testing.T) {
	assert.False(t, shouldColorize(&bytes.Buffer{}))
}
