package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortUpdates_Ascending(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.Local)
	}

	updates := []Update{
		{Title: "third", Link: "https://example.com/3", PublishedAt: day(9)},
		{Title: "first", Link: "https://example.com/1", PublishedAt: day(2)},
		{Title: "second", Link: "https://example.com/2", PublishedAt: day(5)},
	}

	SortUpdates(updates)

	assert.Equal(t, "first", updates[0].Title)
	assert.Equal(t, "second", updates[1].Title)
	assert.Equal(t, "third", updates[2].Title)
}

func TestSortUpdates_StableForEqualTimes(t *testing.T) {
	when := time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local)

	updates := []Update{
		{Title: "a", PublishedAt: when},
		{Title: "b", PublishedAt: when},
		{Title: "c", PublishedAt: when},
	}

	SortUpdates(updates)

	assert.Equal(t, "a", updates[0].Title)
	assert.Equal(t, "b", updates[1].Title)
	assert.Equal(t, "c", updates[2].Title)
}

func TestSortUpdates_EmptyAndSingle(t *testing.T) {
	assert.NotPanics(t, func() { SortUpdates(nil) })

	one := []Update{{Title: "only", PublishedAt: time.Now()}}
	SortUpdates(one)
	assert.Equal(t, "only", one[0].Title)
}
