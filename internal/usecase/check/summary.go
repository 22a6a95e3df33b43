package check

import (
	"fmt"
	"time"

	"sitch/internal/domain/entity"
)

// Time layouts for human-readable output. The message layout leaves the
// day unpadded, the preamble layout pads it.
const (
	messageTimeLayout  = "January 2, 2006 at 3:04 PM"
	preambleTimeLayout = "January 02, 2006 at 3:04 PM"
)

// Fixed report strings shared by the output modes.
const (
	NoUpdatesMessage = "No updates at this time."
	ErrorsHeader     = "The following errors occurred:"
)

// Summary renders the human message for a non-empty update list sorted
// ascending by publish time. wrapLink, when non-nil, decorates the link
// before it is interpolated (terminal coloring).
//
// One update:
//
//	There has been 1 update, it was "<title>" released on <date>, found here: <link>
//
// Several:
//
//	There have been <N> updates, the earliest was "<title>" released on <date>, found here: <link>
func Summary(updates []entity.Update, wrapLink func(string) string) string {
	earliest := updates[0]

	link := earliest.Link
	if wrapLink != nil {
		link = wrapLink(link)
	}
	released := earliest.PublishedAt.Format(messageTimeLayout)

	if len(updates) == 1 {
		return fmt.Sprintf("There has been 1 update, it was \"%s\" released on %s, found here: %s",
			earliest.Title, released, link)
	}
	return fmt.Sprintf("There have been %d updates, the earliest was \"%s\" released on %s, found here: %s",
		len(updates), earliest.Title, released, link)
}

// Preamble renders the line announcing that updates follow. A nil since
// means the global checkpoint has never been set.
func Preamble(since *time.Time) string {
	if since == nil {
		return "The following sources have updates:"
	}
	return fmt.Sprintf("The following sources have updated since %s:", since.Format(preambleTimeLayout))
}

// ElapsedSuffix renders the elapsed-seconds suffix appended to report
// lines, counting whole seconds and pluralizing when not exactly one.
func ElapsedSuffix(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs == 1 {
		return "[1 second]"
	}
	return fmt.Sprintf("[%d seconds]", secs)
}
