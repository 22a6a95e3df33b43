// Sitch keeps you updated on what you follow: RSS feeds, YouTube
// channels, anime (myanimelist.net via Jikan), manga (mangaeden.com) and
// Bandcamp artists. Run it with no arguments to see what you've missed;
// it remembers when it last found something.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sitch/internal/observability/logging"
)

func main() {
	slog.SetDefault(logging.NewLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
