package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/MusikAnimal/event-streams/internal/feed"
	"github.com/MusikAnimal/event-streams/internal/models"
	"github.com/MusikAnimal/event-streams/internal/stream"
	"github.com/MusikAnimal/event-streams/internal/ui"
)

const defaultLogFile = "event-streams.log"

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	streamFlag := flag.String("stream", "", "SSE stream URL (default: Wikimedia recentchange)")
	limitFlag := flag.Int("limit", 0, "Display limit, 1-5000 (default 20)")
	intervalFlag := flag.Int("interval", 1000, "Meter sampling interval in milliseconds")
	notifyFlag := flag.String("notify", "", "Notification mode: none, sound or system")
	debugFlag := flag.Bool("debug", false, "Write debug logs to "+defaultLogFile)
	noSplashFlag := flag.Bool("no-splash", false, "Skip the startup banner")
	flag.Parse()

	streamURL := *streamFlag
	if streamURL == "" {
		streamURL = os.Getenv("EVENT_STREAMS_URL")
	}

	debug := *debugFlag || os.Getenv("EVENT_STREAMS_DEBUG") != ""
	logger, closeLog, err := newLogger(debug)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to open log file: %v", err))
		os.Exit(1)
	}
	defer closeLog()

	notifyValue := *notifyFlag
	if notifyValue == "" {
		notifyValue = os.Getenv("EVENT_STREAMS_NOTIFY")
	}
	notifyMode, err := feed.ParseNotifyMode(notifyValue)
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	if !*noSplashFlag {
		ui.ShowSplash()
	}

	opts := ui.Options{
		Filter: models.FilterConfig{Limit: *limitFlag},
		Notify: notifyMode,
	}
	interval := time.Duration(*intervalFlag) * time.Millisecond

	// Main loop: options form, then the live feed; "o" in the feed view
	// comes back here to adjust filters between connections.
	for {
		opts, err = ui.RunOptionsForm(opts)
		if err != nil {
			if err == huh.ErrUserAborted {
				return
			}
			ui.PrintError(fmt.Sprintf("Options form failed: %v", err))
			os.Exit(1)
		}

		client := stream.NewClient(streamURL, logger)
		notifier := feed.NewNotifier(opts.Notify, logger)
		controller := feed.NewController(client, notifier, models.DefaultValidValues(), interval, logger)

		result, err := ui.RunFeed(controller, opts, logger)
		if err != nil {
			ui.PrintError(fmt.Sprintf("Feed view failed: %v", err))
			os.Exit(1)
		}
		if !result.ReopenOptions {
			return
		}
	}
}

// newLogger builds the app logger. The TUI owns the terminal, so debug
// output goes to a file; without --debug everything is discarded.
func newLogger(debug bool) (*log.Logger, func(), error) {
	if !debug {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(defaultLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
