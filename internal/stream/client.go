// Package stream provides the SSE transport behind the feed controller.
package stream

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/r3labs/sse/v2"
	backoff "gopkg.in/cenkalti/backoff.v1"
)

// DefaultURL is the Wikimedia EventStreams recentchange endpoint.
const DefaultURL = "https://stream.wikimedia.org/v2/stream/recentchange"

const userAgent = "event-streams (https://github.com/MusikAnimal/event-streams)"

// Client subscribes to a server-sent-events endpoint and hands each raw
// message to the controller. Reconnection is deliberately disabled: when
// the stream drops, Subscribe returns and the controller decides what
// happens next.
type Client struct {
	url    string
	logger *log.Logger
}

// NewClient creates a client for the given stream URL. An empty URL means
// the default recentchange endpoint. A nil logger discards output.
func NewClient(url string, logger *log.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{url: url, logger: logger}
}

// Subscribe connects and blocks until the stream ends or ctx is cancelled.
// onOpen fires once the connection is established; onMessage fires once
// per non-empty payload, in arrival order, on a single goroutine.
func (c *Client) Subscribe(ctx context.Context, onOpen func(), onMessage func(data []byte)) error {
	sc := sse.NewClient(c.url)
	sc.Headers["User-Agent"] = userAgent
	sc.Connection = &http.Client{Timeout: 0} // long-lived stream, no deadline
	sc.ReconnectStrategy = &backoff.StopBackOff{}

	sc.OnConnect(func(_ *sse.Client) {
		c.logger.Debug("sse connected", "url", c.url)
		onOpen()
	})
	sc.OnDisconnect(func(_ *sse.Client) {
		c.logger.Debug("sse disconnected", "url", c.url)
	})

	started := time.Now()
	err := sc.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
		if len(msg.Data) == 0 {
			// Keep-alive comment or empty frame.
			return
		}
		onMessage(msg.Data)
	})
	c.logger.Debug("sse subscription ended", "after", time.Since(started), "error", err)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
