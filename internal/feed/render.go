package feed

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/MusikAnimal/event-streams/internal/models"
)

// Flag glyphs shown in the feed table.
const (
	FlagBot         = "b"
	FlagMinor       = "m"
	FlagUnpatrolled = "!"
)

// Render maps an accepted event to its display record. Everything derives
// from the event itself; wall-clock time is never consulted.
func Render(ev models.Event) models.DisplayRecord {
	return models.DisplayRecord{
		Time:        FormatTimestamp(ev.Timestamp),
		Type:        ev.Type,
		Flags:       flags(ev),
		Wiki:        WikiShortName(ev.ServerName),
		User:        ev.User,
		UserURL:     userURL(ev),
		Title:       ev.Title,
		TitleURL:    ev.Meta.URI,
		Summary:     ev.Comment,
		SummaryHTML: RewriteSummary(ev.ParsedComment, ev.ServerURL),
		EventURL:    EventURL(ev),
	}
}

// FormatTimestamp converts epoch seconds to "2006-01-02 15:04:05" in UTC,
// the ISO timestamp with the T replaced and the zone suffix dropped.
func FormatTimestamp(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("2006-01-02 15:04:05")
}

// WikiShortName is the project hostname without its ".org" suffix.
func WikiShortName(serverName string) string {
	return strings.TrimSuffix(serverName, ".org")
}

// EventURL computes the per-event link: the diff for edits, the abuse log
// entry for abusefilter log events, the log entry for other log events,
// and nothing for everything else.
func EventURL(ev models.Event) string {
	switch ev.Type {
	case "edit":
		if ev.Revision == nil || ev.Revision.New == 0 {
			return ""
		}
		return fmt.Sprintf("%s/wiki/Special:Diff/%d", ev.ServerURL, ev.Revision.New)
	case "log":
		if ev.LogType == "abusefilter" && ev.LogParams.Log != 0 {
			return fmt.Sprintf("%s/wiki/Special:AbuseLog/%d", ev.ServerURL, ev.LogParams.Log)
		}
		if ev.LogID != 0 {
			return fmt.Sprintf("%s/wiki/Special:Redirect/logid/%d", ev.ServerURL, ev.LogID)
		}
	}
	return ""
}

func userURL(ev models.Event) string {
	if ev.User == "" {
		return ""
	}
	name := strings.ReplaceAll(ev.User, " ", "_")
	return ev.ServerURL + "/wiki/User:" + url.PathEscape(name)
}

func flags(ev models.Event) string {
	var b strings.Builder
	if ev.Bot {
		b.WriteString(FlagBot)
	}
	if ev.Minor {
		b.WriteString(FlagMinor)
	}
	if !ev.Patrolled {
		b.WriteString(FlagUnpatrolled)
	}
	return b.String()
}

// RewriteSummary takes the HTML-bearing parsed comment and makes it safe to
// hand to a browser context: wiki-relative hrefs become absolute against
// the event's origin and every anchor opens in a new browsing context. A
// comment that fails to parse, or an empty one, renders as empty.
func RewriteSummary(parsed, serverURL string) string {
	if parsed == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(parsed))
	if err != nil {
		return ""
	}
	body := findBody(doc)
	if body == nil {
		return ""
	}
	var sb strings.Builder
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		rewriteAnchors(n, serverURL)
		if err := html.Render(&sb, n); err != nil {
			return ""
		}
	}
	return sb.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func rewriteAnchors(n *html.Node, serverURL string) {
	if n.Type == html.ElementNode && n.Data == "a" {
		hasTarget := false
		for i, attr := range n.Attr {
			switch attr.Key {
			case "href":
				if strings.HasPrefix(attr.Val, "/") {
					n.Attr[i].Val = serverURL + attr.Val
				}
			case "target":
				n.Attr[i].Val = "_blank"
				hasTarget = true
			}
		}
		if !hasTarget {
			n.Attr = append(n.Attr, html.Attribute{Key: "target", Val: "_blank"})
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteAnchors(c, serverURL)
	}
}
