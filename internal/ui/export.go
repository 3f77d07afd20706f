package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MusikAnimal/event-streams/internal/feed"
)

// ExportFeedSnapshot writes the currently buffered events to a timestamped
// markdown file and returns the filename. This is a snapshot of what is on
// screen, nothing more; the feed itself stays memory-resident.
func ExportFeedSnapshot(snap feed.Snapshot) (string, error) {
	filename := fmt.Sprintf("feed-%s.md", time.Now().Format("2006-01-02-150405"))

	var sb strings.Builder
	sb.WriteString("# EventStreams feed snapshot\n\n")
	sb.WriteString(fmt.Sprintf("**Captured:** %s\n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("**Events shown:** %d\n", len(snap.Records)))
	sb.WriteString(fmt.Sprintf("**Events matched:** %d\n\n", snap.Total))

	sb.WriteString("| Time (UTC) | Type | Flags | Wiki | User | Title | Summary |\n")
	sb.WriteString("|------------|------|-------|------|------|-------|--------|\n")

	for _, rec := range snap.Records {
		user := escapeCell(rec.User)
		if rec.UserURL != "" {
			user = fmt.Sprintf("[%s](%s)", user, rec.UserURL)
		}
		title := escapeCell(rec.Title)
		if rec.TitleURL != "" {
			title = fmt.Sprintf("[%s](%s)", title, rec.TitleURL)
		}
		timeCell := rec.Time
		if rec.EventURL != "" {
			timeCell = fmt.Sprintf("[%s](%s)", timeCell, rec.EventURL)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			timeCell, rec.Type, rec.Flags, rec.Wiki, user, title, escapeCell(rec.Summary)))
	}

	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	return filename, nil
}

// escapeCell keeps pipes and newlines from breaking the markdown table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
