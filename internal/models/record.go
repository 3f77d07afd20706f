package models

// DisplayRecord is the rendered projection of one accepted event. Records
// are immutable once built; the feed buffer owns them until eviction.
type DisplayRecord struct {
	Time        string // "2006-01-02 15:04:05" in UTC
	Type        string
	Flags       string // glyphs for bot / minor / unpatrolled
	Wiki        string // server_name without the ".org" suffix
	User        string
	UserURL     string
	Title       string
	TitleURL    string
	Summary     string // plain-text edit summary
	SummaryHTML string // parsedcomment with absolute links, new-context anchors
	EventURL    string // diff or log entry URL, "" when the type has none
}
