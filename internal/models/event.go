package models

import (
	"encoding/json"
	"strconv"
)

// Event is one record from the mediawiki.recentchange stream.
// Only the fields the filter and renderer consume are mapped; everything
// else in the payload is ignored on decode.
type Event struct {
	Type          string    `json:"type"`
	Namespace     *int      `json:"namespace"`
	LogType       string    `json:"log_type"`
	LogAction     string    `json:"log_action"`
	LogID         int64     `json:"log_id"`
	LogParams     LogParams `json:"log_params"`
	Title         string    `json:"title"`
	User          string    `json:"user"`
	Bot           bool      `json:"bot"`
	Minor         bool      `json:"minor"`
	Patrolled     bool      `json:"patrolled"`
	Timestamp     int64     `json:"timestamp"`
	Comment       string    `json:"comment"`
	ParsedComment string    `json:"parsedcomment"`
	ServerName    string    `json:"server_name"`
	ServerURL     string    `json:"server_url"`
	Revision      *Revision `json:"revision"`
	Meta          Meta      `json:"meta"`
}

// Revision holds the old/new revision IDs of an edit event.
type Revision struct {
	Old int64 `json:"old"`
	New int64 `json:"new"`
}

// Meta is the event envelope metadata.
type Meta struct {
	URI    string `json:"uri"`
	ID     string `json:"id"`
	Domain string `json:"domain"`
}

// LogParams carries the per-log-type parameters. The stream is not
// consistent here: most log types send an object, a few send an array or a
// bare string. We only care about the abuse filter log ID, so anything that
// isn't an object decodes to the zero value rather than failing the event.
type LogParams struct {
	Log int64 `json:"log"`
}

func (p *LogParams) UnmarshalJSON(data []byte) error {
	type params LogParams
	var obj params
	if err := json.Unmarshal(data, &obj); err != nil {
		*p = LogParams{}
		return nil
	}
	*p = LogParams(obj)
	return nil
}

// NamespaceString returns the event's namespace as the string form the
// filter compares against, or "" when the field was absent.
func (e Event) NamespaceString() string {
	if e.Namespace == nil {
		return ""
	}
	return strconv.Itoa(*e.Namespace)
}
