package models

// ValidValues holds, per categorical filter, the closed set of values the
// options form offers. The "other" sentinel is defined as any event value
// outside these sets, so the sets must exclude it.
type ValidValues struct {
	Types      []string
	LogTypes   []string
	Namespaces []string
}

// NamespaceOption pairs a namespace number (as the stream sends it) with
// its human name for the form.
type NamespaceOption struct {
	Value string
	Name  string
}

// EventTypes are the recentchange event types offered by the form.
var EventTypes = []string{"edit", "new", "log", "categorize"}

// LogTypes are the log types offered by the form.
var LogTypes = []string{
	"abusefilter",
	"block",
	"delete",
	"move",
	"newusers",
	"patrol",
	"protect",
	"review",
	"rights",
	"thanks",
	"upload",
}

// NamespaceOptions are the core MediaWiki namespaces offered by the form.
var NamespaceOptions = []NamespaceOption{
	{"0", "Article"},
	{"1", "Talk"},
	{"2", "User"},
	{"3", "User talk"},
	{"4", "Project"},
	{"5", "Project talk"},
	{"6", "File"},
	{"7", "File talk"},
	{"8", "MediaWiki"},
	{"9", "MediaWiki talk"},
	{"10", "Template"},
	{"11", "Template talk"},
	{"12", "Help"},
	{"13", "Help talk"},
	{"14", "Category"},
	{"15", "Category talk"},
}

// DefaultValidValues returns the valid-value sets matching the form's
// current option lists.
func DefaultValidValues() ValidValues {
	namespaces := make([]string, len(NamespaceOptions))
	for i, ns := range NamespaceOptions {
		namespaces[i] = ns.Value
	}
	return ValidValues{
		Types:      EventTypes,
		LogTypes:   LogTypes,
		Namespaces: namespaces,
	}
}
