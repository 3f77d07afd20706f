package feed

import (
	"net/netip"
	"regexp"
	"slices"
	"strings"

	"github.com/MusikAnimal/event-streams/internal/models"
)

// ShouldShow decides whether an event passes the filter configuration.
// Pure: no I/O, no state, same inputs always give the same answer. The
// overall result is the AND of every per-field check, so evaluation order
// does not matter.
func ShouldShow(ev models.Event, cfg models.FilterConfig, valid models.ValidValues) bool {
	if !matchCategorical(ev.Type, cfg.Types, valid.Types) {
		return false
	}
	if !matchCategorical(ev.NamespaceString(), cfg.Namespaces, valid.Namespaces) {
		return false
	}
	if !matchCategorical(ev.LogType, cfg.LogTypes, valid.LogTypes) {
		return false
	}
	if !matchCategorical(ev.LogAction, cfg.LogActions, nil) {
		return false
	}
	if cfg.Title != "" && ev.Title != cfg.Title {
		return false
	}
	if cfg.ServerName != "" && !MatchServerName(cfg.ServerName, ev.ServerName) {
		return false
	}
	if !matchUserClass(cfg.User, ev) {
		return false
	}
	if !cfg.Minor.Matches(ev.Minor) {
		return false
	}
	if !cfg.Patrolled.Matches(ev.Patrolled) {
		return false
	}
	return true
}

// matchCategorical implements the multi-value selection check. An absent
// event value (empty string) never violates a filter. The "other" sentinel
// in the selection matches any value outside the field's valid set.
func matchCategorical(value string, selected, valid []string) bool {
	if len(selected) == 0 || value == "" {
		return true
	}
	if slices.Contains(selected, value) {
		return true
	}
	return slices.Contains(selected, models.Other) && !slices.Contains(valid, value)
}

// MatchServerName matches a hostname against the project filter. Without a
// wildcard the comparison is exact. Each * is greedy over one or more
// hostname characters; literal dots stay literal, so *.wikipedia.org does
// not match en.wiktionary.org.
func MatchServerName(pattern, name string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == name
	}
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	re, err := regexp.Compile("^" + strings.Join(parts, `[a-z0-9.-]+`) + "$")
	if err != nil {
		return false
	}
	return re.MatchString(name)
}

// IsIPUser reports whether a username is IP-shaped: an IPv4 dotted quad or
// an IPv6 colon-hex address, which is how anonymous editors appear.
func IsIPUser(name string) bool {
	// MediaWiki upper-cases IPv6 usernames; ParseAddr accepts either case.
	addr, err := netip.ParseAddr(name)
	return err == nil && (addr.Is4() || addr.Is6())
}

func matchUserClass(class models.UserClass, ev models.Event) bool {
	switch class {
	case models.UserIP:
		return IsIPUser(ev.User)
	case models.UserNonBot:
		return !ev.Bot
	case models.UserNonBotAccount:
		return !ev.Bot && !IsIPUser(ev.User)
	case models.UserBot:
		return ev.Bot
	}
	return true
}
