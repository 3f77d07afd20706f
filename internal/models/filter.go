package models

import "fmt"

// Display cap bounds for the feed buffer.
const (
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 5000
)

// Other is the sentinel selection meaning "any value outside the known set"
// for the categorical filters.
const Other = "other"

// UserClass narrows events by the kind of account that made them.
type UserClass int

const (
	UserAny UserClass = iota
	UserIP
	UserNonBot
	UserNonBotAccount
	UserBot
)

var userClassNames = map[UserClass]string{
	UserAny:           "any",
	UserIP:            "ip",
	UserNonBot:        "non_bot",
	UserNonBotAccount: "non_bot_account",
	UserBot:           "bot",
}

func (u UserClass) String() string {
	if s, ok := userClassNames[u]; ok {
		return s
	}
	return "any"
}

// ParseUserClass maps the form value to a UserClass. Empty means any.
func ParseUserClass(s string) (UserClass, error) {
	switch s {
	case "", "any":
		return UserAny, nil
	case "ip":
		return UserIP, nil
	case "non_bot":
		return UserNonBot, nil
	case "non_bot_account":
		return UserNonBotAccount, nil
	case "bot":
		return UserBot, nil
	}
	return UserAny, fmt.Errorf("unknown user class %q", s)
}

// TriState is the three-way setting for the boolean event flags.
type TriState int

const (
	TriAll TriState = iota
	TriTrue
	TriFalse
)

func (t TriState) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	}
	return "all"
}

// Matches reports whether an event flag value satisfies the setting.
// An absent flag decodes to false, so TriFalse passes absent fields and
// TriTrue requires the flag to be present and set.
func (t TriState) Matches(value bool) bool {
	switch t {
	case TriTrue:
		return value
	case TriFalse:
		return !value
	}
	return true
}

// FilterConfig is the user's inclusion criteria for one connection. It is
// built once from form state, handed to Start, and never mutated while the
// connection lives. Empty slices and zero values mean "no restriction".
type FilterConfig struct {
	Types      []string
	Namespaces []string
	LogTypes   []string
	LogActions []string
	Title      string
	ServerName string // exact hostname, or a pattern with * wildcards
	User       UserClass
	Minor      TriState
	Patrolled  TriState
	Limit      int
}

// ClampLimit forces a display cap into the valid range. Zero (unset) gets
// the default rather than the minimum.
func ClampLimit(n int) int {
	if n == 0 {
		return DefaultLimit
	}
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
