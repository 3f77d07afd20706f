package feed

import (
	"testing"

	"github.com/MusikAnimal/event-streams/internal/models"
)

func intPtr(n int) *int { return &n }

func editEvent() models.Event {
	return models.Event{
		Type:       "edit",
		Namespace:  intPtr(0),
		Title:      "Main Page",
		User:       "ExampleEditor",
		ServerName: "en.wikipedia.org",
		Timestamp:  1700000000,
	}
}

// TestShouldShowCategorical covers selection membership and the "other"
// sentinel against the valid-value sets.
func TestShouldShowCategorical(t *testing.T) {
	valid := models.ValidValues{Types: []string{"edit", "new"}}

	tests := []struct {
		name string
		typ  string
		cfg  models.FilterConfig
		want bool
	}{
		{"no selection passes everything", "edit", models.FilterConfig{}, true},
		{"member passes", "edit", models.FilterConfig{Types: []string{"edit"}}, true},
		{"non-member fails", "log", models.FilterConfig{Types: []string{"edit"}}, false},
		{"other matches unknown value", "categorize", models.FilterConfig{Types: []string{"other"}}, true},
		{"other rejects known value", "edit", models.FilterConfig{Types: []string{"other"}}, false},
		{"other alongside member", "edit", models.FilterConfig{Types: []string{"edit", "other"}}, true},
		{"absent value cannot violate", "", models.FilterConfig{Types: []string{"edit"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := editEvent()
			ev.Type = tt.typ
			if got := ShouldShow(ev, tt.cfg, valid); got != tt.want {
				t.Errorf("ShouldShow(type=%q, %v) = %v, want %v", tt.typ, tt.cfg.Types, got, tt.want)
			}
		})
	}
}

func TestShouldShowNamespace(t *testing.T) {
	valid := models.DefaultValidValues()
	cfg := models.FilterConfig{Namespaces: []string{"0", "1"}}

	ev := editEvent()
	ev.Namespace = intPtr(1)
	if !ShouldShow(ev, cfg, valid) {
		t.Error("namespace 1 should pass selection {0,1}")
	}

	ev.Namespace = intPtr(6)
	if ShouldShow(ev, cfg, valid) {
		t.Error("namespace 6 should fail selection {0,1}")
	}

	// Absent namespace cannot violate the filter.
	ev.Namespace = nil
	if !ShouldShow(ev, cfg, valid) {
		t.Error("absent namespace should pass")
	}
}

func TestShouldShowTitle(t *testing.T) {
	valid := models.DefaultValidValues()
	cfg := models.FilterConfig{Title: "Main Page"}

	ev := editEvent()
	if !ShouldShow(ev, cfg, valid) {
		t.Error("exact title should pass")
	}

	// No normalization: case and whitespace are significant.
	ev.Title = "main page"
	if ShouldShow(ev, cfg, valid) {
		t.Error("title match must be exact")
	}
}

func TestMatchServerName(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"en.wikipedia.org", "en.wikipedia.org", true},
		{"en.wikipedia.org", "fr.wikipedia.org", false},
		{"*.wikipedia.org", "en.wikipedia.org", true},
		{"*.wikipedia.org", "fr.wikipedia.org", true},
		// The dot is literal, so a different project must not match.
		{"*.wikipedia.org", "en.wiktionary.org", false},
		{"*.wikipedia.org", "wikipedia.org", false},
		{"en.*.org", "en.wikipedia.org", true},
		{"*", "commons.wikimedia.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			if got := MatchServerName(tt.pattern, tt.name); got != tt.want {
				t.Errorf("MatchServerName(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
			}
		})
	}
}

func TestUserClassFilter(t *testing.T) {
	valid := models.DefaultValidValues()

	tests := []struct {
		name  string
		class models.UserClass
		user  string
		bot   bool
		want  bool
	}{
		{"any passes bot", models.UserAny, "SomeBot", true, true},
		{"ip matches dotted quad", models.UserIP, "198.51.100.7", false, true},
		{"ip matches colon hex", models.UserIP, "2001:DB8:0:0:0:0:0:1", false, true},
		{"ip rejects account", models.UserIP, "ExampleEditor", false, false},
		{"non_bot rejects bot", models.UserNonBot, "SomeBot", true, false},
		{"non_bot passes ip", models.UserNonBot, "198.51.100.7", false, true},
		{"non_bot_account rejects bot", models.UserNonBotAccount, "SomeBot", true, false},
		{"non_bot_account rejects ip", models.UserNonBotAccount, "198.51.100.7", false, false},
		{"non_bot_account passes account", models.UserNonBotAccount, "ExampleEditor", false, true},
		{"bot rejects human", models.UserBot, "ExampleEditor", false, false},
		{"bot passes bot", models.UserBot, "SomeBot", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := editEvent()
			ev.User = tt.user
			ev.Bot = tt.bot
			cfg := models.FilterConfig{User: tt.class}
			if got := ShouldShow(ev, cfg, valid); got != tt.want {
				t.Errorf("user=%q bot=%v class=%v: got %v, want %v", tt.user, tt.bot, tt.class, got, tt.want)
			}
		})
	}
}

func TestTriStateFlags(t *testing.T) {
	valid := models.DefaultValidValues()

	tests := []struct {
		name      string
		cfg       models.FilterConfig
		minor     bool
		patrolled bool
		want      bool
	}{
		{"all passes either", models.FilterConfig{}, true, false, true},
		{"minor required", models.FilterConfig{Minor: models.TriTrue}, true, false, true},
		{"minor required fails", models.FilterConfig{Minor: models.TriTrue}, false, false, false},
		{"minor excluded", models.FilterConfig{Minor: models.TriFalse}, false, false, true},
		{"patrolled required fails on absent", models.FilterConfig{Patrolled: models.TriTrue}, false, false, false},
		// Absence of patrolled is treated as not patrolled.
		{"unpatrolled passes absent", models.FilterConfig{Patrolled: models.TriFalse}, false, false, true},
		{"unpatrolled rejects patrolled", models.FilterConfig{Patrolled: models.TriFalse}, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := editEvent()
			ev.Minor = tt.minor
			ev.Patrolled = tt.patrolled
			if got := ShouldShow(ev, tt.cfg, valid); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// TestShouldShowDeterministic re-evaluates the same inputs and expects the
// same answer; the predicate must be pure.
func TestShouldShowDeterministic(t *testing.T) {
	valid := models.DefaultValidValues()
	cfg := models.FilterConfig{
		Types:      []string{"edit", "other"},
		ServerName: "*.wikipedia.org",
		User:       models.UserNonBotAccount,
	}
	ev := editEvent()

	first := ShouldShow(ev, cfg, valid)
	for i := 0; i < 100; i++ {
		if got := ShouldShow(ev, cfg, valid); got != first {
			t.Fatalf("iteration %d: result changed from %v to %v", i, first, got)
		}
	}
}

func TestShouldShowAllFieldsAnd(t *testing.T) {
	valid := models.DefaultValidValues()
	cfg := models.FilterConfig{
		Types:      []string{"edit"},
		ServerName: "*.wikipedia.org",
		User:       models.UserNonBot,
	}

	ev := editEvent()
	if !ShouldShow(ev, cfg, valid) {
		t.Fatal("baseline event should pass")
	}

	// Any single failing field rejects the whole event.
	bad := ev
	bad.Bot = true
	if ShouldShow(bad, cfg, valid) {
		t.Error("bot flag should reject under non_bot")
	}

	bad = ev
	bad.ServerName = "en.wiktionary.org"
	if ShouldShow(bad, cfg, valid) {
		t.Error("wrong project should reject")
	}
}
