package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/MusikAnimal/event-streams/internal/feed"
	"github.com/MusikAnimal/event-streams/internal/models"
)

// Options is everything the options form gathers: the filter configuration
// handed to the controller and the notification preference.
type Options struct {
	Filter models.FilterConfig
	Notify feed.NotifyMode
}

// RunOptionsForm shows the filter options form and returns the selections.
// The form owns all the raw-input handling; the core only ever sees the
// finished FilterConfig value. Returns huh.ErrUserAborted when cancelled.
func RunOptionsForm(defaults Options) (Options, error) {
	types := slices.Clone(defaults.Filter.Types)
	namespaces := slices.Clone(defaults.Filter.Namespaces)
	logTypes := slices.Clone(defaults.Filter.LogTypes)
	logAction := strings.Join(defaults.Filter.LogActions, ",")
	title := defaults.Filter.Title
	project := defaults.Filter.ServerName
	user := defaults.Filter.User
	minor := defaults.Filter.Minor
	patrolled := defaults.Filter.Patrolled
	limit := ""
	if defaults.Filter.Limit != 0 {
		limit = strconv.Itoa(defaults.Filter.Limit)
	}
	notify := defaults.Notify

	typeOptions := huh.NewOptions(append(slices.Clone(models.EventTypes), models.Other)...)

	nsOptions := make([]huh.Option[string], 0, len(models.NamespaceOptions)+1)
	for _, ns := range models.NamespaceOptions {
		nsOptions = append(nsOptions, huh.NewOption(fmt.Sprintf("%s (%s)", ns.Name, ns.Value), ns.Value))
	}
	nsOptions = append(nsOptions, huh.NewOption("Other", models.Other))

	logTypeOptions := huh.NewOptions(append(slices.Clone(models.LogTypes), models.Other)...)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Event types").
				Description("Leave empty to show every type").
				Options(typeOptions...).
				Value(&types),
			huh.NewMultiSelect[string]().
				Title("Namespaces").
				Description("Leave empty to show every namespace").
				Options(nsOptions...).
				Value(&namespaces),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Log types").
				Description("Only applies to log events").
				Options(logTypeOptions...).
				Value(&logTypes),
			huh.NewInput().
				Title("Log actions").
				Description("Comma-separated, empty for all").
				Placeholder("create, overwrite").
				Value(&logAction),
		).WithHideFunc(func() bool {
			return !slices.Contains(types, "log") && len(types) > 0
		}),
		huh.NewGroup(
			huh.NewInput().
				Title("Project").
				Description("Hostname, * allowed (e.g. *.wikipedia.org)").
				Placeholder("en.wikipedia.org").
				Value(&project),
			huh.NewInput().
				Title("Page title").
				Description("Exact match, empty for all").
				Value(&title),
			huh.NewSelect[models.UserClass]().
				Title("Users").
				Options(
					huh.NewOption("Any", models.UserAny),
					huh.NewOption("IPs only", models.UserIP),
					huh.NewOption("No bots", models.UserNonBot),
					huh.NewOption("No bots or IPs", models.UserNonBotAccount),
					huh.NewOption("Bots only", models.UserBot),
				).
				Value(&user),
		),
		huh.NewGroup(
			huh.NewSelect[models.TriState]().
				Title("Minor edits").
				Options(
					huh.NewOption("All", models.TriAll),
					huh.NewOption("Only minor", models.TriTrue),
					huh.NewOption("No minor", models.TriFalse),
				).
				Value(&minor),
			huh.NewSelect[models.TriState]().
				Title("Patrolled").
				Options(
					huh.NewOption("All", models.TriAll),
					huh.NewOption("Only patrolled", models.TriTrue),
					huh.NewOption("Only unpatrolled", models.TriFalse),
				).
				Value(&patrolled),
			huh.NewInput().
				Title("Display limit").
				Description(fmt.Sprintf("Rows kept on screen, %d-%d (default %d)",
					models.MinLimit, models.MaxLimit, models.DefaultLimit)).
				Validate(validateLimit).
				Value(&limit),
			huh.NewSelect[feed.NotifyMode]().
				Title("Notifications").
				Options(
					huh.NewOption("None", feed.NotifyNone),
					huh.NewOption("Sound", feed.NotifySound),
					huh.NewOption("System", feed.NotifySystem),
				).
				Value(&notify),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return defaults, err
	}

	limitValue := 0
	if strings.TrimSpace(limit) != "" {
		limitValue, _ = strconv.Atoi(strings.TrimSpace(limit))
	}

	return Options{
		Filter: models.FilterConfig{
			Types:      types,
			Namespaces: namespaces,
			LogTypes:   logTypes,
			LogActions: splitList(logAction),
			Title:      strings.TrimSpace(title),
			ServerName: strings.TrimSpace(project),
			User:       user,
			Minor:      minor,
			Patrolled:  patrolled,
			Limit:      models.ClampLimit(limitValue),
		},
		Notify: notify,
	}, nil
}

func validateLimit(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < models.MinLimit || n > models.MaxLimit {
		return fmt.Errorf("must be between %d and %d", models.MinLimit, models.MaxLimit)
	}
	return nil
}

// splitList turns a comma-separated input into a cleaned slice.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
