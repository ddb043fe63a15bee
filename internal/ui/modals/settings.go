package modals

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/streamchat/internal/layout"
)

// SettingsValues are the user-editable settings shown in the settings modal.
type SettingsValues struct {
	Theme            string
	DockEdge         layout.Edge
	DockSize         int
	DockRange        layout.Range
	ShowActivityFeed bool
	AutoScroll       bool
	Notifications    bool
	TwitchChannel    string
}

const (
	optionActivityFeed  = "activity-feed"
	optionAutoScroll    = "auto-scroll"
	optionNotifications = "notifications"
)

var edgeLabels = map[layout.Edge]string{
	layout.EdgeRight:  "Right",
	layout.EdgeLeft:   "Left",
	layout.EdgeTop:    "Top",
	layout.EdgeBottom: "Bottom",
	layout.EdgeNone:   "Hidden",
}

// SettingsState is the settings modal. The form binds straight to the
// struct's fields; Values reads them back.
type SettingsState struct {
	selectedTheme string
	originalTheme string
	dockEdge      layout.Edge
	dockSize      string
	dockRange     layout.Range
	options       []string
	twitchChannel string

	form           *huh.Form
	availableWidth int
}

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 10
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// ThemeChanged reports whether a different theme was picked.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.originalTheme
}

// SelectedTheme returns the picked theme key.
func (s *SettingsState) SelectedTheme() string {
	return s.selectedTheme
}

// Values returns the edited settings. The dock size must parse and sit inside
// the dock range.
func (s *SettingsState) Values() (SettingsValues, error) {
	size, err := parseDockSize(s.dockSize, s.dockRange)
	if err != nil {
		return SettingsValues{}, err
	}
	return SettingsValues{
		Theme:            s.selectedTheme,
		DockEdge:         s.dockEdge,
		DockSize:         size,
		DockRange:        s.dockRange,
		ShowActivityFeed: slices.Contains(s.options, optionActivityFeed),
		AutoScroll:       slices.Contains(s.options, optionAutoScroll),
		Notifications:    slices.Contains(s.options, optionNotifications),
		TwitchChannel:    strings.TrimSpace(s.twitchChannel),
	}, nil
}

func parseDockSize(v string, r layout.Range) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("dock size must be a whole number")
	}
	if size < r.Min || size > r.Max {
		return 0, fmt.Errorf("dock size must be between %d and %d", r.Min, r.Max)
	}
	return size, nil
}

func validateChannel(v string) error {
	if strings.ContainsAny(strings.TrimSpace(v), " \t") {
		return fmt.Errorf("channel names have no spaces")
	}
	return nil
}

// NewSettingsState creates the settings modal with the current values.
// themes and themeDisplayNames are parallel slices.
func NewSettingsState(themes, themeDisplayNames []string, v SettingsValues) *SettingsState {
	s := &SettingsState{
		selectedTheme:  v.Theme,
		originalTheme:  v.Theme,
		dockEdge:       v.DockEdge,
		dockSize:       strconv.Itoa(v.DockSize),
		dockRange:      v.DockRange,
		twitchChannel:  v.TwitchChannel,
		availableWidth: ModalWidthWide,
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeDisplayNames[i], themes[i])
	}

	edgeOptions := make([]huh.Option[layout.Edge], len(layout.Edges))
	for i, e := range layout.Edges {
		edgeOptions[i] = huh.NewOption(edgeLabels[e], e)
	}

	toggles := []struct {
		label string
		key   string
		on    bool
	}{
		{"Show activity feed", optionActivityFeed, v.ShowActivityFeed},
		{"Auto-scroll to new messages", optionAutoScroll, v.AutoScroll},
		{"Desktop notifications for donations and subs", optionNotifications, v.Notifications},
	}
	toggleOptions := make([]huh.Option[string], len(toggles))
	for i, t := range toggles {
		toggleOptions[i] = huh.NewOption(t.label, t.key).Selected(t.on)
		if t.on {
			s.options = append(s.options, t.key)
		}
	}

	layoutGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewSelect[layout.Edge]().
			Title("Activity panel").
			Description("Where the activity feed docks").
			Options(edgeOptions...).
			Value(&s.dockEdge),
		huh.NewInput().
			Title("Panel size (%)").
			Description(fmt.Sprintf("Between %d and %d", v.DockRange.Min, v.DockRange.Max)).
			CharLimit(3).
			Validate(func(size string) error {
				_, err := parseDockSize(size, v.DockRange)
				return err
			}).
			Value(&s.dockSize),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(toggleOptions...).
			Height(len(toggleOptions)).
			Value(&s.options),
		huh.NewInput().
			Title("Twitch channel").
			Placeholder("channel name").
			CharLimit(ModalInputCharLimit).
			Validate(validateChannel).
			Value(&s.twitchChannel),
	)

	s.form = huh.NewForm(layoutGroup).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
