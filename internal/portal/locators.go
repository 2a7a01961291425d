package portal

import (
	"fmt"
	"strings"
)

// Locators collects every structural selector used to drive the portal.
// Markup drift on the remote side is fixed here (or in the
// [portal.locators] config table), not in the automation code.
type Locators struct {
	UsernameLabel   string `toml:"username_label"`
	PasswordLabel   string `toml:"password_label"`
	LoginButton     string `toml:"login_button"`
	PostLoginMarker string `toml:"post_login_marker"`

	SportCards      string `toml:"sport_cards"`
	SportCardByName string `toml:"sport_card_by_name"`
	SportCardHeader string `toml:"sport_card_header"`
	SportCardAction string `toml:"sport_card_action"`

	ScheduleTable     string `toml:"schedule_table"`
	ScheduleRowAction string `toml:"schedule_row_action"`

	ResultsNav     string `toml:"results_nav"`
	ResultsNavLink string `toml:"results_nav_link"`

	RaceSections    string `toml:"race_sections"`
	RaceHeading     string `toml:"race_heading"`
	LaneCards       string `toml:"lane_cards"`
	SwimmerInputs   string `toml:"swimmer_inputs"`
	TimeInput       string `toml:"time_input"`
	PlaceInput      string `toml:"place_input"`
	SaveButton      string `toml:"save_button"`
	EmptyCardMarker string `toml:"empty_card_marker"`
}

func DefaultLocators() Locators {
	return Locators{
		UsernameLabel:   "Username",
		PasswordLabel:   "Password",
		LoginButton:     `button:has-text("Login")`,
		PostLoginMarker: ".card",

		SportCards:      `.card:has(a[href^="/Teams/"])`,
		SportCardByName: `.card:has(.card-header strong:has-text(%q))`,
		SportCardHeader: ".card-header strong",
		SportCardAction: "a.btn-primary",

		ScheduleTable:     "table.table",
		ScheduleRowAction: "//a[contains(@class,'btn-default')]",

		ResultsNav:     "ul.nav",
		ResultsNavLink: `ul.nav a.nav-link:has-text("Event Results")`,

		RaceSections:    ".mb-3",
		RaceHeading:     "h3",
		LaneCards:       ".card.event-scoring.mb-2",
		SwimmerInputs:   `.autocomplete input[type="text"]`,
		TimeInput:       `.input-number-mid input[type="text"]`,
		PlaceInput:      `.input-number input[type="text"]`,
		SaveButton:      `button:has-text("Save")`,
		EmptyCardMarker: `input[type="hidden"][value="0"]`,
	}
}

// applyDefaults fills any selector a config override left blank, so a
// partial [portal.locators] table only replaces what it names.
func (l *Locators) applyDefaults() {
	defaults := DefaultLocators()
	if l.UsernameLabel == "" {
		l.UsernameLabel = defaults.UsernameLabel
	}
	if l.PasswordLabel == "" {
		l.PasswordLabel = defaults.PasswordLabel
	}
	if l.LoginButton == "" {
		l.LoginButton = defaults.LoginButton
	}
	if l.PostLoginMarker == "" {
		l.PostLoginMarker = defaults.PostLoginMarker
	}
	if l.SportCards == "" {
		l.SportCards = defaults.SportCards
	}
	if l.SportCardByName == "" {
		l.SportCardByName = defaults.SportCardByName
	}
	if l.SportCardHeader == "" {
		l.SportCardHeader = defaults.SportCardHeader
	}
	if l.SportCardAction == "" {
		l.SportCardAction = defaults.SportCardAction
	}
	if l.ScheduleTable == "" {
		l.ScheduleTable = defaults.ScheduleTable
	}
	if l.ScheduleRowAction == "" {
		l.ScheduleRowAction = defaults.ScheduleRowAction
	}
	if l.ResultsNav == "" {
		l.ResultsNav = defaults.ResultsNav
	}
	if l.ResultsNavLink == "" {
		l.ResultsNavLink = defaults.ResultsNavLink
	}
	if l.RaceSections == "" {
		l.RaceSections = defaults.RaceSections
	}
	if l.RaceHeading == "" {
		l.RaceHeading = defaults.RaceHeading
	}
	if l.LaneCards == "" {
		l.LaneCards = defaults.LaneCards
	}
	if l.SwimmerInputs == "" {
		l.SwimmerInputs = defaults.SwimmerInputs
	}
	if l.TimeInput == "" {
		l.TimeInput = defaults.TimeInput
	}
	if l.PlaceInput == "" {
		l.PlaceInput = defaults.PlaceInput
	}
	if l.SaveButton == "" {
		l.SaveButton = defaults.SaveButton
	}
	if l.EmptyCardMarker == "" {
		l.EmptyCardMarker = defaults.EmptyCardMarker
	}
}

// SportCard renders the selector matching the card whose header contains
// sportName. has-text matches by substring, so two sports sharing a
// substring resolve to whichever the portal renders first.
func (l Locators) SportCard(sportName string) string {
	return fmt.Sprintf(l.SportCardByName, sportName)
}

// ScheduleRow builds an XPath matching the schedule row whose first cell
// contains every given token.
func (l Locators) ScheduleRow(tokens []string) string {
	conds := make([]string, len(tokens))
	for i, tok := range tokens {
		conds[i] = fmt.Sprintf(`td[1][contains(., %q)]`, tok)
	}
	return "//tr[" + strings.Join(conds, " and ") + "]"
}

// ScheduleRowEdit points at the matched row's edit action.
func (l Locators) ScheduleRowEdit(tokens []string) string {
	return l.ScheduleRow(tokens) + l.ScheduleRowAction
}
