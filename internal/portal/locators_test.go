package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocatorsPartialOverride(t *testing.T) {
	l := Locators{ScheduleTable: "table.schedule"}
	l.applyDefaults()

	assert.Equal(t, "table.schedule", l.ScheduleTable)
	assert.Equal(t, DefaultLocators().LoginButton, l.LoginButton)
	assert.Equal(t, DefaultLocators().LaneCards, l.LaneCards)
}

func TestLocatorsSportCard(t *testing.T) {
	l := DefaultLocators()
	assert.Equal(t,
		`.card:has(.card-header strong:has-text("Swimming - Boys"))`,
		l.SportCard("Swimming - Boys"),
	)
}

func TestLocatorsScheduleRow(t *testing.T) {
	l := DefaultLocators()

	assert.Equal(t,
		`//tr[td[1][contains(., "12/4")] and td[1][contains(., "4:00pm")]]`,
		l.ScheduleRow([]string{"12/4", "4:00pm"}),
	)

	assert.Equal(t,
		`//tr[td[1][contains(., "12/4")]]//a[contains(@class,'btn-default')]`,
		l.ScheduleRowEdit([]string{"12/4"}),
	)
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.EqualValues(t, 10_000, cfg.MarkerTimeoutMS)
	assert.EqualValues(t, 500, cfg.FallbackDelayMS)
	assert.Equal(t, DefaultLocators(), cfg.Locators)

	override := Config{BaseURL: "https://staging.example.com", SubmitTimeoutSeconds: 120}
	override.ApplyDefaults()
	assert.Equal(t, "https://staging.example.com", override.BaseURL)
	assert.Equal(t, 120, override.SubmitTimeoutSeconds)
}
