package portal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/anchorleg/anchorleg/internal/metrics"
	"github.com/anchorleg/anchorleg/internal/models"
)

// SubmitResults drives the portal's result-entry screens for one scheduled
// event: locate the event row, open its results view, and write every
// supplied lane into the matching race sections. Race names absent from
// the rendered sections are skipped without error; partial submission is
// an intended capability. The returned warning count is the number of
// lanes whose save confirmation never appeared.
//
// Submission is not transactional: a fatal error mid-walk leaves the lanes
// already saved on the portal in place.
func (c *Client) SubmitResults(ctx context.Context, creds Credentials, sportName, eventDate string, data []models.RaceResult) (int, error) {
	warnings := 0

	err := c.withPage(ctx, func(page playwright.Page) error {
		if err := c.login(page, creds); err != nil {
			return err
		}
		if err := c.openSchedule(page, sportName); err != nil {
			return err
		}
		if err := c.openEventResults(page, eventDate); err != nil {
			return err
		}

		var err error
		warnings, err = c.fillSections(page, data)
		return err
	})
	if err != nil {
		return 0, err
	}

	return warnings, nil
}

// openEventResults finds the schedule row whose first cell contains every
// whitespace token of eventDate, opens its edit page and follows the
// secondary navigation into the results view. No row matching is fatal
// and happens before any portal state is touched.
func (c *Client) openEventResults(page playwright.Page, eventDate string) error {
	loc := c.cfg.Locators

	tokens := strings.Fields(eventDate)
	if len(tokens) == 0 {
		return &NotFoundError{Kind: "event", Name: eventDate}
	}

	edit := page.Locator(loc.ScheduleRowEdit(tokens))
	n, err := edit.Count()
	if err != nil {
		return fmt.Errorf("matching schedule row: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Kind: "event", Name: eventDate}
	}

	if err := edit.First().Click(); err != nil {
		return fmt.Errorf("opening event edit page: %w", err)
	}
	if err := page.WaitForLoadState(); err != nil {
		return fmt.Errorf("waiting for edit page: %w", err)
	}
	if _, err := page.WaitForSelector(loc.ResultsNav); err != nil {
		return fmt.Errorf("waiting for edit page navigation: %w", err)
	}

	if err := page.Locator(loc.ResultsNavLink).Click(); err != nil {
		return fmt.Errorf("opening results view: %w", err)
	}
	if err := page.WaitForLoadState(); err != nil {
		return fmt.Errorf("waiting for results view: %w", err)
	}
	if _, err := page.WaitForSelector(loc.RaceSections); err != nil {
		return fmt.Errorf("waiting for race sections: %w", err)
	}

	return nil
}

// fillSections walks every rendered race section and writes the pending
// lanes for sections whose heading exactly matches a supplied race name.
// Unmatched sections are left completely untouched.
func (c *Client) fillSections(page playwright.Page, data []models.RaceResult) (int, error) {
	sections, err := page.Locator(c.cfg.Locators.RaceSections).All()
	if err != nil {
		return 0, fmt.Errorf("listing race sections: %w", err)
	}

	warnings := 0
	for _, section := range sections {
		heading, err := section.Locator(c.cfg.Locators.RaceHeading).InnerText()
		if err != nil {
			// Sections without a heading are page chrome, not races.
			continue
		}
		race := strings.TrimSpace(heading)

		pending := resultsFor(race, data)
		if len(pending) == 0 {
			continue
		}

		logger.Info.Printf("Entering %d lane(s) for %s", len(pending), race)
		for i, item := range pending {
			if err := c.fillLane(page, section, race, item, &warnings); err != nil {
				return warnings, fmt.Errorf("%s lane %d: %w", race, i+1, err)
			}
			metrics.LanesSubmittedTotal.WithLabelValues(race).Inc()
		}
	}

	return warnings, nil
}

// resultsFor returns the entries submitted for the given rendered section
// heading. Matching is exact text equality.
func resultsFor(race string, data []models.RaceResult) []models.ResultItem {
	for _, rr := range data {
		if rr.Race == race {
			return rr.Results
		}
	}
	return nil
}

// fillLane writes one finishing entry into the section's trailing empty
// card and saves it. The portal keeps exactly one empty card at the end of
// each section for new entries; the card list is re-queried for every lane
// so a missed confirmation cannot shift which card the next lane targets.
func (c *Client) fillLane(page playwright.Page, section playwright.Locator, race string, item models.ResultItem, warnings *int) error {
	loc := c.cfg.Locators

	cards, err := section.Locator(loc.LaneCards).All()
	if err != nil {
		return fmt.Errorf("listing lane cards: %w", err)
	}
	if len(cards) == 0 {
		return fmt.Errorf("no lane cards rendered")
	}
	card := cards[len(cards)-1]

	inputs, err := card.Locator(loc.SwimmerInputs).All()
	if err != nil {
		return fmt.Errorf("listing swimmer fields: %w", err)
	}
	if len(inputs) != len(item.Swimmers) {
		return fmt.Errorf("lane renders %d name field(s), result has %d swimmer(s)",
			len(inputs), len(item.Swimmers))
	}

	for j, input := range inputs {
		name := FormatSwimmerName(item.Swimmers[j])
		if err := input.Clear(); err != nil {
			return fmt.Errorf("clearing swimmer field %d: %w", j+1, err)
		}
		if err := input.Fill(name); err != nil {
			return fmt.Errorf("filling swimmer field %d: %w", j+1, err)
		}
		// Accept the top entry of the roster suggestion list. The accepted
		// value is not read back, so a near-miss roster name slips through
		// silently.
		if err := page.Keyboard().Press("ArrowDown"); err != nil {
			return fmt.Errorf("selecting roster suggestion: %w", err)
		}
		if err := page.Keyboard().Press("Enter"); err != nil {
			return fmt.Errorf("accepting roster suggestion: %w", err)
		}
	}

	if item.Time != "" {
		timeInput := card.Locator(loc.TimeInput).First()
		if err := timeInput.Clear(); err != nil {
			return fmt.Errorf("clearing time field: %w", err)
		}
		if err := timeInput.PressSequentially(FormatRaceTime(item.Time, race)); err != nil {
			return fmt.Errorf("typing time: %w", err)
		}
	}

	if item.Place > 0 {
		placeInput := card.Locator(loc.PlaceInput).First()
		if err := placeInput.Clear(); err != nil {
			return fmt.Errorf("clearing place field: %w", err)
		}
		if err := placeInput.Fill(strconv.Itoa(item.Place)); err != nil {
			return fmt.Errorf("filling place: %w", err)
		}
	}

	if err := card.Locator(loc.SaveButton).First().Click(); err != nil {
		return fmt.Errorf("saving lane: %w", err)
	}

	if !c.confirmSaved(page, section, len(cards)) {
		logger.Error.Printf("No confirmation card for %s after save, continuing after delay", race)
		metrics.LaneConfirmationTimeouts.Inc()
		*warnings++
		page.WaitForTimeout(c.cfg.FallbackDelayMS)
	}

	return nil
}

// confirmSaved waits for the portal to append a fresh empty card, the only
// visible evidence that the save persisted: the card count must have grown
// by exactly one and the new trailing card must carry the empty-entry
// marker. A timeout here is degraded-continue, never fatal.
func (c *Client) confirmSaved(page playwright.Page, section playwright.Locator, before int) bool {
	loc := c.cfg.Locators
	deadline := time.Now().Add(time.Duration(c.cfg.ConfirmTimeoutMS) * time.Millisecond)

	for time.Now().Before(deadline) {
		n, err := section.Locator(loc.LaneCards).Count()
		if err == nil && n == before+1 {
			m, err := section.Locator(loc.LaneCards).Last().Locator(loc.EmptyCardMarker).Count()
			if err == nil && m > 0 {
				return true
			}
		}
		page.WaitForTimeout(c.cfg.ConfirmPollMS)
	}

	return false
}
