package portal

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/anchorleg/anchorleg/internal/models"
)

// openSchedule clicks through the sport's card to its schedule page and
// waits for the table. The card is matched by substring containment of
// sportName against card headers, first match wins.
func (c *Client) openSchedule(page playwright.Page, sportName string) error {
	loc := c.cfg.Locators

	card := page.Locator(loc.SportCard(sportName)).First()
	n, err := card.Count()
	if err != nil {
		return fmt.Errorf("matching sport card: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Kind: "sport", Name: sportName}
	}

	if err := card.Locator(loc.SportCardAction).Click(); err != nil {
		return fmt.Errorf("opening schedule: %w", err)
	}
	if err := page.WaitForLoadState(); err != nil {
		return fmt.Errorf("waiting for schedule page: %w", err)
	}
	if _, err := page.WaitForSelector(loc.ScheduleTable); err != nil {
		return fmt.Errorf("waiting for schedule table: %w", err)
	}
	return nil
}

// ListEvents logs in, opens sportName's schedule and returns its rows in
// table order.
func (c *Client) ListEvents(ctx context.Context, creds Credentials, sportName string) ([]models.EventInfo, error) {
	events := make([]models.EventInfo, 0)

	err := c.withPage(ctx, func(page playwright.Page) error {
		if err := c.login(page, creds); err != nil {
			return err
		}
		if err := c.openSchedule(page, sportName); err != nil {
			return err
		}

		// One round-trip for the whole table beats a locator call per
		// cell; the captured markup is parsed locally.
		html, err := page.Locator(c.cfg.Locators.ScheduleTable).First().InnerHTML()
		if err != nil {
			return fmt.Errorf("capturing schedule table: %w", err)
		}

		events, err = parseSchedule(html)
		return err
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

// parseSchedule extracts (date, result, opponent) from captured schedule
// table markup. Cells are read by fixed position 0/1/3: the portal renders
// no usable header names, so a column reorder is a deliberate breakage
// surfaced here rather than papered over.
func parseSchedule(html string) ([]models.EventInfo, error) {
	// Re-wrap the captured inner markup so the parser keeps tbody intact.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table>" + html + "</table>"))
	if err != nil {
		return nil, fmt.Errorf("parsing schedule table: %w", err)
	}

	events := make([]models.EventInfo, 0)
	doc.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		events = append(events, models.EventInfo{
			Date:     CleanCell(cells.Eq(0).Text()),
			Result:   CleanCell(cells.Eq(1).Text()),
			Opponent: StripDecoration(CleanCell(cells.Eq(3).Text())),
		})
	})

	return events, nil
}
