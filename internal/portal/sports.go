package portal

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// ListSports logs in and returns the category headers visible to the
// account, in the order the portal renders them. The order reflects the
// current dashboard layout and is not stable across sessions. An account
// with no categories yields an empty list, not an error.
func (c *Client) ListSports(ctx context.Context, creds Credentials) ([]string, error) {
	sports := make([]string, 0)

	err := c.withPage(ctx, func(page playwright.Page) error {
		if err := c.login(page, creds); err != nil {
			return err
		}

		cards, err := page.Locator(c.cfg.Locators.SportCards).All()
		if err != nil {
			return fmt.Errorf("listing sport cards: %w", err)
		}

		for _, card := range cards {
			name, err := card.Locator(c.cfg.Locators.SportCardHeader).InnerText()
			if err != nil {
				return fmt.Errorf("reading sport card header: %w", err)
			}
			sports = append(sports, strings.TrimSpace(name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sports, nil
}
