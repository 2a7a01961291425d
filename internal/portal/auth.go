package portal

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// login navigates to the portal entry page, fills the credential fields by
// their label text and submits. The session counts as authenticated once
// the post-login marker renders; if it does not within the bound, the
// cause is unknowable from out here and the failure is reported as one
// undifferentiated ErrAuthenticationFailed.
func (c *Client) login(page playwright.Page, creds Credentials) error {
	loc := c.cfg.Locators

	if _, err := page.Goto(c.cfg.BaseURL); err != nil {
		return fmt.Errorf("opening portal: %w", err)
	}
	if err := page.GetByLabel(loc.UsernameLabel).Fill(creds.Username); err != nil {
		return fmt.Errorf("filling username: %w", err)
	}
	if err := page.GetByLabel(loc.PasswordLabel).Fill(creds.Password); err != nil {
		return fmt.Errorf("filling password: %w", err)
	}
	if err := page.Locator(loc.LoginButton).Click(); err != nil {
		return fmt.Errorf("submitting login: %w", err)
	}
	if err := page.WaitForLoadState(); err != nil {
		return fmt.Errorf("waiting for login navigation: %w", err)
	}

	if _, err := page.WaitForSelector(loc.PostLoginMarker, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(c.cfg.MarkerTimeoutMS),
	}); err != nil {
		return ErrAuthenticationFailed
	}

	return nil
}
