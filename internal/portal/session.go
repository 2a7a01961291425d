package portal

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/shrimpsizemoose/trekker/logger"
)

// HeadlessEnv is the single deployment switch for the session provider:
// unset or false launches a visible local Firefox for debugging, anything
// truthy launches headless Chromium with a fetched pinned build.
const HeadlessEnv = "PORTAL_HEADLESS"

var (
	installOnce sync.Once
	installErr  error
)

// Client drives the portal through a scripted browser. It is safe for
// concurrent use; every call launches and tears down its own browser.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	cfg.ApplyDefaults()
	return &Client{cfg: cfg}
}

// Credentials is a portal login identity. It lives in process memory for
// the duration of one call and is never logged in cleartext.
type Credentials struct {
	Username string
	Password string
}

func headless() bool {
	v, err := strconv.ParseBool(os.Getenv(HeadlessEnv))
	return err == nil && v
}

// ensureBrowser fetches the pinned driver and browser build on first use.
// Fetch failure is fatal for the call: there is no degraded path without
// a browser binary.
func ensureBrowser() error {
	installOnce.Do(func() {
		browsers := []string{"firefox"}
		if headless() {
			browsers = []string{"chromium"}
		}
		installErr = playwright.Install(&playwright.RunOptions{
			Browsers: browsers,
		})
	})
	return installErr
}

// withPage acquires a fresh browser page, runs fn against it, and releases
// the page, browser and driver on every exit path. Cancelling ctx tears
// the browser down under fn, aborting whatever remote operation was in
// flight.
func (c *Client) withPage(ctx context.Context, fn func(page playwright.Page) error) error {
	if err := ensureBrowser(); err != nil {
		return fmt.Errorf("browser binary unavailable: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("starting playwright driver: %w", err)
	}
	defer pw.Stop()

	var browser playwright.Browser
	if headless() {
		browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(true),
		})
	} else {
		logger.Info.Println("Launching local browser...")
		browser, err = pw.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(false),
		})
	}
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.NewPage()
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- fn(page) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
