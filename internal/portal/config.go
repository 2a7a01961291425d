package portal

import "time"

const defaultBaseURL = "https://www.njschoolsports.com"

// Config drives the automation client. Every value has a default matching
// the live portal; the zero value is usable after ApplyDefaults.
type Config struct {
	BaseURL string `toml:"base_url"`

	// MarkerTimeoutMS bounds the wait for the post-login marker and for
	// the confirmation card after a lane save.
	MarkerTimeoutMS  float64 `toml:"marker_timeout_ms"`
	ConfirmTimeoutMS float64 `toml:"confirm_timeout_ms"`
	ConfirmPollMS    float64 `toml:"confirm_poll_ms"`
	FallbackDelayMS  float64 `toml:"fallback_delay_ms"`

	// SubmitTimeoutSeconds caps one whole submission call.
	SubmitTimeoutSeconds int `toml:"submit_timeout_seconds"`

	Locators Locators `toml:"locators"`
}

func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.MarkerTimeoutMS == 0 {
		c.MarkerTimeoutMS = 10_000
	}
	if c.ConfirmTimeoutMS == 0 {
		c.ConfirmTimeoutMS = 10_000
	}
	if c.ConfirmPollMS == 0 {
		c.ConfirmPollMS = 250
	}
	if c.FallbackDelayMS == 0 {
		c.FallbackDelayMS = 500
	}
	if c.SubmitTimeoutSeconds == 0 {
		c.SubmitTimeoutSeconds = 60
	}
	c.Locators.applyDefaults()
}

func (c *Config) SubmitTimeout() time.Duration {
	return time.Duration(c.SubmitTimeoutSeconds) * time.Second
}
