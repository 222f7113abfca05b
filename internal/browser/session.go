// Package browser wraps playwright-go with the helpers page objects are built from.
package browser

import (
	"fmt"
	"os"
	"strings"

	"github.com/playwright-community/playwright-go"

	"pws/internal/config"
)

// Session owns one Playwright driver, browser, context and page
type Session struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page

	cfg     config.BrowserConfig
	baseURL string
}

// NewSession creates a new Session; BASE_URL is taken from the profile
func NewSession(cfg config.BrowserConfig, profile config.Profile) *Session {
	return &Session{
		cfg:     cfg,
		baseURL: strings.TrimRight(profile.Get("BASE_URL"), "/"),
	}
}

// Start launches Chromium and opens a page
func (s *Session) Start() error {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("could not start playwright: %w", err)
	}
	s.Playwright = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.cfg.Headless),
		SlowMo:   playwright.Float(s.cfg.SlowMo),
	})
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}
	s.Browser = browser

	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	}
	if s.cfg.VideoDir != "" {
		opts.RecordVideo = &playwright.RecordVideo{Dir: s.cfg.VideoDir}
	}
	context, err := browser.NewContext(opts)
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	s.Context = context

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	s.Page = page
	page.SetDefaultTimeout(s.cfg.Timeout)

	return nil
}

// Close releases everything Start created
func (s *Session) Close() {
	if s.Page != nil {
		s.Page.Close()
	}
	if s.Context != nil {
		s.Context.Close()
	}
	if s.Browser != nil {
		s.Browser.Close()
	}
	if s.Playwright != nil {
		s.Playwright.Stop()
	}
}

// URL joins path onto the profile's BASE_URL
func (s *Session) URL(path string) string {
	if path == "" {
		return s.baseURL
	}
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

// NavigateTo opens path relative to BASE_URL and waits for the network to settle
func (s *Session) NavigateTo(path string) error {
	url := s.URL(path)
	_, err := s.Page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Screenshot saves the current page to path
func (s *Session) Screenshot(path string) error {
	_, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}
