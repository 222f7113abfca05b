package pages

import "github.com/playwright-community/playwright-go"

// Manager hands out the page objects bound to one page
type Manager struct {
	page    playwright.Page
	timeout float64
	login   *LoginPage
}

// NewManager creates a Manager for page
func NewManager(page playwright.Page, timeout float64) *Manager {
	return &Manager{page: page, timeout: timeout}
}

// Login returns the login page object, creating it on first use
func (m *Manager) Login() *LoginPage {
	if m.login == nil {
		m.login = NewLoginPage(m.page, m.timeout)
	}
	return m.login
}
