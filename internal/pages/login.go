package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"pws/internal/browser"
)

// LoginPage drives the application's sign-in form
type LoginPage struct {
	page     playwright.Page
	actions  *browser.Actions
	assert   *browser.Assertions
	Locators LoginLocators
}

// NewLoginPage creates a LoginPage; timeout is the element wait in milliseconds
func NewLoginPage(page playwright.Page, timeout float64) *LoginPage {
	return &LoginPage{
		page:     page,
		actions:  browser.NewActions(page, timeout),
		assert:   browser.NewAssertions(page, timeout),
		Locators: NewLoginLocators(page),
	}
}

// LaunchURL opens url and waits until the network is idle
func (p *LoginPage) LaunchURL(url string) error {
	if _, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("launch %s: %w", url, err)
	}
	return nil
}

// Login fills the credentials and submits the form
func (p *LoginPage) Login(email, password string) error {
	if err := p.actions.Fill(p.Locators.EmailInput, email); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := p.actions.Fill(p.Locators.PasswordInput, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := p.actions.Click(p.Locators.LoginButton); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// VerifyInvalidLoginErrorMessage checks the error shown after rejected credentials contains expected
func (p *LoginPage) VerifyInvalidLoginErrorMessage(expected string) error {
	return p.assert.ContainsText(LoginErrorSelector, expected)
}

// VerifyBlankFieldsErrorMessage submits the form and checks the blank field error reads expected
func (p *LoginPage) VerifyBlankFieldsErrorMessage(expected string) error {
	if err := p.actions.Click(p.Locators.LoginButton); err != nil {
		return err
	}
	texts, err := p.Locators.BlankFieldsError.AllTextContents()
	if err != nil {
		return err
	}
	for _, text := range texts {
		if strings.TrimSpace(text) == expected {
			return nil
		}
	}
	return fmt.Errorf("blank field error %q not shown", expected)
}

// TogglePasswordVisibility types password, then checks the toggle switches
// the field between hidden and shown
func (p *LoginPage) TogglePasswordVisibility(password string) error {
	if err := p.actions.Fill(p.Locators.PasswordInput, password); err != nil {
		return err
	}
	if err := p.assert.Attribute(PasswordInputSelector, "type", "password"); err != nil {
		return err
	}
	if err := p.actions.Click(p.Locators.PasswordToggle); err != nil {
		return err
	}
	if err := p.assert.Attribute(PasswordInputSelector, "type", "text"); err != nil {
		return err
	}
	return p.assert.Value(PasswordInputSelector, password)
}
