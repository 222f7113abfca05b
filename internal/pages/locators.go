// Package pages holds the page objects of the application under test.
package pages

import "github.com/playwright-community/playwright-go"

// Login page selectors
const (
	EmailInputSelector     = "input[placeholder='Enter your email']"
	PasswordInputSelector  = "input[placeholder='Enter a password']"
	RememberMeSelector     = `input[type="checkbox"]`
	LoginButtonSelector    = `button:has-text("Login")`
	LoginErrorSelector     = ".text-error.text-sm"
	BlankFieldsSelector    = ".text-xs.font-medium.text-error-700"
	PasswordToggleSelector = ".h-5.w-5.text-gray-500"
)

// LoginLocators are the login page elements
type LoginLocators struct {
	EmailInput        playwright.Locator
	PasswordInput     playwright.Locator
	RememberMe        playwright.Locator
	LoginButton       playwright.Locator
	LoginErrorMessage playwright.Locator
	BlankFieldsError  playwright.Locator
	PasswordToggle    playwright.Locator
}

// NewLoginLocators resolves the login locators on page
func NewLoginLocators(page playwright.Page) LoginLocators {
	return LoginLocators{
		EmailInput:        page.Locator(EmailInputSelector),
		PasswordInput:     page.Locator(PasswordInputSelector),
		RememberMe:        page.Locator(RememberMeSelector),
		LoginButton:       page.Locator(LoginButtonSelector),
		LoginErrorMessage: page.Locator(LoginErrorSelector),
		BlankFieldsError:  page.Locator(BlankFieldsSelector),
		PasswordToggle:    page.Locator(PasswordToggleSelector),
	}
}
