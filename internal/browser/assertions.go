package browser

import (
	"fmt"
	"regexp"

	"github.com/playwright-community/playwright-go"
)

// Assertions wraps Playwright's retrying expectations for page objects
type Assertions struct {
	page   playwright.Page
	expect playwright.PlaywrightAssertions
}

// NewAssertions creates Assertions; timeout is the retry budget in milliseconds
func NewAssertions(page playwright.Page, timeout float64) *Assertions {
	return &Assertions{
		page:   page,
		expect: playwright.NewPlaywrightAssertions(timeout),
	}
}

func (a *Assertions) loc(selector string) playwright.LocatorAssertions {
	return a.expect.Locator(a.page.Locator(selector))
}

// Text asserts the element's full text
func (a *Assertions) Text(selector, expected string) error {
	return a.loc(selector).ToHaveText(expected)
}

// ContainsText asserts the element's text contains expected
func (a *Assertions) ContainsText(selector, expected string) error {
	return a.loc(selector).ToContainText(expected)
}

// Value asserts an input's value
func (a *Assertions) Value(selector, expected string) error {
	return a.loc(selector).ToHaveValue(expected)
}

// Attribute asserts an attribute value
func (a *Assertions) Attribute(selector, name, expected string) error {
	return a.loc(selector).ToHaveAttribute(name, expected)
}

// Count asserts how many elements match selector
func (a *Assertions) Count(selector string, expected int) error {
	return a.loc(selector).ToHaveCount(expected)
}

// Visible asserts the element is visible
func (a *Assertions) Visible(selector string) error {
	return a.loc(selector).ToBeVisible()
}

// URLContains asserts the page URL contains fragment
func (a *Assertions) URLContains(fragment string) error {
	return a.expect.Page(a.page).ToHaveURL(regexp.MustCompile(regexp.QuoteMeta(fragment)))
}

// URL asserts the exact page URL
func (a *Assertions) URL(expected string) error {
	return a.expect.Page(a.page).ToHaveURL(expected)
}

// Title asserts the exact page title
func (a *Assertions) Title(expected string) error {
	return a.expect.Page(a.page).ToHaveTitle(expected)
}

// TitleContains asserts the page title contains fragment
func (a *Assertions) TitleContains(fragment string) error {
	return a.expect.Page(a.page).ToHaveTitle(regexp.MustCompile(regexp.QuoteMeta(fragment)))
}

// CountGreaterThan checks more than n elements match selector
func (a *Assertions) CountGreaterThan(selector string, n int) error {
	count, err := a.page.Locator(selector).Count()
	if err != nil {
		return err
	}
	return compareCount(selector, count, n, true)
}

// CountLessThan checks fewer than n elements match selector
func (a *Assertions) CountLessThan(selector string, n int) error {
	count, err := a.page.Locator(selector).Count()
	if err != nil {
		return err
	}
	return compareCount(selector, count, n, false)
}

// HasClass asserts the element's class list contains class
func (a *Assertions) HasClass(selector, class string) error {
	return a.loc(selector).ToHaveClass(classPattern(class))
}

// NotHasClass asserts the element's class list lacks class
func (a *Assertions) NotHasClass(selector, class string) error {
	return a.loc(selector).Not().ToHaveClass(classPattern(class))
}

// CSS asserts a computed style property
func (a *Assertions) CSS(selector, property, expected string) error {
	return a.loc(selector).ToHaveCSS(property, expected)
}

func classPattern(class string) *regexp.Regexp {
	return regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(class) + `(\s|$)`)
}

func compareCount(selector string, count, n int, greater bool) error {
	if greater && count <= n {
		return fmt.Errorf("expected more than %d elements for %q, found %d", n, selector, count)
	}
	if !greater && count >= n {
		return fmt.Errorf("expected fewer than %d elements for %q, found %d", n, selector, count)
	}
	return nil
}
