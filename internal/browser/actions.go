package browser

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/playwright-community/playwright-go"
)

// Actions performs the wait-then-act steps page objects are written with.
// Every method waits for the element to be visible first.
type Actions struct {
	page    playwright.Page
	timeout float64
}

// NewActions creates Actions for page; timeout is the visibility wait in milliseconds
func NewActions(page playwright.Page, timeout float64) *Actions {
	return &Actions{page: page, timeout: timeout}
}

func (a *Actions) visible(loc playwright.Locator) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(a.timeout),
	})
}

func (a *Actions) fail(op, target string, err error) error {
	color.Red("❌ Error in %s for %q: %v", op, target, err)
	return fmt.Errorf("%s %q: %w", op, target, err)
}

// Fill waits for loc and types value into it
func (a *Actions) Fill(loc playwright.Locator, value string) error {
	if err := a.visible(loc); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	return loc.Fill(value)
}

// WaitAndFill is Fill for a selector
func (a *Actions) WaitAndFill(selector, value string) error {
	loc := a.page.Locator(selector)
	if err := a.visible(loc); err != nil {
		return a.fail("waitAndFill", selector, err)
	}
	if err := loc.Fill(value); err != nil {
		return a.fail("waitAndFill", selector, err)
	}
	return nil
}

// ClearAndFill empties the input before filling it
func (a *Actions) ClearAndFill(selector, value string) error {
	loc := a.page.Locator(selector)
	if err := a.visible(loc); err != nil {
		return a.fail("clearAndFill", selector, err)
	}
	if err := loc.Fill(""); err != nil {
		return a.fail("clearAndFill", selector, err)
	}
	if err := loc.Fill(value); err != nil {
		return a.fail("clearAndFill", selector, err)
	}
	return nil
}

// Click waits for loc and clicks it
func (a *Actions) Click(loc playwright.Locator) error {
	if err := a.visible(loc); err != nil {
		return err
	}
	return loc.Click()
}

// WaitAndClick is Click for a selector
func (a *Actions) WaitAndClick(selector string) error {
	if err := a.Click(a.page.Locator(selector)); err != nil {
		return a.fail("waitAndClick", selector, err)
	}
	return nil
}

// Hover moves the pointer over the element
func (a *Actions) Hover(selector string) error {
	loc := a.page.Locator(selector)
	if err := a.visible(loc); err != nil {
		return a.fail("hover", selector, err)
	}
	if err := loc.Hover(); err != nil {
		return a.fail("hover", selector, err)
	}
	return nil
}

// Text returns the text content of the element
func (a *Actions) Text(selector string) (string, error) {
	loc := a.page.Locator(selector)
	if err := a.visible(loc); err != nil {
		return "", a.fail("getElementText", selector, err)
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", a.fail("getElementText", selector, err)
	}
	return text, nil
}

// SelectByValue picks the dropdown option with the given value
func (a *Actions) SelectByValue(selector, value string) error {
	loc := a.page.Locator(selector)
	if err := a.visible(loc); err != nil {
		return a.fail("selectDropdownByValue", selector, err)
	}
	if _, err := loc.SelectOption(playwright.SelectOptionValues{Values: &[]string{value}}); err != nil {
		return a.fail("selectDropdownByValue", selector, err)
	}
	return nil
}

// ClickByTextFromList clicks the first element matching selector whose trimmed text equals text
func (a *Actions) ClickByTextFromList(selector, text string) error {
	elements := a.page.Locator(selector)
	texts, err := elements.AllTextContents()
	if err != nil {
		return a.fail("clickElementByTextFromList", selector, err)
	}
	i := indexOfTrimmed(texts, text)
	if i == -1 {
		return a.fail("clickElementByTextFromList", selector, fmt.Errorf("text %q not found in elements", text))
	}
	return elements.Nth(i).Click()
}

// ScrollIntoViewAndClick scrolls the element into view before clicking it
func (a *Actions) ScrollIntoViewAndClick(selector string) error {
	loc := a.page.Locator(selector)
	if err := a.visible(loc); err != nil {
		return a.fail("scrollElementIntoViewAndClick", selector, err)
	}
	if err := loc.ScrollIntoViewIfNeeded(); err != nil {
		return a.fail("scrollElementIntoViewAndClick", selector, err)
	}
	return loc.Click()
}

// ScrollTo scrolls the window to a vertical offset
func (a *Actions) ScrollTo(height int) error {
	_, err := a.page.Evaluate("h => window.scrollTo(0, h)", height)
	return err
}

// ScrollToEnd scrolls to the bottom of the page
func (a *Actions) ScrollToEnd() error {
	_, err := a.page.Evaluate("() => window.scrollTo(0, document.body.scrollHeight)")
	return err
}

// ScrollToTop scrolls to the top of the page
func (a *Actions) ScrollToTop() error {
	return a.ScrollTo(0)
}

// SetCheckboxes checks every checkbox whose label (found with labelSelector
// inside it) is in labels, and unchecks the others when exclusive is set
func (a *Actions) SetCheckboxes(checkboxSelector, labelSelector string, labels []string, exclusive bool) error {
	boxes := a.page.Locator(checkboxSelector)
	count, err := boxes.Count()
	if err != nil {
		return a.fail("selectCheckboxesByTexts", checkboxSelector, err)
	}

	for i := 0; i < count; i++ {
		box := boxes.Nth(i)
		label, err := box.Locator(labelSelector).TextContent()
		if err != nil {
			return a.fail("selectCheckboxesByTexts", checkboxSelector, err)
		}
		want := indexOfTrimmed(labels, label) != -1
		checked, err := box.IsChecked()
		if err != nil {
			return a.fail("selectCheckboxesByTexts", checkboxSelector, err)
		}
		switch {
		case want && !checked:
			if err := box.Check(); err != nil {
				return err
			}
			color.Green("✅ Selected checkbox with label: %q", strings.TrimSpace(label))
		case !want && checked && exclusive:
			if err := box.Uncheck(); err != nil {
				return err
			}
		}
	}
	return nil
}

// UncheckByText unchecks the checkbox labelled text; it is an error when no label matches
func (a *Actions) UncheckByText(checkboxSelector, labelSelector, text string) error {
	boxes := a.page.Locator(checkboxSelector)
	count, err := boxes.Count()
	if err != nil {
		return a.fail("unselectCheckboxByText", checkboxSelector, err)
	}
	for i := 0; i < count; i++ {
		box := boxes.Nth(i)
		label, err := box.Locator(labelSelector).TextContent()
		if err != nil {
			return a.fail("unselectCheckboxByText", checkboxSelector, err)
		}
		if strings.TrimSpace(label) != text {
			continue
		}
		if checked, _ := box.IsChecked(); checked {
			return box.Uncheck()
		}
		return nil
	}
	return a.fail("unselectCheckboxByText", checkboxSelector, fmt.Errorf("checkbox with label %q not found", text))
}

// GoToPage clicks the pagination button labelled n and waits for the network to settle
func (a *Actions) GoToPage(pagerSelector string, n int) error {
	button := a.page.Locator(fmt.Sprintf(`%s >> text="%d"`, pagerSelector, n))
	if err := a.Click(button); err != nil {
		return a.fail("goToPageNumber", pagerSelector, err)
	}
	return a.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}

// TotalPages returns the largest number shown by the pagination buttons, at least 1
func (a *Actions) TotalPages(pagerSelector string) (int, error) {
	texts, err := a.page.Locator(pagerSelector).AllTextContents()
	if err != nil {
		return 0, a.fail("getTotalPages", pagerSelector, err)
	}
	return maxPageNumber(texts), nil
}

// ClickRandom clicks one of the elements matched by loc and returns its index
func (a *Actions) ClickRandom(loc playwright.Locator) (int, error) {
	count, err := loc.Count()
	if err != nil {
		return -1, err
	}
	if count == 0 {
		return -1, fmt.Errorf("the elements list is empty")
	}
	i := rand.Intn(count)
	if err := a.Click(loc.Nth(i)); err != nil {
		return -1, err
	}
	return i, nil
}

// CopyAll selects everything in the focused element and copies it
func (a *Actions) CopyAll() error {
	kb := a.page.Keyboard()
	if err := kb.Press("ControlOrMeta+A"); err != nil {
		return fmt.Errorf("copy text: %w", err)
	}
	if err := kb.Press("ControlOrMeta+C"); err != nil {
		return fmt.Errorf("copy text: %w", err)
	}
	return nil
}

// Paste pastes the clipboard into the focused element
func (a *Actions) Paste() error {
	if err := a.page.Keyboard().Press("ControlOrMeta+V"); err != nil {
		return fmt.Errorf("paste text: %w", err)
	}
	return nil
}

// InsertAndEnter replaces the input's text and presses Enter
func (a *Actions) InsertAndEnter(selector, text string) error {
	loc := a.page.Locator(selector)
	if err := loc.Fill(""); err != nil {
		return a.fail("insertTextAndHitEnter", selector, err)
	}
	if err := loc.Fill(text); err != nil {
		return a.fail("insertTextAndHitEnter", selector, err)
	}
	return loc.Press("Enter")
}

// Upload sets the files of a file input
func (a *Actions) Upload(selector string, paths ...string) error {
	if err := a.page.Locator(selector).SetInputFiles(paths); err != nil {
		return a.fail("uploadFile", selector, err)
	}
	color.Green("✅ File(s) uploaded: %s", strings.Join(paths, ", "))
	return nil
}

// UploadAndVerify uploads path and checks the page shows expectedName in nameSelector
func (a *Actions) UploadAndVerify(selector, path, nameSelector, expectedName string) error {
	if err := a.Upload(selector, path); err != nil {
		return err
	}
	name, err := a.Text(nameSelector)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) != expectedName {
		return fmt.Errorf("file name validation failed: expected %q, actual %q", expectedName, strings.TrimSpace(name))
	}
	return nil
}

// ClearUploads removes every file from a file input
func (a *Actions) ClearUploads(selector string) error {
	if err := a.page.Locator(selector).SetInputFiles([]string{}); err != nil {
		return a.fail("clearUploads", selector, err)
	}
	return nil
}

func maxPageNumber(texts []string) int {
	highest := 1
	for _, t := range texts {
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

func indexOfTrimmed(values []string, want string) int {
	want = strings.TrimSpace(want)
	for i, v := range values {
		if strings.TrimSpace(v) == want {
			return i
		}
	}
	return -1
}
