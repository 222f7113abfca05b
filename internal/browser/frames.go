package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Frames reaches into iframes of a page
type Frames struct {
	page    playwright.Page
	actions *Actions
}

// NewFrames creates Frames for page
func NewFrames(page playwright.Page, actions *Actions) *Frames {
	return &Frames{page: page, actions: actions}
}

// ByURL returns the frame whose URL matches url (a string glob or *regexp.Regexp)
func (f *Frames) ByURL(url interface{}) (playwright.Frame, error) {
	frame := f.page.Frame(playwright.PageFrameOptions{URL: url})
	if frame == nil {
		return nil, fmt.Errorf("frame with URL %v not found", url)
	}
	return frame, nil
}

// ByName returns the frame with the given name attribute
func (f *Frames) ByName(name string) (playwright.Frame, error) {
	frame := f.page.Frame(playwright.PageFrameOptions{Name: playwright.String(name)})
	if frame == nil {
		return nil, fmt.Errorf("frame with name %q not found", name)
	}
	return frame, nil
}

// Nested follows path of child indexes starting from the main frame
func (f *Frames) Nested(path ...int) (playwright.Frame, error) {
	return descend(f.page.MainFrame(), path)
}

// ClickIn clicks selector inside frame
func (f *Frames) ClickIn(frame playwright.Frame, selector string) error {
	return f.actions.Click(frame.Locator(selector))
}

// FillIn fills selector inside frame
func (f *Frames) FillIn(frame playwright.Frame, selector, value string) error {
	return f.actions.Fill(frame.Locator(selector), value)
}

// Text returns the text content of selector inside frame
func (f *Frames) Text(frame playwright.Frame, selector string) (string, error) {
	loc := frame.Locator(selector)
	if err := f.actions.visible(loc); err != nil {
		return "", err
	}
	return loc.TextContent()
}

// InputValue returns the current value of an input inside frame
func (f *Frames) InputValue(frame playwright.Frame, selector string) (string, error) {
	loc := frame.Locator(selector)
	if err := f.actions.visible(loc); err != nil {
		return "", err
	}
	return loc.InputValue()
}

// IsVisible reports whether selector is visible inside frame
func (f *Frames) IsVisible(frame playwright.Frame, selector string) (bool, error) {
	return frame.Locator(selector).IsVisible()
}

func descend[F interface{ ChildFrames() []F }](root F, path []int) (F, error) {
	current := root
	for _, i := range path {
		children := current.ChildFrames()
		if i < 0 || i >= len(children) {
			var zero F
			return zero, fmt.Errorf("child frame at index %d not found", i)
		}
		current = children[i]
	}
	return current, nil
}
