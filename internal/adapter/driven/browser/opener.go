// Package browser opens external links in the user's default browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/cli/browser"

	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

var _ driven.LinkOpener = (*Opener)(nil)

// Opener implements driven.LinkOpener with github.com/cli/browser.
type Opener struct {
	open func(string) error
}

// NewOpener creates an Opener using the system browser.
func NewOpener() *Opener {
	return &Opener{open: browser.OpenURL}
}

// NewOpenerWithFunc creates an Opener that hands URLs to open. Intended for tests.
func NewOpenerWithFunc(open func(string) error) *Opener {
	return &Opener{open: open}
}

// OpenURL opens rawURL unchanged. Only http and https links are accepted.
func (o *Opener) OpenURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("only http and https links can be opened")
	}

	if err := o.open(rawURL); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
