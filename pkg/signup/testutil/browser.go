// browser.go provides browser automation utilities for E2E testing.
// It wraps Rod with the handful of page operations the signup scenario needs.
package testutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/devices"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// ErrNoPage is returned by page operations before a page is open.
var ErrNoPage = errors.New("no page open, call NewPage or Navigate first")

// BrowserConfig configures Chrome launch options.
type BrowserConfig struct {
	Headless   bool               // Run in headless mode (default: true)
	Devtools   bool               // Open devtools for each tab (headful only)
	SlowMotion time.Duration      // Delay between input actions (default: none)
	Timeout    time.Duration      // Default operation timeout (default: 30s)
	Bin        string             // Chrome binary; empty lets Rod find or download one
	Logger     logrus.FieldLogger // Defaults to a logger that discards output
}

// DefaultBrowserConfig returns sensible defaults for E2E testing.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

// BrowserClient owns one Chrome process and at most one page.
type BrowserClient struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	timeout  time.Duration
	touch    bool
	log      logrus.FieldLogger

	router     *rod.HijackRouter
	stopEvents func()
}

// NewBrowserClient launches Chrome and connects to it.
// The browser is configured with:
//   - No sandbox (for container compatibility)
//   - No GPU
//   - Devtools and slow motion when debugging
func NewBrowserClient(cfg BrowserConfig) (*BrowserClient, error) {
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.Devtools).
		Set("no-sandbox").
		Set("disable-gpu")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if cfg.SlowMotion > 0 {
		browser = browser.SlowMotion(cfg.SlowMotion)
	}
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	log.WithFields(logrus.Fields{
		"headless": cfg.Headless,
		"control":  url,
	}).Debug("browser connected")

	return &BrowserClient{
		launcher: l,
		browser:  browser,
		timeout:  cfg.Timeout,
		log:      log,
	}, nil
}

// NewPage opens a blank page. Interception, capture and emulation are set up
// on it before Navigate so they observe the first load.
func (c *BrowserClient) NewPage() (*rod.Page, error) {
	page, err := c.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	c.page = page
	return page, nil
}

// Navigate opens a URL with timeout and waits for the load event.
// Returns the page for further interaction.
func (c *BrowserClient) Navigate(url string) (*rod.Page, error) {
	if c.page == nil {
		if _, err := c.NewPage(); err != nil {
			return nil, err
		}
	}

	c.log.WithField("url", url).Debug("navigating")
	err := c.withTimeout(c.timeout, func(p *rod.Page) error {
		if err := p.Navigate(url); err != nil {
			return err
		}
		return p.WaitLoad()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return c.page, nil
}

// Emulate switches the page to the given device's viewport, user agent and
// touch support. Subsequent Fill and Press calls tap on touch devices.
func (c *BrowserClient) Emulate(d devices.Device) error {
	if c.page == nil {
		return ErrNoPage
	}
	if err := c.page.Emulate(d); err != nil {
		return fmt.Errorf("failed to emulate %s: %w", d.Title, err)
	}
	c.touch = lo.Contains(d.Capabilities, "touch")
	return nil
}

// BlockRequests intercepts every request of the page and aborts those the
// blocker matches. Interception stays active until Close.
func (c *BrowserClient) BlockRequests(b *Blocker) error {
	if c.page == nil {
		return ErrNoPage
	}
	if c.router != nil {
		return errors.New("request interception already enabled")
	}

	router := c.page.HijackRequests()
	err := rod.Try(func() {
		router.MustAdd("*", func(h *rod.Hijack) {
			url := h.Request.URL().String()
			if b.Blocks(url) {
				b.record(url)
				c.log.WithField("url", url).Debug("request blocked")
				h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
				return
			}
			h.ContinueRequest(&proto.FetchContinueRequest{})
		})
	})
	if err != nil {
		return fmt.Errorf("failed to enable request interception: %w", err)
	}

	c.router = router
	go router.Run()
	return nil
}

// CaptureConsole records console calls and uncaught exceptions of the page
// until Close.
func (c *BrowserClient) CaptureConsole() (*Console, error) {
	if c.page == nil {
		return nil, ErrNoPage
	}
	if c.stopEvents != nil {
		return nil, errors.New("console capture already enabled")
	}

	console := &Console{}
	page, cancel := c.page.WithCancel()
	wait := page.EachEvent(
		func(e *proto.RuntimeConsoleAPICalled) {
			console.addLog(ConsoleText(e.Args))
		},
		func(e *proto.RuntimeExceptionThrown) {
			console.addError(ExceptionMessage(e.ExceptionDetails))
		},
	)
	c.stopEvents = cancel
	go wait()
	return console, nil
}

// SetCookie sets a cookie scoped to the page's current URL.
func (c *BrowserClient) SetCookie(name, value string) error {
	if c.page == nil {
		return ErrNoPage
	}
	info, err := c.page.Info()
	if err != nil {
		return fmt.Errorf("failed to read page info: %w", err)
	}
	err = c.page.SetCookies([]*proto.NetworkCookieParam{{
		Name:  name,
		Value: value,
		URL:   info.URL,
	}})
	if err != nil {
		return fmt.Errorf("failed to set cookie %s: %w", name, err)
	}
	return nil
}

// Cookies returns the cookies visible to the page's current URL.
func (c *BrowserClient) Cookies() ([]*proto.NetworkCookie, error) {
	if c.page == nil {
		return nil, ErrNoPage
	}
	cookies, err := c.page.Cookies(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}
	return cookies, nil
}

// FindCookie returns the cookie with the given name and value, if any.
func FindCookie(cookies []*proto.NetworkCookie, name, value string) (*proto.NetworkCookie, bool) {
	return lo.Find(cookies, func(c *proto.NetworkCookie) bool {
		return c != nil && c.Name == name && c.Value == value
	})
}

// InnerHTML waits for the element matching selector and returns its inner HTML.
func (c *BrowserClient) InnerHTML(selector string) (string, error) {
	var html string
	err := c.withTimeout(c.timeout, func(p *rod.Page) error {
		el, err := p.Element(selector)
		if err != nil {
			return err
		}
		res, err := el.Eval(`() => this.innerHTML`)
		if err != nil {
			return err
		}
		html = res.Value.Str()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", selector, err)
	}
	return html, nil
}

// WaitInnerHTML waits until the element matching selector has the given
// inner HTML.
func (c *BrowserClient) WaitInnerHTML(selector, want string, timeout time.Duration) error {
	err := c.withTimeout(timeout, func(p *rod.Page) error {
		el, err := p.Element(selector)
		if err != nil {
			return err
		}
		return el.Wait(rod.Eval(`(want) => this.innerHTML === want`, want))
	})
	if err != nil {
		return fmt.Errorf("waiting for %s to read %q: %w", selector, want, err)
	}
	return nil
}

// Exists reports whether an element matches selector right now.
func (c *BrowserClient) Exists(selector string) (bool, error) {
	if c.page == nil {
		return false, ErrNoPage
	}
	has, _, err := c.page.Has(selector)
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", selector, err)
	}
	return has, nil
}

// Count returns how many elements match selector right now.
func (c *BrowserClient) Count(selector string) (int, error) {
	if c.page == nil {
		return 0, ErrNoPage
	}
	els, err := c.page.Elements(selector)
	if err != nil {
		return 0, fmt.Errorf("failed to query %s: %w", selector, err)
	}
	return len(els), nil
}

// Fill focuses the input matching selector the way the device would and
// types text into it.
func (c *BrowserClient) Fill(selector, text string, timeout time.Duration) error {
	err := c.withTimeout(timeout, func(p *rod.Page) error {
		el, err := p.Element(selector)
		if err != nil {
			return err
		}
		if err := c.press(el); err != nil {
			return err
		}
		return el.Input(text)
	})
	if err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

// Press taps or clicks the element matching selector.
func (c *BrowserClient) Press(selector string, timeout time.Duration) error {
	err := c.withTimeout(timeout, func(p *rod.Page) error {
		el, err := p.Element(selector)
		if err != nil {
			return err
		}
		return c.press(el)
	})
	if err != nil {
		return fmt.Errorf("failed to press %s: %w", selector, err)
	}
	return nil
}

func (c *BrowserClient) press(el *rod.Element) error {
	if c.touch {
		return el.Tap()
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// WaitFor waits until an element matches selector.
func (c *BrowserClient) WaitFor(selector string, timeout time.Duration) error {
	err := c.withTimeout(timeout, func(p *rod.Page) error {
		_, err := p.Element(selector)
		return err
	})
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", selector, err)
	}
	return nil
}

// Eval executes JavaScript and returns the result.
// Requires Navigate() to have been called first.
func (c *BrowserClient) Eval(js string) (interface{}, error) {
	if c.page == nil {
		return nil, ErrNoPage
	}
	result, err := c.page.Eval(js)
	if err != nil {
		return nil, fmt.Errorf("eval failed: %w", err)
	}
	return result.Value.Val(), nil
}

// stableWindow is how long the DOM must stay unchanged for WaitStable.
const stableWindow = 300 * time.Millisecond

// WaitStable waits until the page has loaded and the DOM has not changed for
// stableWindow, giving up after the client timeout.
func (c *BrowserClient) WaitStable() error {
	err := c.withTimeout(c.timeout, func(p *rod.Page) error {
		return p.WaitStable(stableWindow)
	})
	if err != nil && !errors.Is(err, ErrNoPage) {
		return fmt.Errorf("page not stable: %w", err)
	}
	return err
}

// Screenshot writes a full-page PNG to path, creating parent directories.
func (c *BrowserClient) Screenshot(path string) error {
	if c.page == nil {
		return ErrNoPage
	}
	img, err := c.page.Screenshot(true, nil)
	if err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	return os.WriteFile(path, img, 0o644)
}

// Close cleans up browser resources.
// Always call this (via defer) to prevent orphaned Chrome processes.
func (c *BrowserClient) Close() error {
	if c.stopEvents != nil {
		c.stopEvents()
		c.stopEvents = nil
	}
	var err error
	if c.router != nil {
		err = c.router.Stop()
		c.router = nil
	}
	if c.browser != nil {
		if cerr := c.browser.Close(); cerr != nil && err == nil {
			err = cerr
		}
		c.browser = nil
	}
	if c.launcher != nil {
		c.launcher.Kill()
		c.launcher.Cleanup()
		c.launcher = nil
	}
	c.page = nil
	return err
}

// withTimeout runs fn against a clone of the page bounded by d.
func (c *BrowserClient) withTimeout(d time.Duration, fn func(p *rod.Page) error) error {
	if c.page == nil {
		return ErrNoPage
	}
	p := c.page.Timeout(d)
	defer p.CancelTimeout()
	return fn(p)
}
