//go:build e2e

package e2e

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/signup/pkg/signup"
	"github.com/thesyncim/signup/pkg/signup/testutil"
)

// knownLogs are console lines the page may print without failing the suite.
var knownLogs = []string{signup.DevToolsNotice}

// TestSignup runs the signup scenario once per device profile:
// 1. Browser launches with request interception and console capture
// 2. Page loads under device emulation
// 3. Heading and navigation render
// 4. The form submits synthetic data and the app answers with a cookie
// 5. Console stays clean and the blocked Star Wars call shows an error
func TestSignup(t *testing.T) {
	for _, profile := range testutil.Profiles() {
		t.Run(profile.Name, func(t *testing.T) {
			runScenario(t, profile)
		})
	}
}

func runScenario(t *testing.T, profile testutil.Profile) {
	browserCfg := suiteCfg.BrowserConfig()
	browserCfg.Logger = logger.WithField("profile", profile.Name)

	client, err := testutil.NewBrowserClient(browserCfg)
	require.NoError(t, err, "failed to create browser")
	defer func() {
		if err := client.Close(); err != nil {
			t.Errorf("browser close error: %v", err)
		}
	}()

	_, err = client.NewPage()
	require.NoError(t, err)

	blocker := testutil.NewBlocker(suiteCfg.BlockPattern)
	require.NoError(t, client.BlockRequests(blocker))

	console, err := client.CaptureConsole()
	require.NoError(t, err)

	require.NoError(t, client.Emulate(profile.Device))

	t.Logf("Navigating to %s as %s", baseURL, profile.Name)
	_, err = client.Navigate(baseURL)
	require.NoError(t, err)
	require.NoError(t, client.WaitStable(), "page not stable")

	if ua := profile.Device.UserAgent; ua != "" {
		got, err := client.Eval(`() => navigator.userAgent`)
		require.NoError(t, err)
		assert.Equal(t, ua, got, "device emulation not applied")
	}

	t.Run("on page load", func(t *testing.T) {
		t.Run("h1 loads correctly", func(t *testing.T) {
			screenshotOnFailure(t, client)

			html, err := client.InnerHTML(signup.TestID(signup.IDHeading))
			require.NoError(t, err)
			assert.Equal(t, signup.Heading, html)
		})

		t.Run("nav loads correctly", func(t *testing.T) {
			screenshotOnFailure(t, client)

			navbar, err := client.Exists(signup.TestID(signup.IDNavbar))
			require.NoError(t, err)
			assert.True(t, navbar)

			items, err := client.Count(signup.TestID(signup.IDNavItem))
			require.NoError(t, err)
			assert.Equal(t, signup.NavItemCount, items)
		})

		t.Run("login form", func(t *testing.T) {
			t.Run("fills out form and submits", func(t *testing.T) {
				screenshotOnFailure(t, client)
				timeout := suiteCfg.SelectTimeout

				require.NoError(t, client.SetCookie(signup.SessionCookie, signup.SessionCookieValue))

				for _, id := range signup.FormFields {
					value, _ := user.Field(id)
					require.NoError(t, client.Fill(signup.TestID(id), value, timeout))
				}

				require.NoError(t, client.Press(signup.TestID(signup.IDSubmit), timeout))
				require.NoError(t, client.WaitFor(signup.TestID(signup.IDSuccess), timeout))
			})

			t.Run("sets firstName cookie", func(t *testing.T) {
				screenshotOnFailure(t, client)

				cookies, err := client.Cookies()
				require.NoError(t, err)

				_, ok := testutil.FindCookie(cookies, signup.FirstNameCookie, user.FirstName)
				assert.True(t, ok, "no %s=%q cookie among %d cookies", signup.FirstNameCookie, user.FirstName, len(cookies))
			})
		})

		t.Run("does not have console logs", func(t *testing.T) {
			assert.Empty(t, testutil.Unexpected(console.Logs(), knownLogs))
		})

		t.Run("does not have exceptions", func(t *testing.T) {
			assert.Empty(t, console.Errors())
		})

		t.Run("fails to fetch starWars endpoint", func(t *testing.T) {
			screenshotOnFailure(t, client)
			sel := signup.TestID(signup.IDStarWars)

			// the fetch may still be in flight on a slow machine
			if err := client.WaitInnerHTML(sel, signup.StarWarsFailure, suiteCfg.SelectTimeout); err != nil {
				t.Logf("%v", err)
			}

			h3, err := client.InnerHTML(sel)
			require.NoError(t, err)
			assert.Equal(t, signup.StarWarsFailure, h3)

			if bundled {
				assert.NotEmpty(t, blocker.Blocked(), "expected the Star Wars request to be intercepted")
			}
		})
	})
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// screenshotOnFailure saves the page when t fails and E2E_SCREENSHOT_DIR is set.
func screenshotOnFailure(t *testing.T, client *testutil.BrowserClient) {
	t.Helper()
	if suiteCfg.ScreenshotDir == "" {
		return
	}
	t.Cleanup(func() {
		if !t.Failed() {
			return
		}
		path := filepath.Join(suiteCfg.ScreenshotDir, unsafeFileChars.ReplaceAllString(t.Name(), "_")+".png")
		if err := client.Screenshot(path); err != nil {
			t.Logf("screenshot failed: %v", err)
			return
		}
		t.Logf("screenshot saved to %s", path)
	})
}
