package signup

import "fmt"

// Test ids rendered by the application.
const (
	IDHeading   = "h1"
	IDNavbar    = "navbar"
	IDNavItem   = "navBarLi"
	IDFirstName = "firstName"
	IDLastName  = "lastName"
	IDEmail     = "email"
	IDPassword  = "password"
	IDSubmit    = "submit"
	IDSuccess   = "success"
	IDStarWars  = "starWars"
)

// Strings and counts the page is expected to render.
const (
	Heading         = "Welcome to React"
	NavItemCount    = 4
	StarWarsFailure = "Something went wrong!"
)

// Cookie names exchanged between the suite and the application.
const (
	// SessionCookie is set by the suite before submitting the form.
	SessionCookie      = "JWT"
	SessionCookieValue = "mycookie"

	// FirstNameCookie is set by the application after a successful login.
	FirstNameCookie = "firstName"
)

// DevToolsNotice is the console line React prints in development builds.
// It is the only console output the suite tolerates.
const DevToolsNotice = "%cDownload the React DevTools for a better development experience: https://fb.me/react-devtools font-weight:bold"

// DefaultStarWarsURL is the external endpoint the Star Wars panel fetches.
const DefaultStarWarsURL = "https://swapi.co/api/people/1/"

// DefaultBlockPattern is the URL substring the suite aborts.
const DefaultBlockPattern = "https://swapi.co/api/"

// FormFields lists the form inputs in the order the suite fills them.
var FormFields = []string{IDFirstName, IDLastName, IDEmail, IDPassword}

// TestID returns the CSS selector for the element carrying the given
// data-testid attribute.
func TestID(id string) string {
	return fmt.Sprintf("[data-testid=%q]", id)
}
