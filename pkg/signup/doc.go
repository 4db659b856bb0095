// Package signup holds the pieces shared by the signup application and its
// browser end-to-end suite: the test-id selectors the page exposes, the
// fixed strings the suite asserts on, and the synthetic user record used to
// fill the form.
//
// The application renders every element the suite touches with a
// data-testid attribute, so selectors stay decoupled from styling:
//
//	page.MustElement(signup.TestID(signup.IDHeading))
package signup
