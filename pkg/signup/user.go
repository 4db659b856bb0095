package signup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// DefaultPassword is the fixed password used by synthetic users.
const DefaultPassword = "test"

// User is the record typed into the signup form.
type User struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ErrInvalidUser is returned by Validate for incomplete records.
var ErrInvalidUser = errors.New("invalid user")

// NewUser returns a user with a random name and email and the default
// password. A nil faker uses the package-level source.
func NewUser(f *gofakeit.Faker) User {
	if f == nil {
		f = gofakeit.GlobalFaker
	}
	return User{
		Email:     f.Email(),
		Password:  DefaultPassword,
		FirstName: f.FirstName(),
		LastName:  f.LastName(),
	}
}

// Validate reports whether every field is a non-empty string, the email
// looks like an address and the first name fits in the firstName cookie
// unchanged.
func (u User) Validate() error {
	for _, f := range []struct{ name, value string }{
		{IDFirstName, u.FirstName},
		{IDLastName, u.LastName},
		{IDEmail, u.Email},
		{IDPassword, u.Password},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidUser, f.name)
		}
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: email %q is not an address", ErrInvalidUser, u.Email)
	}
	if !cookieSafe(u.FirstName) {
		return fmt.Errorf("%w: firstName %q cannot be stored in a cookie", ErrInvalidUser, u.FirstName)
	}
	return nil
}

// cookieSafe reports whether s survives as a bare cookie value: printable
// ASCII without spaces, quotes, commas, semicolons or backslashes.
func cookieSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		switch b := s[i]; {
		case b <= 0x20 || b >= 0x7f:
			return false
		case b == '"' || b == ',' || b == ';' || b == '\\':
			return false
		}
	}
	return true
}

// Field returns the value typed into the form input with the given test id.
func (u User) Field(id string) (string, bool) {
	switch id {
	case IDFirstName:
		return u.FirstName, true
	case IDLastName:
		return u.LastName, true
	case IDEmail:
		return u.Email, true
	case IDPassword:
		return u.Password, true
	}
	return "", false
}
