package server

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/thesyncim/signup/internal/clock"
	"github.com/thesyncim/signup/pkg/signup"
)

// maxLoginBody caps the size of a login request.
const maxLoginBody = 16 << 10

// LoginResponse is returned by POST /api/login.
type LoginResponse struct {
	OK        bool   `json:"ok"`
	FirstName string `json:"firstName,omitempty"`
	Error     string `json:"error,omitempty"`
}

// pageData feeds the index template.
type pageData struct {
	Heading     string
	NavItems    []string
	StarWarsURL string
	Failure     string
	IDs         map[string]string
}

var navItems = []string{"Home", "About", "Skills", "Contact"}

type app struct {
	page        *template.Template
	starWarsURL string
	cookieTTL   time.Duration
	clock       clock.Clock
	log         logrus.FieldLogger
}

// HandleIndex renders the signup page.
func (a *app) HandleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := a.page.Execute(&buf, pageData{
		Heading:     signup.Heading,
		NavItems:    navItems,
		StarWarsURL: a.starWarsURL,
		Failure:     signup.StarWarsFailure,
		IDs: map[string]string{
			"heading":   signup.IDHeading,
			"navbar":    signup.IDNavbar,
			"navItem":   signup.IDNavItem,
			"firstName": signup.IDFirstName,
			"lastName":  signup.IDLastName,
			"email":     signup.IDEmail,
			"password":  signup.IDPassword,
			"submit":    signup.IDSubmit,
			"success":   signup.IDSuccess,
			"starWars":  signup.IDStarWars,
		},
	})
	if err != nil {
		a.log.WithError(err).Error("failed to render page")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		a.log.WithError(err).Debug("failed to write page")
	}
}

// HandleHealth reports that the server is up.
func (a *app) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(a.log, w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleLogin accepts the signup form and sets the firstName cookie.
func (a *app) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(a.log, w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	log := a.log.WithField("remote", r.RemoteAddr)
	if c, err := r.Cookie(signup.SessionCookie); err == nil {
		log = log.WithField("session", c.Value)
	}

	var u signup.User
	body := http.MaxBytesReader(w, r.Body, maxLoginBody)
	if err := json.NewDecoder(body).Decode(&u); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(log, w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		if errors.Is(err, io.EOF) {
			writeError(log, w, http.StatusBadRequest, "empty request")
			return
		}
		log.WithError(err).Debug("failed to decode login")
		writeError(log, w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := u.Validate(); err != nil {
		log.WithError(err).Info("login rejected")
		writeError(log, w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     signup.FirstNameCookie,
		Value:    u.FirstName,
		Path:     "/",
		Expires:  a.clock.Now().Add(a.cookieTTL),
		SameSite: http.SameSiteLaxMode,
	})

	log.WithField("email", u.Email).Info("login accepted")
	writeJSON(log, w, http.StatusOK, LoginResponse{OK: true, FirstName: u.FirstName})
}

// writeJSON sends v with the given status. The header is already out when
// encoding fails, so the error is only logged.
func writeJSON(log logrus.FieldLogger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Debug("failed to write response")
	}
}

func writeError(log logrus.FieldLogger, w http.ResponseWriter, status int, msg string) {
	writeJSON(log, w, status, LoginResponse{Error: msg})
}
