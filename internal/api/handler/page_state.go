package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sinarjaya/maintenance-panel/internal/api/view"
	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
)

// stateCookie carries the one-shot token under which redirect state (flash,
// field errors, old input) is stored server-side.
const stateCookie = "page_state"

// StateStore abstracts the one-shot page state store (Redis).
type StateStore interface {
	Put(ctx context.Context, token string, st view.PageState) error
	Take(ctx context.Context, token string) (*view.PageState, error)
}

func newStateToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("page state token: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// redirectWithState stores st one-shot and redirects to target. Losing the
// state (store down) degrades to a redirect without a flash, which beats
// failing the already-committed mutation.
func redirectWithState(c echo.Context, store StateStore, target string, st view.PageState) error {
	token := newStateToken()
	if err := store.Put(c.Request().Context(), token, st); err == nil {
		c.SetCookie(&http.Cookie{
			Name:     stateCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   120,
			HttpOnly: true,
		})
	}
	return c.Redirect(http.StatusFound, target)
}

// takePageState retrieves and clears the state left by the previous request.
// It always returns a usable value; templates rely on non-nil maps.
func takePageState(c echo.Context, store StateStore) view.PageState {
	st := view.PageState{}
	if cookie, err := c.Cookie(stateCookie); err == nil && cookie.Value != "" {
		if taken, err := store.Take(c.Request().Context(), cookie.Value); err == nil && taken != nil {
			st = *taken
		}
		c.SetCookie(&http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
	if st.Errors == nil {
		st.Errors = map[string]string{}
	}
	if st.Old == nil {
		st.Old = map[string]string{}
	}
	return st
}

// rejected builds the state for a failed submission: field errors plus the
// submitted input for repopulation.
func rejected(ve *domain.ValidationError, old map[string]string) view.PageState {
	return view.PageState{Errors: ve.Fields, Old: old}
}

func flashSuccess(msg string) view.PageState {
	return view.PageState{Flash: view.Flash{Success: msg}}
}

func flashError(msg string) view.PageState {
	return view.PageState{Flash: view.Flash{Error: msg}}
}
