package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sinarjaya/maintenance-panel/internal/api/metrics"
	"github.com/sinarjaya/maintenance-panel/internal/api/middleware"
	"github.com/sinarjaya/maintenance-panel/internal/api/view"
	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
	"github.com/sinarjaya/maintenance-panel/internal/core/ports"
)

// AuthHandler serves the login form and the session cookie lifecycle.
type AuthHandler struct {
	authService  ports.AuthService
	state        StateStore
	sessionTTL   time.Duration
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, state StateStore, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, state: state, sessionTTL: sessionTTL, secureCookie: secureCookie}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	st := takePageState(c, h.state)
	return c.Render(http.StatusOK, "login.html", view.LoginPage{
		Title:  "Maintenance - Log in",
		Flash:  st.Flash,
		Errors: st.Errors,
		Old:    st.Old,
	})
}

// Login handles POST /login: verify credentials, set the session cookie,
// and land on the user maintenance page.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := c.Validate(&form); err != nil {
		if ve := domain.AsValidation(err); ve != nil {
			old := map[string]string{"email": form.Email}
			return redirectWithState(c, h.state, "/login", rejected(ve, old))
		}
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			st := flashError("These credentials do not match our records.")
			st.Old = map[string]string{"email": form.Email}
			return redirectWithState(c, h.state, "/login", st)
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, userPath)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/login")
}
