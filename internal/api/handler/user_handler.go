package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sinarjaya/maintenance-panel/internal/api/metrics"
	"github.com/sinarjaya/maintenance-panel/internal/api/view"
	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
	"github.com/sinarjaya/maintenance-panel/internal/core/ports"
)

const userPath = "/maintenance/user"

// UserHandler serves the user maintenance page and its mutations.
type UserHandler struct {
	service ports.UserService
	state   StateStore
}

func NewUserHandler(service ports.UserService, state StateStore) *UserHandler {
	return &UserHandler{service: service, state: state}
}

// List handles GET /maintenance/user: the full list plus whichever form the
// page mode opens, with any state left by the previous mutation.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	st := takePageState(c, h.state)
	mode := view.ParseMode(c.QueryParams())

	page := view.UserPage{
		Title:      "Maintenance - User",
		ActiveUser: currentUserName(c),
		Users:      make([]view.UserRow, 0, len(users)),
		Mode:       mode,
		Flash:      st.Flash,
		Errors:     st.Errors,
		Old:        st.Old,
	}
	for _, u := range users {
		page.Users = append(page.Users, view.NewUserRow(u))
	}

	// Editing loads the record's current values into the form draft. A
	// stale id (record deleted meanwhile) falls back to the plain list.
	if mode.IsEditing() {
		if row, ok := findUserRow(page.Users, mode.ID()); ok {
			page.Edit = row
		} else {
			page.Mode = view.Idle()
		}
	}
	if mode.IsConfirming() {
		if _, ok := findUserRow(page.Users, mode.ID()); !ok {
			page.Mode = view.Idle()
		}
	}

	return c.Render(http.StatusOK, "user.html", page)
}

// Create handles POST /maintenance/user.
func (h *UserHandler) Create(c echo.Context) error {
	var form userCreateForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := c.Validate(&form); err != nil {
		return h.reject(c, err, "create", userPath+"?add=1", form.old())
	}

	_, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		return h.reject(c, err, "create", userPath+"?add=1", form.old())
	}

	metrics.RecordsCreatedTotal.WithLabelValues("user").Inc()
	return redirectWithState(c, h.state, userPath, flashSuccess("User created successfully."))
}

// Update handles PUT /maintenance/user/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	var form userUpdateForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	editPath := userPath + "?edit=" + strconv.FormatInt(id, 10)
	if err := c.Validate(&form); err != nil {
		return h.reject(c, err, "update", editPath, form.old())
	}

	_, err = h.service.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Name:  form.Name,
		Email: form.Email,
		Role:  form.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return redirectWithState(c, h.state, userPath, flashError("User not found."))
		}
		return h.reject(c, err, "update", editPath, form.old())
	}

	metrics.RecordsUpdatedTotal.WithLabelValues("user").Inc()
	return redirectWithState(c, h.state, userPath, flashSuccess("User updated successfully."))
}

// Delete handles DELETE /maintenance/user/:id. The service only proceeds
// when the typed confirmation matches "delete" case-insensitively.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	var form deleteForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := h.service.Delete(c.Request().Context(), id, form.Confirmation); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return redirectWithState(c, h.state, userPath, flashError("User not found."))
		}
		confirmPath := userPath + "?confirm=" + strconv.FormatInt(id, 10)
		return h.reject(c, err, "delete", confirmPath, nil)
	}

	metrics.RecordsDeletedTotal.WithLabelValues("user").Inc()
	return redirectWithState(c, h.state, userPath, flashSuccess("User deleted successfully."))
}

// reject turns a ValidationError into the redirect-with-errors flow; any
// other error escalates to the central handler.
func (h *UserHandler) reject(c echo.Context, err error, operation, target string, old map[string]string) error {
	ve := domain.AsValidation(err)
	if ve == nil {
		return err
	}
	metrics.ValidationFailuresTotal.WithLabelValues("user", operation).Inc()
	return redirectWithState(c, h.state, target, rejected(ve, old))
}

func findUserRow(rows []view.UserRow, id int64) (view.UserRow, bool) {
	for _, row := range rows {
		if row.ID == id {
			return row, true
		}
	}
	return view.UserRow{}, false
}

// recordID parses the :id path parameter. A malformed id cannot name any
// record, so it resolves to the 404 page.
func recordID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "record not found")
	}
	return id, nil
}
