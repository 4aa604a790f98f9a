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

const vendorPath = "/maintenance/vendor"

// vendorForm is shared by create and update; the vendor flow has no
// create-only field the way users have a password.
type vendorForm struct {
	Name string `form:"nama_vendor" validate:"required,max=255"`
	Type string `form:"types" validate:"required"`
}

func (f vendorForm) old() map[string]string {
	return map[string]string{
		"nama_vendor": f.Name,
		"types":       f.Type,
	}
}

// VendorHandler serves the vendor maintenance page and its mutations.
type VendorHandler struct {
	service ports.VendorService
	state   StateStore
}

func NewVendorHandler(service ports.VendorService, state StateStore) *VendorHandler {
	return &VendorHandler{service: service, state: state}
}

// List handles GET /maintenance/vendor.
func (h *VendorHandler) List(c echo.Context) error {
	vendors, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	st := takePageState(c, h.state)
	mode := view.ParseMode(c.QueryParams())

	page := view.VendorPage{
		Title:      "Maintenance - Vendor",
		ActiveUser: currentUserName(c),
		Vendors:    make([]view.VendorRow, 0, len(vendors)),
		Mode:       mode,
		Flash:      st.Flash,
		Errors:     st.Errors,
		Old:        st.Old,
	}
	for _, v := range vendors {
		page.Vendors = append(page.Vendors, view.NewVendorRow(v))
	}

	if mode.IsEditing() {
		if row, ok := findVendorRow(page.Vendors, mode.ID()); ok {
			page.Edit = row
		} else {
			page.Mode = view.Idle()
		}
	}
	if mode.IsConfirming() {
		if _, ok := findVendorRow(page.Vendors, mode.ID()); !ok {
			page.Mode = view.Idle()
		}
	}

	return c.Render(http.StatusOK, "vendor.html", page)
}

// Create handles POST /maintenance/vendor.
func (h *VendorHandler) Create(c echo.Context) error {
	var form vendorForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := c.Validate(&form); err != nil {
		return h.reject(c, err, "create", vendorPath+"?add=1", form.old())
	}

	_, err := h.service.Create(c.Request().Context(), ports.VendorInput{
		Name: form.Name,
		Type: form.Type,
	})
	if err != nil {
		return h.reject(c, err, "create", vendorPath+"?add=1", form.old())
	}

	metrics.RecordsCreatedTotal.WithLabelValues("vendor").Inc()
	return redirectWithState(c, h.state, vendorPath, flashSuccess("Vendor created successfully."))
}

// Update handles PUT /maintenance/vendor/:id.
func (h *VendorHandler) Update(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	var form vendorForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	editPath := vendorPath + "?edit=" + strconv.FormatInt(id, 10)
	if err := c.Validate(&form); err != nil {
		return h.reject(c, err, "update", editPath, form.old())
	}

	_, err = h.service.Update(c.Request().Context(), id, ports.VendorInput{
		Name: form.Name,
		Type: form.Type,
	})
	if err != nil {
		if errors.Is(err, domain.ErrVendorNotFound) {
			return redirectWithState(c, h.state, vendorPath, flashError("Vendor not found."))
		}
		return h.reject(c, err, "update", editPath, form.old())
	}

	metrics.RecordsUpdatedTotal.WithLabelValues("vendor").Inc()
	return redirectWithState(c, h.state, vendorPath, flashSuccess("Vendor updated successfully."))
}

// Delete handles DELETE /maintenance/vendor/:id.
func (h *VendorHandler) Delete(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	var form deleteForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := h.service.Delete(c.Request().Context(), id, form.Confirmation); err != nil {
		if errors.Is(err, domain.ErrVendorNotFound) {
			return redirectWithState(c, h.state, vendorPath, flashError("Vendor not found."))
		}
		confirmPath := vendorPath + "?confirm=" + strconv.FormatInt(id, 10)
		return h.reject(c, err, "delete", confirmPath, nil)
	}

	metrics.RecordsDeletedTotal.WithLabelValues("vendor").Inc()
	return redirectWithState(c, h.state, vendorPath, flashSuccess("Vendor deleted successfully."))
}

func (h *VendorHandler) reject(c echo.Context, err error, operation, target string, old map[string]string) error {
	ve := domain.AsValidation(err)
	if ve == nil {
		return err
	}
	metrics.ValidationFailuresTotal.WithLabelValues("vendor", operation).Inc()
	return redirectWithState(c, h.state, target, rejected(ve, old))
}

func findVendorRow(rows []view.VendorRow, id int64) (view.VendorRow, bool) {
	for _, row := range rows {
		if row.ID == id {
			return row, true
		}
	}
	return view.VendorRow{}, false
}
