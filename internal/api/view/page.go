package view

import (
	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
)

// Flash is a one-shot status banner. The rendered banner auto-dismisses
// after five seconds client-side.
type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PageState is the one-shot state a mutation carries across its redirect:
// the flash outcome, per-field validation errors, and the submitted input
// for form repopulation. It lives in the state store until the next page
// load takes it.
type PageState struct {
	Flash  Flash             `json:"flash,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
	Old    map[string]string `json:"old,omitempty"`
}

// UserRow is a user as rendered in the list and edit form. There is
// deliberately no password field.
type UserRow struct {
	ID    int64
	Name  string
	Email string
	Role  string
}

// NewUserRow maps a domain user to its view row, dropping the hash.
func NewUserRow(u domain.User) UserRow {
	return UserRow{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// VendorRow is a vendor as rendered in the list and edit form.
type VendorRow struct {
	ID   int64
	Name string
	Type string
}

func NewVendorRow(v domain.Vendor) VendorRow {
	return VendorRow{ID: v.ID, Name: v.Name, Type: v.Type}
}

// UserPage is the model behind templates/user.html.
type UserPage struct {
	Title      string
	ActiveUser string // name of the logged-in account, for the header
	Users      []UserRow
	Mode       Mode
	Edit       UserRow // current values when Mode is Editing
	Flash      Flash
	Errors     map[string]string
	Old        map[string]string
}

// VendorPage is the model behind templates/vendor.html.
type VendorPage struct {
	Title      string
	ActiveUser string
	Vendors    []VendorRow
	Mode       Mode
	Edit       VendorRow
	Flash      Flash
	Errors     map[string]string
	Old        map[string]string
}

// LoginPage is the model behind templates/login.html.
type LoginPage struct {
	Title  string
	Flash  Flash
	Errors map[string]string
	Old    map[string]string
}

// ErrorPage is the model behind templates/error.html.
type ErrorPage struct {
	Title   string
	Status  int
	Message string
}
