package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sinarjaya/maintenance-panel/internal/api/view"
	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
	"github.com/sinarjaya/maintenance-panel/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]domain.User, error)
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id int64, confirmation string) error
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id int64, confirmation string) error {
	return s.deleteFn(ctx, id, confirmation)
}

// memStateStore keeps page state in a map, with one-shot Take semantics.
type memStateStore struct {
	m map[string]view.PageState
}

func newMemStateStore() *memStateStore {
	return &memStateStore{m: make(map[string]view.PageState)}
}

func (s *memStateStore) Put(_ context.Context, token string, st view.PageState) error {
	s.m[token] = st
	return nil
}

func (s *memStateStore) Take(_ context.Context, token string) (*view.PageState, error) {
	st, ok := s.m[token]
	if !ok {
		return nil, nil
	}
	delete(s.m, token)
	return &st, nil
}

// stored returns the single state the handler left behind for the redirect.
func (s *memStateStore) stored(t *testing.T) view.PageState {
	t.Helper()
	if len(s.m) != 1 {
		t.Fatalf("expected exactly one stored state, got %d", len(s.m))
	}
	for _, st := range s.m {
		return st
	}
	return view.PageState{}
}

func newPanelEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = view.MustNewRenderer()
	e.Validator = NewValidator()
	return e
}

func formContext(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, target string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != target {
		t.Fatalf("expected redirect to %s, got %s", target, loc)
	}
}

func TestUserHandler_List_RendersRows(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: 1, Name: "Alice Admin", Email: "alice@example.com", Role: domain.RoleAdmin},
				{ID: 2, Name: "Bob Vendor", Email: "bob@example.com", Role: domain.RoleVendor},
			}, nil
		},
	}
	h := NewUserHandler(stub, newMemStateStore())

	c, rec := formContext(e, http.MethodGet, "/maintenance/user", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Alice Admin", "alice@example.com", "Bob Vendor", "?edit=2", "?confirm=2"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if strings.Contains(body, `name="password"`) {
		t.Fatalf("add form should not render in idle mode")
	}
}

func TestUserHandler_List_EditPrefillsForm(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{ID: 7, Name: "Carol", Email: "carol@example.com", Role: domain.RoleUser}}, nil
		},
	}
	h := NewUserHandler(stub, newMemStateStore())

	c, rec := formContext(e, http.MethodGet, "/maintenance/user?edit=7", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `action="/maintenance/user/7"`) {
		t.Fatalf("edit form should target record 7:\n%s", body)
	}
	if !strings.Contains(body, `value="PUT"`) {
		t.Fatalf("edit form should tunnel PUT")
	}
	if !strings.Contains(body, `value="carol@example.com"`) {
		t.Fatalf("edit form should prefill current email")
	}
}

func TestUserHandler_List_StaleEditFallsBackToIdle(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{ID: 1, Name: "Alice", Email: "alice@example.com", Role: domain.RoleAdmin}}, nil
		},
	}
	h := NewUserHandler(stub, newMemStateStore())

	c, rec := formContext(e, http.MethodGet, "/maintenance/user?edit=99", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if strings.Contains(rec.Body.String(), `value="PUT"`) {
		t.Fatalf("stale edit id should render the plain list")
	}
}

func TestUserHandler_List_ShowsStoredFlash(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) { return nil, nil },
	}
	store := newMemStateStore()
	store.m["tok1"] = view.PageState{Flash: view.Flash{Success: "User created successfully."}}
	h := NewUserHandler(stub, store)

	c, rec := formContext(e, http.MethodGet, "/maintenance/user", nil)
	c.Request().AddCookie(&http.Cookie{Name: stateCookie, Value: "tok1"})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !strings.Contains(rec.Body.String(), "User created successfully.") {
		t.Fatalf("flash message should render")
	}
	if len(store.m) != 0 {
		t.Fatalf("state should be consumed on first read")
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Email != "dave@example.com" || in.Role != domain.RoleUser {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 3, Name: in.Name, Email: in.Email, Role: in.Role}, nil
		},
	}
	store := newMemStateStore()
	h := NewUserHandler(stub, store)

	form := url.Values{
		"name":       {"Dave"},
		"email":      {"dave@example.com"},
		"password":   {"supersecret"},
		"user_roles": {"user"},
	}
	c, rec := formContext(e, http.MethodPost, "/maintenance/user", form)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/maintenance/user")
	if got := store.stored(t).Flash.Success; got != "User created successfully." {
		t.Fatalf("unexpected flash: %q", got)
	}
}

func TestUserHandler_Create_ValidationErrors(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	store := newMemStateStore()
	h := NewUserHandler(stub, store)

	form := url.Values{
		"name":       {"Eve"},
		"email":      {"not-an-email"},
		"password":   {"short"},
		"user_roles": {"user"},
	}
	c, rec := formContext(e, http.MethodPost, "/maintenance/user", form)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/maintenance/user?add=1")
	st := store.stored(t)
	if st.Errors["email"] != "The email must be a valid email address." {
		t.Fatalf("unexpected email error: %q", st.Errors["email"])
	}
	if st.Errors["password"] != "The password must be at least 8 characters." {
		t.Fatalf("unexpected password error: %q", st.Errors["password"])
	}
	if st.Old["name"] != "Eve" {
		t.Fatalf("submitted name should be kept for repopulation")
	}
	if _, ok := st.Old["password"]; ok {
		t.Fatalf("password must never be echoed back")
	}
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			ve := domain.NewValidationError()
			ve.Add("email", "The email has already been taken.")
			return nil, ve
		},
	}
	store := newMemStateStore()
	h := NewUserHandler(stub, store)

	form := url.Values{
		"name":       {"Frank"},
		"email":      {"taken@example.com"},
		"password":   {"supersecret"},
		"user_roles": {"admin"},
	}
	c, rec := formContext(e, http.MethodPost, "/maintenance/user", form)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/maintenance/user?add=1")
	if got := store.stored(t).Errors["email"]; got != "The email has already been taken." {
		t.Fatalf("unexpected error: %q", got)
	}
}

func TestUserHandler_Update_Success(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
			if id != 5 || in.Name != "Grace Renamed" {
				t.Fatalf("unexpected args: %d %+v", id, in)
			}
			return &domain.User{ID: id, Name: in.Name, Email: in.Email, Role: in.Role}, nil
		},
	}
	store := newMemStateStore()
	h := NewUserHandler(stub, store)

	form := url.Values{
		"name":       {"Grace Renamed"},
		"email":      {"grace@example.com"},
		"user_roles": {"user"},
	}
	c, rec := formContext(e, http.MethodPut, "/maintenance/user/5", form)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/maintenance/user")
	if got := store.stored(t).Flash.Success; got != "User updated successfully." {
		t.Fatalf("unexpected flash: %q", got)
	}
}

func TestUserHandler_Update_ValidationRedirectsToEditForm(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	store := newMemStateStore()
	h := NewUserHandler(stub, store)

	form := url.Values{
		"name":       {""},
		"email":      {"grace@example.com"},
		"user_roles": {"user"},
	}
	c, rec := formContext(e, http.MethodPut, "/maintenance/user/5", form)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/maintenance/user?edit=5")
	if got := store.stored(t).Errors["name"]; got != "The name field is required." {
		t.Fatalf("unexpected error: %q", got)
	}
}

func TestUserHandler_Update_NotFound(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	store := newMemStateStore()
	h := NewUserHandler(stub, store)

	form := url.Values{
		"name":       {"Ghost"},
		"email":      {"ghost@example.com"},
		"user_roles": {"user"},
	}
	c, rec := formContext(e, http.MethodPut, "/maintenance/user/42", form)
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/maintenance/user")
	if got := store.stored(t).Flash.Error; got != "User not found." {
		t.Fatalf("unexpected flash: %q", got)
	}
}

func TestUserHandler_Update_MalformedID(t *testing.T) {
	e := newPanelEcho()
	h := NewUserHandler(&stubUserService{}, newMemStateStore())

	c, _ := formContext(e, http.MethodPut, "/maintenance/user/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id int64, confirmation string) error {
			if id != 9 || confirmation != "delete" {
				t.Fatalf("unexpected args: %d %q", id, confirmation)
			}
			return nil
		},
	}
	store := newMemStateStore()
	h := NewUserHandler(stub, store)

	c, rec := formContext(e, http.MethodDelete, "/maintenance/user/9", url.Values{"confirmation": {"delete"}})
	c.SetParamNames("id")
	c.SetParamValues("9")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/maintenance/user")
	if got := store.stored(t).Flash.Success; got != "User deleted successfully." {
		t.Fatalf("unexpected flash: %q", got)
	}
}

func TestUserHandler_Delete_ConfirmationMismatch(t *testing.T) {
	e := newPanelEcho()
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id int64, confirmation string) error {
			ve := domain.NewValidationError()
			ve.Add("confirmation", "The confirmation must be 'delete'.")
			return ve
		},
	}
	store := newMemStateStore()
	h := NewUserHandler(stub, store)

	c, rec := formContext(e, http.MethodDelete, "/maintenance/user/9", url.Values{"confirmation": {"nope"}})
	c.SetParamNames("id")
	c.SetParamValues("9")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/maintenance/user?confirm=9")
	if got := store.stored(t).Errors["confirmation"]; got != "The confirmation must be 'delete'." {
		t.Fatalf("unexpected error: %q", got)
	}
}
