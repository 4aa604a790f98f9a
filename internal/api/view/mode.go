// Package view holds the server-driven page model for the maintenance
// panel: the per-page form state machine, the state carried across
// redirects, and the embedded HTML templates.
package view

import (
	"net/url"
	"strconv"
)

// ModeKind enumerates the mutually exclusive form states of a list page.
type ModeKind int

const (
	KindIdle ModeKind = iota
	KindAdding
	KindEditing
	KindConfirmingDelete
)

// Mode is the single active form state of a page instance. It is a tagged
// union over {Idle, Adding, Editing(id), ConfirmingDelete(id)}: exactly one
// variant is active, so the add form, the edit form, and the delete dialog
// can never render together.
type Mode struct {
	kind ModeKind
	id   int64
}

func Idle() Mode            { return Mode{kind: KindIdle} }
func Adding() Mode          { return Mode{kind: KindAdding} }
func Editing(id int64) Mode { return Mode{kind: KindEditing, id: id} }

func ConfirmingDelete(id int64) Mode { return Mode{kind: KindConfirmingDelete, id: id} }

func (m Mode) Kind() ModeKind { return m.kind }

// ID returns the record id for Editing and ConfirmingDelete, 0 otherwise.
func (m Mode) ID() int64 { return m.id }

// Template-friendly predicates.
func (m Mode) IsAdding() bool     { return m.kind == KindAdding }
func (m Mode) IsEditing() bool    { return m.kind == KindEditing }
func (m Mode) IsConfirming() bool { return m.kind == KindConfirmingDelete }

// ParseMode derives the page mode from query parameters: ?add=1 opens the
// add form, ?edit=<id> the edit form, ?confirm=<id> the delete dialog.
// When several are present the most specific wins (confirm > edit > add),
// and an unparsable id falls through to the next candidate.
func ParseMode(q url.Values) Mode {
	if id, ok := parseID(q.Get("confirm")); ok {
		return ConfirmingDelete(id)
	}
	if id, ok := parseID(q.Get("edit")); ok {
		return Editing(id)
	}
	if q.Get("add") != "" {
		return Adding()
	}
	return Idle()
}

func parseID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
