// Package hexui implements the terminal surface around the edit buffer: raw
// mode and alternate-screen terminal control, a hex-dump renderer, and a
// modal keystroke controller. None of it is part of the core; it exists
// only to turn editbuf.Buffer's insert/delete/read/total-size operations
// into something a person can drive from a terminal.
package hexui

import "github.com/jcorbin/hexwrench/internal/editbuf"

// BytesPerRow is the fixed hex-dump row width: 16 bytes, 32 nibble columns.
const BytesPerRow = 16

// Mode is the controller's current modal state.
type Mode uint8

// Modes. ModeInsertToggle is reserved for a second, free-form insert-mode
// toggle; no key is currently bound to it.
const (
	ModeNormal Mode = iota
	ModeByteInsert
	ModeInsertToggle // reserved; no key is bound to it
)

// State is the editor's full mutable state, threaded explicitly through the
// controller and renderer rather than held as file-scope globals.
type State struct {
	Filename string
	Data     *editbuf.Buffer

	Cursor int64 // logical byte offset of the cursor, in [0, Data.TotalSize()]
	Window int64 // logical offset of the first visible row (always a multiple of BytesPerRow)

	Mode    Mode
	Pending string // partially typed hex digits, used only in ModeByteInsert

	Quit bool
}

// clampCursor keeps Cursor within [0, TotalSize()], called after any edit
// that may have shrunk or grown the document out from under it.
func (st *State) clampCursor() {
	if total := st.Data.TotalSize(); st.Cursor > total {
		st.Cursor = total
	}
	if st.Cursor < 0 {
		st.Cursor = 0
	}
}

// FollowCursor adjusts Window so that Cursor's row stays within a viewport
// of visibleRows rows, scrolling by whole rows.
func (st *State) FollowCursor(visibleRows int) {
	if visibleRows <= 0 {
		return
	}
	row := (st.Cursor / BytesPerRow) * BytesPerRow
	last := st.Window + int64(visibleRows-1)*BytesPerRow
	switch {
	case row < st.Window:
		st.Window = row
	case row > last:
		st.Window = row - int64(visibleRows-1)*BytesPerRow
	}
	if st.Window < 0 {
		st.Window = 0
	}
}
