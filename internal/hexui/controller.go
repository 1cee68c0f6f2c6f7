package hexui

// Controller translates keystrokes into edits and cursor motion against a
// State. It never touches the terminal directly; Terminal supplies the raw
// byte stream, Controller only interprets it.
type Controller struct{}

// HandleKey dispatches one input byte against st according to the current
// Mode. Unknown keys in ModeNormal are ignored.
func (Controller) HandleKey(st *State, key byte) {
	if st.Mode == ModeByteInsert {
		handleByteInsertKey(st, key)
		return
	}
	handleNormalKey(st, key)
}

func handleNormalKey(st *State, key byte) {
	total := st.Data.TotalSize()
	switch key {
	case 'h':
		if st.Cursor > 0 {
			st.Cursor--
		}
	case 'l':
		if st.Cursor < total {
			st.Cursor++
		}
	case 'j':
		st.Cursor += BytesPerRow
	case 'k':
		st.Cursor -= BytesPerRow
	case 'g':
		st.Cursor = 0
	case 'G':
		st.Cursor = total
		if st.Cursor > 0 {
			st.Cursor--
		}
	case 'i':
		st.Mode = ModeByteInsert
		st.Pending = ""
	case 'x':
		if total > 0 && st.Cursor < total {
			st.Data.Delete(st.Cursor, 1)
		}
	case 'q':
		st.Quit = true
	}
	st.clampCursor()
}

// handleByteInsertKey accumulates the two hex digits of the "i" sub-mode;
// any non-hex-digit key aborts back to ModeNormal without inserting
// anything.
func handleByteInsertKey(st *State, key byte) {
	if !isHexDigit(key) {
		st.Mode = ModeNormal
		st.Pending = ""
		return
	}

	st.Pending += string(key)
	if len(st.Pending) < 2 {
		return
	}

	var b byte
	for i := 0; i < 2; i++ {
		b = b<<4 | hexDigitValue(st.Pending[i])
	}

	st.Data.Insert(st.Cursor, []byte{b})
	st.Cursor++
	st.Mode = ModeNormal
	st.Pending = ""
	st.clampCursor()
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexDigitValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
