package hexui

import (
	"fmt"
	"io"

	"github.com/jcorbin/hexwrench/internal/hexutil"
)

// cursorHighlight is the 256-color palette index used to mark the byte (and
// its ASCII twin) the cursor is on.
const cursorHighlight = 238

// Renderer draws a State into a terminal frame, buffering a whole frame's
// worth of escape sequences before a single Flush so a partial frame is
// never visible on screen.
type Renderer struct {
	buf hexutil.WriteBuffer
}

// NewRenderer returns a Renderer writing completed frames to w.
func NewRenderer(w io.Writer) *Renderer {
	r := &Renderer{}
	r.buf.To = w
	return r
}

// Clear wipes the whole screen and homes the cursor. Called once at
// startup and after a resize, since per-row redraw in Draw only repaints
// rows it still owns and would otherwise leave stale content from a
// larger previous frame on screen.
func (r *Renderer) Clear() error {
	r.buf.Reset()
	r.buf.WriteString(escClearScreen)
	r.buf.WriteString(escCursorHome)
	return r.buf.Flush()
}

// Draw renders one frame of st into a (rows, cols) terminal.
func (r *Renderer) Draw(st *State, rows, cols int) error {
	r.buf.Reset()

	total := st.Data.TotalSize()

	r.buf.WriteString(escCursorPos(1, 1))
	r.buf.WriteString(escEraseLine)
	fmt.Fprintf(&r.buf, "%s — %d bytes", st.Filename, total)

	r.buf.WriteString(escCursorPos(2, 1))
	r.buf.WriteString(escEraseLine)
	fmt.Fprintf(&r.buf, "%s  offset 0x%x (%d) / %d", modeLabel(st.Mode, st.Pending), st.Cursor, st.Cursor, total)

	visibleRows := rows - 2
	if visibleRows < 0 {
		visibleRows = 0
	}

	rowBuf := make([]byte, BytesPerRow)
	for i := 0; i < visibleRows; i++ {
		termRow := i + 3
		rowOffset := st.Window + int64(i)*BytesPerRow

		r.buf.WriteString(escCursorPos(termRow, 1))
		r.buf.WriteString(escEraseLine)

		if rowOffset >= total {
			continue
		}
		n := st.Data.Read(rowOffset, rowBuf)
		r.writeRow(rowOffset, rowBuf[:n], st.Cursor)
	}

	_ = cols // reserved: a future wrap-to-width mode could use it; 16 bytes/row is fixed today
	return r.buf.Flush()
}

func (r *Renderer) writeRow(rowOffset int64, row []byte, cursor int64) {
	fmt.Fprintf(&r.buf, "%08x: ", rowOffset)

	for i := 0; i < BytesPerRow; i++ {
		highlight := rowOffset+int64(i) == cursor
		if i < len(row) {
			if highlight {
				r.buf.WriteString(escBG256(cursorHighlight))
			}
			fmt.Fprintf(&r.buf, "%02x ", row[i])
			if highlight {
				r.buf.WriteString(escReset)
			}
		} else {
			r.buf.WriteString("   ")
		}
	}

	r.buf.WriteString(" | ")

	for i := 0; i < len(row); i++ {
		c := row[i]
		if c < 32 || c > 126 {
			c = '.'
		}
		if rowOffset+int64(i) == cursor {
			r.buf.WriteString(escBG256(cursorHighlight))
			r.buf.WriteByte(c)
			r.buf.WriteString(escReset)
		} else {
			r.buf.WriteByte(c)
		}
	}
}

func modeLabel(mode Mode, pending string) string {
	switch mode {
	case ModeByteInsert:
		return fmt.Sprintf("INSERT BYTE [%s_]", pending)
	default:
		return "NORMAL"
	}
}
