package editbuf

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the sentinel wrapped by any caller-contract violation
// (an insert offset past the end of the buffer, for example). Callers use
// errors.Is to test for it.
var ErrInvalidArgument = errors.New("editbuf: invalid argument")

// assertf panics with a diagnostic if cond is false. It reports an internal
// invariant failure: a bug in this package, not a caller error, so it is
// never returned as an error value.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
