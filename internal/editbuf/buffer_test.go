package editbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/hexwrench/internal/editbuf"
)

func readAll(t testing.TB, buf *Buffer) string {
	t.Helper()
	total := buf.TotalSize()
	out := make([]byte, total)
	n := buf.Read(0, out)
	require.Equal(t, total, n, "Read should return all %d bytes", total)
	return string(out)
}

// TestScenarios reproduces the literal end-to-end scenarios: starting from
// source "ABCDEFGHIJ" (size 10), a fixed sequence of inserts/deletes must
// produce exactly these byte sequences regardless of internal block layout.
func TestScenarios(t *testing.T) {
	const source = "ABCDEFGHIJ"

	t.Run("prepend twice then delete", func(t *testing.T) {
		buf := Open([]byte(source))

		require.NoError(t, buf.Insert(0, []byte("<3 ")))
		assert.EqualValues(t, 13, buf.TotalSize())
		assert.Equal(t, "<3 ABCDEFGHIJ", readAll(t, buf))

		require.NoError(t, buf.Insert(0, []byte(":) ")))
		assert.EqualValues(t, 16, buf.TotalSize())
		assert.Equal(t, ":) <3 ABCDEFGHIJ", readAll(t, buf))

		require.NoError(t, buf.Delete(1, 7))
		assert.EqualValues(t, 9, buf.TotalSize())
		assert.Equal(t, ":CDEFGHIJ", readAll(t, buf))
	})

	t.Run("delete everything", func(t *testing.T) {
		buf := Open([]byte(source))
		require.NoError(t, buf.Delete(0, 10))
		assert.EqualValues(t, 0, buf.TotalSize())
		out := make([]byte, 0)
		assert.EqualValues(t, 0, buf.Read(0, out))
	})

	t.Run("append", func(t *testing.T) {
		buf := Open([]byte(source))
		require.NoError(t, buf.Insert(10, []byte("!!")))
		assert.EqualValues(t, 12, buf.TotalSize())

		got := make([]byte, 2)
		require.EqualValues(t, 2, buf.Read(10, got))
		assert.Equal(t, "!!", string(got))

		got = make([]byte, 10)
		require.EqualValues(t, 10, buf.Read(0, got))
		assert.Equal(t, "ABCDEFGHIJ", string(got))
	})

	t.Run("interior delete then insert", func(t *testing.T) {
		buf := Open([]byte(source))
		require.NoError(t, buf.Delete(3, 4))
		assert.EqualValues(t, 6, buf.TotalSize())
		assert.Equal(t, "ABCHIJ", readAll(t, buf))

		require.NoError(t, buf.Insert(3, []byte("xyz")))
		assert.Equal(t, "ABCxyzHIJ", readAll(t, buf))
	})
}

// TestInsertInverseOfDelete checks property 3: insert at k of bytes B
// followed by delete at [k, k+|B|) returns the buffer to its pre-insert
// logical content.
func TestInsertInverseOfDelete(t *testing.T) {
	const source = "ABCDEFGHIJ"
	for _, k := range []int64{0, 3, 10} {
		buf := Open([]byte(source))
		before := readAll(t, buf)

		require.NoError(t, buf.Insert(k, []byte("xyz")))
		require.NoError(t, buf.Delete(k, 3))

		assert.Equal(t, before, readAll(t, buf), "round trip at k=%d", k)
		assert.EqualValues(t, len(source), buf.TotalSize())
	}
}

func TestReadTruncatesPastEnd(t *testing.T) {
	buf := Open([]byte("ABCDE"))
	out := make([]byte, 10)
	n := buf.Read(3, out)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, "DE", string(out[:n]))
}

func TestReadZeroLength(t *testing.T) {
	buf := Open([]byte("ABCDE"))
	assert.EqualValues(t, 0, buf.Read(0, nil))
}

func TestOpenEmptySource(t *testing.T) {
	buf := Open(nil)
	assert.EqualValues(t, 0, buf.TotalSize())
	require.NoError(t, buf.Insert(0, []byte("hi")))
	assert.Equal(t, "hi", readAll(t, buf))
}

func TestInsertRejectsOffsetPastEnd(t *testing.T) {
	buf := Open([]byte("ABC"))
	err := buf.Insert(4, []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInsertRejectsNegativeOffset(t *testing.T) {
	buf := Open([]byte("ABC"))
	err := buf.Insert(-1, []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeleteClampsPastEnd(t *testing.T) {
	buf := Open([]byte("ABCDE"))
	require.NoError(t, buf.Delete(3, 1000))
	assert.Equal(t, "ABC", readAll(t, buf))
}

func TestDeleteRejectsNegativeLength(t *testing.T) {
	buf := Open([]byte("ABC"))
	err := buf.Delete(0, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSourceNeverMutated(t *testing.T) {
	source := []byte("ABCDEFGHIJ")
	original := append([]byte(nil), source...)

	buf := Open(source)
	require.NoError(t, buf.Insert(3, []byte("xyz")))
	require.NoError(t, buf.Delete(0, 2))
	require.NoError(t, buf.Insert(buf.TotalSize(), []byte("!!")))

	assert.Equal(t, original, source, "byte source must never be mutated by edits")
}

// TestBlockLenVariants exercises the interior delete-then-insert scenario
// above with several BLOCK_LEN quanta, including 1 (every touched byte promotes individually) and a
// quantum larger than the source itself.
func TestBlockLenVariants(t *testing.T) {
	for _, blockLen := range []int{1, 2, 4, 1024} {
		t.Run("", func(t *testing.T) {
			buf := Open([]byte("ABCDEFGHIJ"), BlockLen(blockLen))
			require.NoError(t, buf.Delete(3, 4))
			assert.Equal(t, "ABCHIJ", readAll(t, buf))
			require.NoError(t, buf.Insert(3, []byte("xyz")))
			assert.Equal(t, "ABCxyzHIJ", readAll(t, buf))
		})
	}
}

// TestMultiQuantumDelete deletes a span wider than a single BLOCK_LEN
// quantum out of one large source-view block, checking that promotion
// covers the whole overlapped region rather than just the first quantum.
func TestMultiQuantumDelete(t *testing.T) {
	source := make([]byte, 64)
	for i := range source {
		source[i] = byte(i)
	}
	buf := Open(source, BlockLen(8))
	require.NoError(t, buf.Delete(5, 20)) // spans several 8-byte quanta

	want := append(append([]byte(nil), source[:5]...), source[25:]...)
	assert.Equal(t, string(want), readAll(t, buf))
}
