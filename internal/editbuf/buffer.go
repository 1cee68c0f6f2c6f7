// Package editbuf implements the edit buffer: a block-list representation of
// a byte stream under edit that supports O(k) insertion, deletion, and
// ranged reads while preserving zero-copy references into an immutable byte
// source. It is the core described by the surrounding hex editor; everything
// else in this module (byte source mapping, rendering, modal input) is a
// thin collaborator around it.
package editbuf

import "fmt"

// DefaultBlockLen is the default quantum at which a touched source-view
// block is promoted to owned patch storage during Delete. It is a Buffer
// construction parameter rather than a fixed constant so tests (and
// callers who know their workload) can tune the fragmentation/copy-cost
// tradeoff.
const DefaultBlockLen = 1024

// Buffer is the edit buffer: a block list over an immutable byte source plus
// the insert/delete/read/total-size operations that maintain its invariants.
//
// The zero value is not usable; construct with Open.
type Buffer struct {
	source   []byte
	blocks   []block
	blockLen int
}

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// BlockLen overrides the BLOCK_LEN promotion quantum used by Delete. Values
// less than 1 are ignored (DefaultBlockLen is kept).
func BlockLen(n int) Option {
	return func(buf *Buffer) {
		if n > 0 {
			buf.blockLen = n
		}
	}
}

// Open constructs an edit buffer with a single initial block spanning
// source (or no blocks at all, if source is empty). The returned Buffer
// never mutates source and holds only a borrowing reference to it: source
// must outlive the Buffer.
func Open(source []byte, opts ...Option) *Buffer {
	buf := &Buffer{source: source, blockLen: DefaultBlockLen}
	for _, opt := range opts {
		opt(buf)
	}
	if len(source) > 0 {
		buf.blocks = []block{{kind: sourceView, bytes: source}}
	}
	return buf
}

// TotalSize returns the sum of all block lengths: the current logical size
// of the document under edit.
func (buf *Buffer) TotalSize() int64 {
	var n int64
	for _, b := range buf.blocks {
		n += int64(b.len())
	}
	return n
}

// Read copies min(len(out), TotalSize()-offset) bytes starting at logical
// offset into out, returning the number of bytes copied. A request entirely
// past the end of the document, or of zero length, copies nothing and
// returns 0; there is no error return, matching the read(...) contract,
// which truncates silently rather than failing.
func (buf *Buffer) Read(offset int64, out []byte) int64 {
	if offset < 0 || len(out) == 0 {
		return 0
	}
	total := buf.TotalSize()
	if offset >= total {
		return 0
	}

	end := offset + int64(len(out))
	var accum, n int64
	for _, b := range buf.blocks {
		blen := int64(b.len())
		if blen == 0 {
			continue
		}
		b0, b1 := accum, accum+blen
		accum = b1

		if b1 <= offset {
			continue
		}
		if b0 >= end {
			break
		}

		start := max64(offset, b0)
		stop := min64(end, b1)
		copy(out[start-offset:stop-offset], b.bytes[start-b0:stop-b0])
		n += stop - start
	}
	return n
}

// Insert inserts p so that its first byte lands at logical offset. offset
// must be in [0, TotalSize()]; any other value is ErrInvalidArgument.
// Inserting zero bytes is a no-op.
//
// The inserted bytes are copied into a freshly owned patch block; Insert
// never retains p itself.
func (buf *Buffer) Insert(offset int64, p []byte) error {
	if offset < 0 {
		return fmt.Errorf("%w: insert offset %d < 0", ErrInvalidArgument, offset)
	}
	total := buf.TotalSize()
	if offset > total {
		return fmt.Errorf("%w: insert offset %d exceeds size %d", ErrInvalidArgument, offset, total)
	}
	if len(p) == 0 {
		return nil
	}

	nb := block{kind: patchBlock, bytes: append([]byte(nil), p...)}

	switch {
	case offset == total:
		buf.blocks = append(buf.blocks, nb)

	case offset == 0:
		blocks := make([]block, 0, len(buf.blocks)+1)
		blocks = append(blocks, nb)
		blocks = append(blocks, buf.blocks...)
		buf.blocks = blocks

	default:
		buf.splitInsert(offset, nb)
	}

	if got := buf.TotalSize(); got != total+int64(len(p)) {
		assertf(false, "invalid insert!: total size %d after insert, want %d", got, total+int64(len(p)))
	}
	return nil
}

// locate scans forward for the first non-tombstone block whose logical
// range contains offset, returning its index and logical start. Tombstones
// are transparent: they never match and contribute nothing to the running
// offset. Callers must ensure 0 <= offset < TotalSize().
func (buf *Buffer) locate(offset int64) (idx int, b0 int64) {
	var accum int64
	for i, b := range buf.blocks {
		n := int64(b.len())
		if n == 0 {
			continue
		}
		if offset < accum+n {
			return i, accum
		}
		accum += n
	}
	return len(buf.blocks), accum
}

// splitInsert handles the interior insert case: 0 < offset < TotalSize().
// If offset falls exactly on a block boundary, the insert collapses to a
// plain splice with no three-way split.
func (buf *Buffer) splitInsert(offset int64, nb block) {
	idx, b0 := buf.locate(offset)
	assertf(idx < len(buf.blocks), "locate(%d) ran off the end of %d blocks", offset, len(buf.blocks))
	b := buf.blocks[idx]

	if offset == b0 {
		blocks := make([]block, 0, len(buf.blocks)+1)
		blocks = append(blocks, buf.blocks[:idx]...)
		blocks = append(blocks, nb)
		blocks = append(blocks, buf.blocks[idx:]...)
		buf.blocks = blocks
		return
	}

	inner := int(offset - b0)
	pre := sliceBlock(b, 0, inner)
	post := sliceBlock(b, inner, b.len())

	if pre.len()+len(nb.bytes)+post.len() != b.len()+len(nb.bytes) {
		assertf(false, "invalid insert!: split lengths %d+%d+%d don't balance against %d+%d",
			pre.len(), len(nb.bytes), post.len(), b.len(), len(nb.bytes))
	}

	blocks := make([]block, 0, len(buf.blocks)+2)
	blocks = append(blocks, buf.blocks[:idx]...)
	blocks = append(blocks, pre, nb, post)
	blocks = append(blocks, buf.blocks[idx+1:]...)
	buf.blocks = blocks
}

// Delete removes the n logical bytes starting at offset. A request
// extending past TotalSize() is clamped rather than rejected; a negative
// offset or length is ErrInvalidArgument. Zero-length deletes, and deletes
// entirely past the end of the document, are no-ops.
func (buf *Buffer) Delete(offset, n int64) error {
	if offset < 0 {
		return fmt.Errorf("%w: delete offset %d < 0", ErrInvalidArgument, offset)
	}
	if n < 0 {
		return fmt.Errorf("%w: delete length %d < 0", ErrInvalidArgument, n)
	}
	if n == 0 {
		return nil
	}

	total := buf.TotalSize()
	if offset >= total {
		return nil
	}
	d0, d1 := offset, offset+n
	if d1 > total {
		d1 = total
	}
	n = d1 - d0

	buf.promoteOverlapping(d0, d1)
	buf.trimOverlapping(d0, d1)
	buf.compactTombstones()

	if got := buf.TotalSize(); got != total-n {
		assertf(false, "total size %d after delete, want %d", got, total-n)
	}
	return nil
}

// promoteOverlapping is delete's Phase A: every source-view block
// overlapping [d0,d1) is promoted, at BLOCK_LEN-aligned granularity, into
// up to three blocks (untouched source-view prefix, owned patch copy,
// untouched source-view suffix) so that Phase B is always free to trim or
// shift bytes without ever mutating the byte source.
//
// The inner offset within a touched block is clamped to the block's own
// start rather than (as an earlier draft of the promotion formula read) to
// the overlap's own start; clamping to 0 is what keeps a delete that begins
// before a block from promoting a phantom negative-offset region of it.
func (buf *Buffer) promoteOverlapping(d0, d1 int64) {
	blocks := make([]block, 0, len(buf.blocks))
	var accum int64
	for _, b := range buf.blocks {
		blen := int64(b.len())
		b0, b1 := accum, accum+blen
		accum = b1

		if blen == 0 || b.kind != sourceView || !overlaps(b0, b1, d0, d1) {
			blocks = append(blocks, b)
			continue
		}

		p := int(max64(d0-b0, 0))
		q := int(min64(d1, b1) - b0)
		L := int(blen)

		if L < buf.blockLen {
			blocks = append(blocks, block{kind: patchBlock, bytes: append([]byte(nil), b.bytes...)})
			continue
		}

		pAlign := (p / buf.blockLen) * buf.blockLen
		qAlign := ((q + buf.blockLen - 1) / buf.blockLen) * buf.blockLen
		if qAlign > L {
			qAlign = L
		}

		if pAlign > 0 {
			blocks = append(blocks, sliceBlock(b, 0, pAlign))
		}
		blocks = append(blocks, block{kind: patchBlock, bytes: append([]byte(nil), b.bytes[pAlign:qAlign]...)})
		if qAlign < L {
			blocks = append(blocks, sliceBlock(b, qAlign, L))
		}
	}
	buf.blocks = blocks
}

// trimOverlapping is delete's Phase B: a second forward scan classifying
// every block intersecting [d0,d1) by overlap shape and shrinking it in
// place. The interior-hole case shifts bytes within the block, which is
// only legal because Phase A already guaranteed any such block is a patch.
func (buf *Buffer) trimOverlapping(d0, d1 int64) {
	var accum int64
	for i := range buf.blocks {
		b := &buf.blocks[i]
		blen := int64(b.len())
		if blen == 0 {
			continue
		}
		b0, b1 := accum, accum+blen
		accum = b1

		if !overlaps(b0, b1, d0, d1) {
			continue
		}

		switch {
		case d0 <= b0 && d1 >= b1: // full cover
			b.bytes = b.bytes[:0:0]

		case d0 <= b0 && b0 < d1 && d1 < b1: // covers start
			cut := int(d1 - b0)
			b.bytes = b.bytes[cut:len(b.bytes):len(b.bytes)]

		case b0 < d0 && d0 < b1 && d1 >= b1: // covers end
			cut := int(d0 - b0)
			b.bytes = b.bytes[:cut:cut]

		case b0 < d0 && d1 < b1: // interior hole
			assertf(b.kind == patchBlock, "interior-hole delete on a non-patch block")
			lo, hi := int(d0-b0), int(d1-b0)
			copy(b.bytes[lo:], b.bytes[hi:])
			b.bytes = b.bytes[:len(b.bytes)-int(d1-d0)]
		}
	}
}

// compactTombstones drops zero-length blocks from the block list. Nothing
// in Read, Insert, or Delete depends on this having run (tombstones are
// always skipped), but without it a long editing session would grow the
// block list unboundedly, so Delete calls it opportunistically once per
// operation.
func (buf *Buffer) compactTombstones() {
	out := buf.blocks[:0]
	for _, b := range buf.blocks {
		if b.len() == 0 {
			continue
		}
		out = append(out, b)
	}
	buf.blocks = out
}
