package editbuf

// blockKind discriminates a block's storage provenance: a borrowed,
// read-only view into the byte source, or owned, mutable patch storage.
// Flattened to a kind byte plus a shared []byte field rather than an
// interface, so blocks stay cheap to copy and slice.
type blockKind uint8

const (
	sourceView blockKind = iota
	patchBlock
)

// block is one entry of the block list: a contiguous run of logical bytes,
// either borrowed from the byte source (sourceView) or owned by this block
// (patchBlock). A block with len(bytes) == 0 is a tombstone: legal
// transitionally, skipped by every operation, and removed opportunistically
// by compaction.
type block struct {
	kind  blockKind
	bytes []byte
}

func (b block) len() int          { return len(b.bytes) }
func (b block) isTombstone() bool { return len(b.bytes) == 0 }

// sliceBlock returns a new block referencing b.bytes[i:j], capped to that
// range's own capacity (the three-index slice form) so that a later append
// through either half of a split block can never grow into the other
// half's backing storage. Insert's split path produces two adjacent blocks
// out of one backing array; capping keeps them truly independent.
func sliceBlock(b block, i, j int) block {
	return block{kind: b.kind, bytes: b.bytes[i:j:j]}
}

// overlaps reports whether half-open ranges [a0,a1) and [b0,b1) share any
// byte position.
func overlaps(a0, a1, b0, b1 int64) bool { return a1 > b0 && a0 < b1 }

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
