// Package bytesource provides the immutable, addressable byte source that
// the edit buffer is opened over: a read-only memory mapping of the file
// being edited, so large files never need to be read into a second owned
// buffer.
package bytesource

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Source is a memory-mapped, read-only view of a file's bytes. The edit
// buffer borrows Source.Bytes() for as long as the Source is open; nothing
// in this package or editbuf ever writes through it.
type Source struct {
	file *os.File
	mm   mmap.MMap
}

// Open memory-maps the file at path read-only and returns a Source over its
// full contents. The returned Source must be Closed when no longer needed.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bytesource: open %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bytesource: stat %q: %w", path, err)
	}

	// mmap-go rejects a zero-length mapping outright; an empty file is a
	// legal (if boring) thing to hex-edit, so fall back to a nil byte view
	// rather than erroring out of Open.
	if info.Size() == 0 {
		return &Source{file: f}, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bytesource: mmap %q: %w", path, err)
	}

	return &Source{file: f, mm: mm}, nil
}

// Bytes returns the source's full contents. The caller must not write
// through the returned slice and must not retain it past Close.
func (s *Source) Bytes() []byte {
	if s.mm == nil {
		return nil
	}
	return []byte(s.mm)
}

// Len returns the source's size in bytes.
func (s *Source) Len() int { return len(s.Bytes()) }

// Name returns the path the source was opened from.
func (s *Source) Name() string {
	if s.file == nil {
		return ""
	}
	return s.file.Name()
}

// Close unmaps the source and closes its backing file descriptor.
func (s *Source) Close() error {
	var mmErr error
	if s.mm != nil {
		mmErr = s.mm.Unmap()
	}
	fErr := s.file.Close()
	if mmErr != nil {
		return fmt.Errorf("bytesource: unmap %q: %w", s.Name(), mmErr)
	}
	if fErr != nil {
		return fmt.Errorf("bytesource: close %q: %w", s.Name(), fErr)
	}
	return nil
}
