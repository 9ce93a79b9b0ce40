// Package mem provides in-memory sinks for output buffers.
package mem

import (
	"io"
	"sync"
)

// File is an append-only in-memory sink.
// It is safe for concurrent use by multiple goroutines.
//
// File requires no initialization - just declare and use:
//
//	var f File
//	out, _ := output.NewWriter(&f, nil)
type File struct {
	rw       sync.RWMutex
	segments [][]byte // every segment but the last is full
	size     int64
}

var (
	_ io.Writer   = new(File)
	_ io.ReaderAt = new(File)
	_ io.WriterTo = new(File)
)

const segmentSize = 32 * 1024

// Write appends p. Earlier data is never moved, so growing the file
// costs one allocation per segment.
func (file *File) Write(p []byte) (n int, err error) {
	file.rw.Lock()
	n = file.write(p)
	file.rw.Unlock()
	return
}

func (file *File) write(p []byte) (n int) {
	n = len(p)
	for len(p) > 0 {
		l := len(file.segments)
		if l == 0 || len(file.segments[l-1]) == segmentSize {
			file.segments = append(file.segments, make([]byte, 0, segmentSize))
			l++
		}
		seg := file.segments[l-1]
		c := min(segmentSize-len(seg), len(p))
		file.segments[l-1] = append(seg, p[:c]...)
		p = p[c:]
	}
	file.size += int64(n)
	return
}

// ReadAt reads len(p) bytes into p starting at byte offset off.
// It implements io.ReaderAt interface.
func (file *File) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	file.rw.RLock()
	defer file.rw.RUnlock()
	if off >= file.size {
		return 0, io.EOF
	}
	idx := int(off / segmentSize)
	seg := file.segments[idx][off%segmentSize:]
	for {
		c := copy(p[n:], seg)
		n += c
		if n == len(p) {
			return n, nil
		}
		idx++
		if idx == len(file.segments) {
			return n, io.EOF
		}
		seg = file.segments[idx]
	}
}

// WriteTo writes the entire content to w.
// It implements io.WriterTo interface.
func (file *File) WriteTo(w io.Writer) (n int64, err error) {
	file.rw.RLock()
	defer file.rw.RUnlock()
	for _, seg := range file.segments {
		c, err := w.Write(seg)
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return
}

// Bytes returns a copy of the content.
func (file *File) Bytes() []byte {
	file.rw.RLock()
	defer file.rw.RUnlock()
	b := make([]byte, 0, file.size)
	for _, seg := range file.segments {
		b = append(b, seg...)
	}
	return b
}

// Size returns the current size of the file in bytes.
func (file *File) Size() int64 {
	file.rw.RLock()
	defer file.rw.RUnlock()
	return file.size
}

// Truncate changes the size of the file.
// Growing fills the new space with zero bytes.
func (file *File) Truncate(size int64) error {
	if size < 0 {
		return io.ErrUnexpectedEOF
	}
	file.rw.Lock()
	defer file.rw.Unlock()
	if bias := size - file.size; bias > 0 {
		file.write(make([]byte, bias))
		return nil
	}
	count := int((size + segmentSize - 1) / segmentSize)
	file.segments = file.segments[:count]
	if count > 0 {
		file.segments[count-1] = file.segments[count-1][:size-int64(count-1)*segmentSize]
	}
	file.size = size
	return nil
}

// Sync is a no-op for in-memory files.
func (file *File) Sync() error {
	return nil
}

// Close clears all data stored in the File.
// It is safe to write to the file again after closing.
func (file *File) Close() error {
	file.rw.Lock()
	file.segments = nil
	file.size = 0
	file.rw.Unlock()
	return nil
}
