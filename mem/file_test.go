package mem

import (
	"bytes"
	"io"
	"testing"
)

// TestFileWriteRead tests appending and reading back at offsets
func TestFileWriteRead(t *testing.T) {
	var f File
	defer f.Close()

	for _, s := range []string{"hello", " ", "world"} {
		n, err := f.Write([]byte(s))
		if err != nil || n != len(s) {
			t.Fatalf("Write failed: n=%d, err=%v", n, err)
		}
	}

	buf := make([]byte, 5)
	n, err := f.ReadAt(buf, 6)
	if err != nil || n != 5 || string(buf) != "world" {
		t.Errorf("ReadAt(6): got %q, want %q", buf, "world")
	}

	// Short read at the end returns EOF
	n, err = f.ReadAt(buf, 8)
	if err != io.EOF || n != 3 || string(buf[:n]) != "rld" {
		t.Errorf("ReadAt(8): n=%d err=%v got %q", n, err, buf[:n])
	}

	if got := string(f.Bytes()); got != "hello world" {
		t.Errorf("Bytes = %q", got)
	}
}

// TestFileSegments tests writes that span several segments
func TestFileSegments(t *testing.T) {
	var f File
	defer f.Close()

	chunk := bytes.Repeat([]byte("0123456789abcdef"), 1000) // 16000 bytes
	var want []byte
	for range 5 {
		f.Write(chunk)
		want = append(want, chunk...)
	}

	if size := f.Size(); size != int64(len(want)) {
		t.Fatalf("size = %d, want %d", size, len(want))
	}
	if len(f.segments) != 3 {
		t.Errorf("segments = %d, want 3", len(f.segments))
	}

	// read across the first segment boundary
	buf := make([]byte, 100)
	n, err := f.ReadAt(buf, segmentSize-50)
	if err != nil || n != 100 {
		t.Fatalf("ReadAt failed: n=%d, err=%v", n, err)
	}
	if !bytes.Equal(buf, want[segmentSize-50:segmentSize+50]) {
		t.Error("data mismatch across segment boundary")
	}

	var out bytes.Buffer
	m, err := f.WriteTo(&out)
	if err != nil || m != int64(len(want)) {
		t.Fatalf("WriteTo failed: n=%d, err=%v", m, err)
	}
	if !bytes.Equal(out.Bytes(), want) {
		t.Error("WriteTo content mismatch")
	}
}

// TestFileTruncate tests file truncation and expansion
func TestFileTruncate(t *testing.T) {
	var f File
	defer f.Close()

	f.Write([]byte("hello world"))

	if err := f.Truncate(5); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}
	if size := f.Size(); size != 5 {
		t.Errorf("size after truncate = %d, want 5", size)
	}

	buf := make([]byte, 5)
	if _, err := f.ReadAt(buf, 5); err != io.EOF {
		t.Errorf("ReadAt beyond truncate: err = %v, want EOF", err)
	}

	// Truncate to larger size (expansion with zeros)
	if err := f.Truncate(10); err != nil {
		t.Fatalf("Truncate expand failed: %v", err)
	}
	expected := []byte("hello\x00\x00\x00\x00\x00")
	if got := f.Bytes(); !bytes.Equal(got, expected) {
		t.Errorf("content after expand = %q, want %q", got, expected)
	}

	// appending after a shrink overwrites the dropped tail
	f.Truncate(5)
	f.Write([]byte("!"))
	if got := string(f.Bytes()); got != "hello!" {
		t.Errorf("content after append = %q", got)
	}

	if err := f.Truncate(-1); err != io.ErrUnexpectedEOF {
		t.Errorf("Truncate(-1): err = %v", err)
	}
}

// TestFileTruncateSegmentBoundary shrinks to exactly one full segment
func TestFileTruncateSegmentBoundary(t *testing.T) {
	var f File
	defer f.Close()

	f.Write(make([]byte, segmentSize+10))
	f.Truncate(segmentSize)
	if len(f.segments) != 1 || f.Size() != segmentSize {
		t.Fatalf("segments=%d size=%d", len(f.segments), f.Size())
	}
	f.Write([]byte("x"))
	if len(f.segments) != 2 || f.Size() != segmentSize+1 {
		t.Fatalf("segments=%d size=%d", len(f.segments), f.Size())
	}
}

// TestFileCloseClears tests that Close clears all data
func TestFileCloseClears(t *testing.T) {
	var f File
	f.Write([]byte("abc"))
	if err := f.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if got := f.Size(); got != 0 {
		t.Fatalf("Size after Close = %d, want 0", got)
	}
	buf := make([]byte, 1)
	if n, err := f.ReadAt(buf, 0); err != io.EOF || n != 0 {
		t.Fatalf("ReadAt after Close unexpected n=%d err=%v", n, err)
	}
}

// TestFileEdgeCases tests edge cases and error conditions
func TestFileEdgeCases(t *testing.T) {
	var f File
	defer f.Close()

	_, err := f.ReadAt([]byte{0}, -1)
	if err != io.ErrUnexpectedEOF {
		t.Errorf("ReadAt negative offset: err = %v, want ErrUnexpectedEOF", err)
	}

	n, err := f.Write(nil)
	if err != nil || n != 0 {
		t.Errorf("Write empty: n=%d, err=%v", n, err)
	}

	n, err = f.ReadAt([]byte{}, 0)
	if err != nil || n != 0 {
		t.Errorf("ReadAt empty: n=%d, err=%v", n, err)
	}

	_, err = f.ReadAt([]byte{0}, 0)
	if err != io.EOF {
		t.Errorf("ReadAt empty file: err = %v, want EOF", err)
	}

	if err := f.Sync(); err != nil {
		t.Errorf("Sync failed: %v", err)
	}
}
