package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// runDump copies the file to w, or prints a hex dump when forced or when w is a terminal.
func runDump(w io.Writer, path string, forceHex bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	perRow := 16
	f, ok := w.(*os.File)
	tty := ok && term.IsTerminal(int(f.Fd()))
	if tty {
		// wide terminals get 32 bytes per row
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width >= rowWidth(32) {
			perRow = 32
		}
	}
	if !tty && !forceHex {
		_, err = w.Write(data)
		return err
	}
	return dumpRows(w, data, perRow)
}

func rowWidth(perRow int) int {
	return 8 + 2 + perRow*3 + 2 + perRow
}

// dumpRows prints offset, hex bytes and printable ASCII per row.
func dumpRows(w io.Writer, data []byte, perRow int) error {
	var sb strings.Builder
	for off := 0; off < len(data); off += perRow {
		row := data[off:min(off+perRow, len(data))]
		sb.Reset()
		fmt.Fprintf(&sb, "%08x  ", off)
		for i := range perRow {
			if i < len(row) {
				fmt.Fprintf(&sb, "%02x ", row[i])
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString(" |")
		for _, b := range row {
			if b >= 0x20 && b < 0x7f {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
