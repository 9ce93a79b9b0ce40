package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/dacapoday/rawout/internal/config"
	"github.com/dacapoday/rawout/output"
)

func TestEncodeLine(t *testing.T) {
	out, err := output.New(output.Config{NoLimit: true})
	require.NoError(t, err)

	ne := binary.NativeEndian
	var want []byte
	for _, tc := range []struct {
		line string
		want []byte
	}{
		{"# comment", nil},
		{"", nil},
		{"bool true false", []byte{1, 0}},
		{"i8 -1", []byte{0xff}},
		{"u8 0x10 2", []byte{0x10, 2}},
		{"i16 -2", ne.AppendUint16(nil, 0xfffe)},
		{"u16 1 2", ne.AppendUint16(ne.AppendUint16(nil, 1), 2)},
		{"i32 7", ne.AppendUint32(nil, 7)},
		{"u32 0xdeadbeef", ne.AppendUint32(nil, 0xdeadbeef)},
		{"i64 -1 1", ne.AppendUint64(ne.AppendUint64(nil, math.MaxUint64), 1)},
		{"u64 5", ne.AppendUint64(nil, 5)},
		{"f32 1.5", ne.AppendUint32(nil, math.Float32bits(1.5))},
		{"f64 0.25 -2", ne.AppendUint64(ne.AppendUint64(nil, math.Float64bits(0.25)), math.Float64bits(-2))},
		{"hex dead beef", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"str hello  world", []byte("hello world")},
	} {
		require.NoError(t, encodeLine(out, tc.line), tc.line)
		want = append(want, tc.want...)
	}
	require.Equal(t, want, out.Bytes())
}

func TestEncodeLineErrors(t *testing.T) {
	out, err := output.New(nil)
	require.NoError(t, err)

	for _, line := range []string{
		"i32",
		"i8 300",
		"u16 -1",
		"bool maybe",
		"hex zz",
		"c128 1",
	} {
		require.Error(t, encodeLine(out, line), line)
	}
	require.Zero(t, out.Position())
}

func TestEncodeLineOverflow(t *testing.T) {
	out, err := output.New(output.Config{Size: 4})
	require.NoError(t, err)
	require.ErrorIs(t, encodeLine(out, "i64 1"), output.ErrOverflow)
}

func TestRunEncode(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("i32 1 2 3\nbool true\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("hex "+strings.Repeat("ab", 100)+"\n"), 0o644))

	cfg := config.Default()
	cfg.BufferSize = 8
	cfg.Metrics = true

	var stdout bytes.Buffer
	require.NoError(t, runEncode(context.Background(), &stdout, cfg, zap.NewNop(), dir, []string{a, b}))

	gotA, err := os.ReadFile(filepath.Join(dir, "a.bin"))
	require.NoError(t, err)
	ne := binary.NativeEndian
	wantA := ne.AppendUint32(ne.AppendUint32(ne.AppendUint32(nil, 1), 2), 3)
	wantA = append(wantA, 1)
	require.Equal(t, wantA, gotA)

	gotB, err := os.ReadFile(filepath.Join(dir, "b.bin"))
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0xab}, 100), gotB)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Equal(t, fmt.Sprintf("a.bin\t13\t%016x", xxhash.Sum64(wantA)), lines[0])
	require.Contains(t, lines[1], "b.bin\t100\t")
	require.Contains(t, stdout.String(), "rawout_flush_bytes_total 113")
}

func TestRunEncodeBadInput(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("i32 1\nnope 2\n"), 0o644))

	err := runEncode(context.Background(), &bytes.Buffer{}, config.Default(), zap.NewNop(), dir, []string{bad})
	require.ErrorContains(t, err, "line 2")
	require.NoFileExists(t, filepath.Join(dir, "bad.bin"))

	err = runEncode(context.Background(), &bytes.Buffer{}, config.Default(), zap.NewNop(), dir, []string{filepath.Join(dir, "missing.txt")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "v.txt")
	require.NoError(t, os.WriteFile(in, []byte("u8 65 66 67\n"), 0o644))

	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetArgs([]string{"encode", "--unbounded", "--buffer-size", "2", "-o", dir, in})
	require.NoError(t, root.Execute())
	require.Contains(t, stdout.String(), "v.bin\t3\t")

	stdout.Reset()
	root = newRootCmd()
	root.SetOut(&stdout)
	root.SetArgs([]string{"dump", "--hex", filepath.Join(dir, "v.bin")})
	require.NoError(t, root.Execute())
	require.Equal(t, "00000000  41 42 43"+strings.Repeat("   ", 13)+"  |ABC|\n", stdout.String())

	stdout.Reset()
	root = newRootCmd()
	root.SetOut(&stdout)
	root.SetArgs([]string{"dump", filepath.Join(dir, "v.bin")})
	require.NoError(t, root.Execute())
	require.Equal(t, "ABC", stdout.String())

	root = newRootCmd()
	root.SetArgs([]string{"encode", "--buffer-size", "8", "--max-buffer-size", "4", in})
	require.ErrorIs(t, root.Execute(), output.ErrInvalidBufferSize)
}

func TestDumpRows(t *testing.T) {
	var buf bytes.Buffer
	data := append([]byte("0123456789abcdef"), 0, 1)
	require.NoError(t, dumpRows(&buf, data, 16))
	require.Equal(t,
		"00000000  30 31 32 33 34 35 36 37 38 39 61 62 63 64 65 66  |0123456789abcdef|\n"+
			"00000010  00 01"+strings.Repeat("   ", 14)+"  |..|\n",
		buf.String())
}
