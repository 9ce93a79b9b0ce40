package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dacapoday/rawout"
	"github.com/dacapoday/rawout/internal/config"
	"github.com/dacapoday/rawout/monitor"
	"github.com/dacapoday/rawout/output"
	"github.com/dacapoday/rawout/sink"
)

type result struct {
	name string
	size int64
	sum  uint64
}

// runEncode encodes every input on its own goroutine, each with its own Output.
func runEncode(ctx context.Context, w io.Writer, cfg *config.File, logger *zap.Logger, outDir string, inputs []string) error {
	hooks := monitor.Multi{monitor.NewLogger(logger)}
	var reg *prometheus.Registry
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		m, err := monitor.NewMetrics(reg)
		if err != nil {
			return err
		}
		hooks = append(hooks, m)
	}

	results := make([]result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		g.Go(func() error {
			r, err := encodeFile(ctx, cfg, hooks, input, outDir)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			logger.Debug("encoded", zap.String("input", input), zap.String("output", r.name), zap.Int64("size", r.size))
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%016x\n", r.name, r.size, r.sum)
	}
	if reg != nil {
		return printMetrics(w, reg)
	}
	return nil
}

func encodeFile(ctx context.Context, cfg *config.File, hook rawout.Observer, input, outDir string) (r result, err error) {
	in, err := os.Open(input)
	if err != nil {
		return
	}
	defer in.Close()

	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".bin"
	path := filepath.Join(outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return
	}
	// runs last; Close leaves the file open when its flush fails
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()
	digest := sink.NewDigest(f)
	out, err := output.NewWriter(digest, cfg.Output(nil, hook))
	if err != nil {
		return
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(nil, 1<<20)
	for line := 1; scanner.Scan(); line++ {
		if err = ctx.Err(); err != nil {
			return
		}
		if err = encodeLine(out, scanner.Text()); err != nil {
			err = fmt.Errorf("line %d: %w", line, err)
			return
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}
	if err = out.Flush(); err != nil {
		return
	}
	r = result{name: name, size: digest.Size(), sum: digest.Sum64()}
	return
}

// encodeLine writes one "type value..." line. Several values of a
// fixed-width type are written with a single bulk copy.
func encodeLine(out *output.Output, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	typ, values := fields[0], fields[1:]
	if len(values) == 0 {
		return fmt.Errorf("%s: no values", typ)
	}

	switch typ {
	case "bool":
		return write(out, values, strconv.ParseBool, out.WriteBool)
	case "i8":
		return write(out, values, signed[int8](8), out.WriteInt8)
	case "u8":
		return write(out, values, unsigned[uint8](8), out.WriteByte)
	case "i16":
		return write(out, values, signed[int16](16), out.WriteInt16)
	case "u16":
		return write(out, values, unsigned[uint16](16), out.WriteUint16)
	case "i32":
		return write(out, values, signed[int32](32), out.WriteInt32)
	case "u32":
		return write(out, values, unsigned[uint32](32), out.WriteUint32)
	case "i64":
		return write(out, values, signed[int64](64), out.WriteInt64)
	case "u64":
		return write(out, values, unsigned[uint64](64), out.WriteUint64)
	case "f32":
		return write(out, values, float[float32](32), out.WriteFloat32)
	case "f64":
		return write(out, values, float[float64](64), out.WriteFloat64)
	case "hex":
		b, err := hex.DecodeString(strings.Join(values, ""))
		if err != nil {
			return err
		}
		return out.WriteBytes(b)
	case "str":
		return out.WriteBytes([]byte(strings.Join(values, " ")))
	}
	return fmt.Errorf("unknown type %q", typ)
}

func write[T output.Fixed](out *output.Output, values []string, parse func(string) (T, error), one func(T) error) error {
	vs := make([]T, len(values))
	for i, s := range values {
		v, err := parse(s)
		if err != nil {
			return err
		}
		vs[i] = v
	}
	if len(vs) == 1 {
		return one(vs[0])
	}
	return output.WriteSlice(out, vs)
}

func signed[T ~int8 | ~int16 | ~int32 | ~int64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 0, bits)
		return T(v), err
	}
}

func unsigned[T ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 0, bits)
		return T(v), err
	}
}

func float[T ~float32 | ~float64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseFloat(s, bits)
		return T(v), err
	}
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s %g\n", mf.GetName(), m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s %g\n", mf.GetName(), m.GetGauge().GetValue())
			}
		}
	}
	return nil
}
