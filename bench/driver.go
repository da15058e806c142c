// Package bench repeats one kind of write against a single cell and reports
// throughput, then reads the cell back and reports its value and read latency.
package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/challenai/hincr"
	"github.com/challenai/hincr/codec"
	"github.com/challenai/hincr/logger"
)

// ProgressStride is the number of operations between progress lines.
const ProgressStride = 1000

const maxPrealloc = 1 << 20

// Table is the storage a run writes to. *hincr.Table implements it.
type Table interface {
	SetAutoFlush(autoFlush bool)
	Apply(ctx context.Context, cell hincr.Cell, op hincr.WriteOp) error
	Flush(ctx context.Context) error
	Get(ctx context.Context, cell hincr.Cell) ([]byte, error)
	CloseContext(ctx context.Context) error
}

// Opener opens the named table.
type Opener func(ctx context.Context, table string) (Table, error)

// Phase is where a run is. Runs move strictly forward through the phases.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Flushing
	ReadingResult
	Done
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Flushing:
		return "Flushing"
	case ReadingResult:
		return "ReadingResult"
	case Done:
		return "Done"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Result is what a completed run measured.
type Result struct {
	Operations  int
	Elapsed     time.Duration
	Value       int64
	ReadLatency time.Duration
	Latencies   []time.Duration
}

// Driver runs a single benchmark. A Driver is used once.
type Driver struct {
	args  Args
	open  Opener
	out   io.Writer
	log   logger.Logger
	cdc   codec.Codec
	now   func() time.Time
	phase Phase
}

// NewDriver returns a driver that writes its report to out and diagnostics
// to log.
func NewDriver(args Args, open Opener, out io.Writer, log logger.Logger) *Driver {
	return &Driver{
		args: args,
		open: open,
		out:  out,
		log:  log,
		cdc:  &codec.DefaultCodec{},
		now:  time.Now,
	}
}

func (d *Driver) Phase() Phase {
	return d.phase
}

// Run opens the table, performs the writes, flushes and reads the cell back.
// The table is closed on every path once opened. Failures are not retried.
func (d *Driver) Run(ctx context.Context) (res Result, err error) {
	if d.phase != NotStarted {
		return res, fmt.Errorf("driver already in phase %s", d.phase)
	}
	tbl, err := d.open(ctx, d.args.Table)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := tbl.CloseContext(ctx); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				d.log.Warnf("close %s: %v", d.args.Table, cerr)
			}
		}
	}()
	tbl.SetAutoFlush(false)

	n, cell, op := d.args.Iterations, d.args.Cell, d.args.Mode.Op()
	res.Latencies = make([]time.Duration, 0, min(n, maxPrealloc))

	fmt.Fprintf(d.out, "Starting %d %ss...\n", n, d.args.Mode)
	d.phase = Running
	start := d.now()
	for i := 0; i < n; i++ {
		opStart := d.now()
		if err = tbl.Apply(ctx, cell, op); err != nil {
			return res, fmt.Errorf("operation %d on %s: %w", i, cell, err)
		}
		res.Latencies = append(res.Latencies, d.now().Sub(opStart))
		if i%ProgressStride == 0 && i > 0 {
			d.progress(i, start)
		}
	}

	d.phase = Flushing
	if err = tbl.Flush(ctx); err != nil {
		return res, err
	}
	res.Operations = n
	res.Elapsed = d.progress(n, start)

	d.phase = ReadingResult
	start = d.now()
	raw, err := tbl.Get(ctx, cell)
	if err != nil {
		return res, err
	}
	if res.Value, err = d.cdc.DecodeLong(raw); err != nil {
		return res, fmt.Errorf("value at %s: %w", cell, err)
	}
	res.ReadLatency = d.now().Sub(start)
	fmt.Fprintf(d.out, "Current value: %d, retrieved in: %d ms.\n", res.Value, res.ReadLatency.Milliseconds())

	d.phase = Done
	d.summarize(res)
	return res, nil
}

func (d *Driver) progress(ops int, start time.Time) time.Duration {
	elapsed := d.now().Sub(start)
	fmt.Fprintf(d.out, "Completed %d operations in %d ms.\n", ops, elapsed.Milliseconds())
	return elapsed
}
