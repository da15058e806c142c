package bench

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
)

// Summary holds per-operation latency percentiles in milliseconds.
type Summary struct {
	Mean, P50, P90, P99, Max float64
	Throughput               float64 // ops per second
}

func (s Summary) String() string {
	return fmt.Sprintf("mean %.3fms p50 %.3fms p90 %.3fms p99 %.3fms max %.3fms, %s ops/sec",
		s.Mean, s.P50, s.P90, s.P99, s.Max, humanize.CommafWithDigits(s.Throughput, 2))
}

// Summarize computes a Summary. It fails on an empty run.
func Summarize(lats []time.Duration, elapsed time.Duration) (Summary, error) {
	data := make([]float64, len(lats))
	for i, l := range lats {
		data[i] = float64(l.Microseconds()) / 1000.0
	}
	var s Summary
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.P50, err = stats.Percentile(data, 50); err != nil {
		return s, err
	}
	if s.P90, err = stats.Percentile(data, 90); err != nil {
		return s, err
	}
	if s.P99, err = stats.Percentile(data, 99); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	if elapsed > 0 {
		s.Throughput = float64(len(lats)) / elapsed.Seconds()
	}
	return s, nil
}

func (d *Driver) summarize(res Result) {
	if res.Operations == 0 {
		return
	}
	s, err := Summarize(res.Latencies, res.Elapsed)
	if err != nil {
		d.log.Warnf("latency summary: %v", err)
		return
	}
	d.log.Infof("%d %s operations: %v", res.Operations, d.args.Mode, s)
}
