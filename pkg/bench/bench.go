// Package bench measures encode and decode throughput of the codec with a
// warmup-then-median protocol: untimed warmup repetitions absorb one-time
// lazy-initialization cost, then an odd number of timed trials yields a
// median that is robust to scheduler outliers. Nothing but the operation
// under test runs inside a timed region.
package bench

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"rqharness/pkg/codec"
	"rqharness/pkg/payload"
)

// Benchmark payload seeds. Distinct from every vector spec's seeds so bench
// payloads never collide with fixture payloads.
const (
	benchSeedA = 31
	benchSeedB = 17
)

// decodeRepairOverhead is how many repair packets beyond the dropped count
// the decode benchmark supplies. A tunable test parameter, not a protocol
// requirement; it is not guaranteed minimal for every K.
const decodeRepairOverhead = 2

// Case is one benchmark configuration.
type Case struct {
	Label      string `yaml:"label"`
	DataSize   int    `yaml:"data_size"`
	SymbolSize uint16 `yaml:"symbol_size"`
}

// Cases is the reference table, 256 B through 10 MB.
var Cases = []Case{
	{Label: "256 B", DataSize: 256, SymbolSize: 64},
	{Label: "1 KB", DataSize: 1024, SymbolSize: 64},
	{Label: "10 KB", DataSize: 10240, SymbolSize: 64},
	{Label: "16 KB", DataSize: 16384, SymbolSize: 64},
	{Label: "64 KB", DataSize: 65536, SymbolSize: 64},
	{Label: "128 KB", DataSize: 131072, SymbolSize: 256},
	{Label: "256 KB", DataSize: 262144, SymbolSize: 256},
	{Label: "512 KB", DataSize: 524288, SymbolSize: 1024},
	{Label: "1 MB", DataSize: 1048576, SymbolSize: 1024},
	{Label: "2 MB", DataSize: 2097152, SymbolSize: 2048},
	{Label: "4 MB", DataSize: 4194304, SymbolSize: 2048},
	{Label: "10 MB", DataSize: 10485760, SymbolSize: 4096},
}

// LoadCases reads a YAML case table, overriding the reference table.
func LoadCases(path string) ([]Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case table %s: %w", path, err)
	}
	var cases []Case
	if err := yaml.Unmarshal(raw, &cases); err != nil {
		return nil, fmt.Errorf("parse case table %s: %w", path, err)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("case table %s is empty", path)
	}
	return cases, nil
}

// Result is one benchmark row.
type Result struct {
	Label      string
	SymbolSize uint16
	EncodeMBps float64
	DecodeMBps float64
}

// Driver holds the repetition counts for one measurement.
type Driver struct {
	Warmup int
	Trials int // always odd, so the median needs no averaging
}

// Calibrate picks repetition counts by payload size: large payloads cost
// more per trial, so fewer trials keep wall-clock time bounded while still
// giving a stable median.
func Calibrate(dataSize int) Driver {
	if dataSize >= 1<<20 {
		return Driver{Warmup: 1, Trials: 5}
	}
	return Driver{Warmup: 3, Trials: 11}
}

// Median returns the middle element of the sorted samples. The input is not
// modified.
func Median(samples []time.Duration) time.Duration {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}

// ThroughputMBps converts a data size and a median duration to MB/s
// (bytes per nanosecond scaled by 1000). Zero median reports zero rather
// than dividing by it.
func ThroughputMBps(dataSize int, median time.Duration) float64 {
	ns := median.Nanoseconds()
	if ns == 0 {
		return 0
	}
	return float64(dataSize) * 1000 / float64(ns)
}

// measure runs warmups untimed, then trials timed repetitions of op, and
// returns the median elapsed time. op must perform the complete operation
// under test and nothing else.
func (d Driver) measure(op func() error) (time.Duration, error) {
	for i := 0; i < d.Warmup; i++ {
		if err := op(); err != nil {
			return 0, err
		}
	}
	samples := make([]time.Duration, d.Trials)
	for i := range samples {
		start := time.Now()
		if err := op(); err != nil {
			return 0, err
		}
		samples[i] = time.Since(start)
	}
	return Median(samples), nil
}

// MeasureEncode times the full encode pipeline: from raw bytes through
// materializing every source packet plus max(K/10, 1) repair packets per
// block. The codec solves its constraint matrix lazily on the first packet
// materialization, so packet generation must stay inside the timed region
// every trial.
func (d Driver) MeasureEncode(data []byte, symbolSize uint16) (time.Duration, error) {
	return d.measure(func() error {
		enc, err := codec.NewEncoder(data, symbolSize)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		for _, block := range enc.BlockEncoders() {
			k := uint32(len(block.SourcePackets()))
			n := k / 10
			if n < 1 {
				n = 1
			}
			block.RepairPackets(0, n)
		}
		return nil
	})
}

// MeasureDecode times reconstruction from a lossy packet set. The packet
// set is built once before timing and shared read-only across trials: the
// first max(K/10, 1) source packets are dropped and drop+overhead repair
// packets compensate. Each trial deserializes the packets into a fresh
// decoder and stops at the first successful reconstruction or when the
// packet list is exhausted. A reconstruction whose length differs from the
// transfer length means the codec or the packet selection is broken and
// fails the run.
func (d Driver) MeasureDecode(data []byte, symbolSize uint16) (time.Duration, error) {
	enc, err := codec.NewEncoder(data, symbolSize)
	if err != nil {
		return 0, fmt.Errorf("decode setup: %w", err)
	}
	cfg := enc.Config()
	block := enc.BlockEncoders()[0]
	source := block.SourcePackets()

	drop := len(source) / 10
	if drop < 1 {
		drop = 1
	}
	repair := block.RepairPackets(0, uint32(drop)+decodeRepairOverhead)

	wire := make([][]byte, 0, len(source)-drop+len(repair))
	for _, pkt := range source[drop:] {
		wire = append(wire, pkt.Serialize())
	}
	for _, pkt := range repair {
		wire = append(wire, pkt.Serialize())
	}

	return d.measure(func() error {
		dec, err := codec.NewDecoder(cfg)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		for _, raw := range wire {
			pkt, err := codec.ParsePacket(raw)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			out, done, err := dec.Submit(pkt)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			if done {
				if uint64(len(out)) != cfg.TransferLength {
					return fmt.Errorf("decoded length %d != transfer length %d", len(out), cfg.TransferLength)
				}
				return nil
			}
		}
		return nil
	})
}

// RunCase benchmarks encode and decode for one case.
func RunCase(c Case, log zerolog.Logger) (Result, error) {
	data := payload.Generate(c.DataSize, benchSeedA, benchSeedB)
	driver := Calibrate(c.DataSize)

	encodeMedian, err := driver.MeasureEncode(data, c.SymbolSize)
	if err != nil {
		return Result{}, fmt.Errorf("case %s: %w", c.Label, err)
	}
	decodeMedian, err := driver.MeasureDecode(data, c.SymbolSize)
	if err != nil {
		return Result{}, fmt.Errorf("case %s: %w", c.Label, err)
	}

	result := Result{
		Label:      c.Label,
		SymbolSize: c.SymbolSize,
		EncodeMBps: ThroughputMBps(c.DataSize, encodeMedian),
		DecodeMBps: ThroughputMBps(c.DataSize, decodeMedian),
	}
	log.Debug().
		Str("case", c.Label).
		Dur("encode_median", encodeMedian).
		Dur("decode_median", decodeMedian).
		Msg("case measured")
	return result, nil
}

// RunAll benchmarks every case strictly sequentially.
func RunAll(cases []Case, log zerolog.Logger) ([]Result, error) {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		result, err := RunCase(c, log)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
