package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rqharness/pkg/payload"
)

func TestMedian_FixedSample(t *testing.T) {
	samples := []time.Duration{5, 1, 9, 3, 7}
	assert.Equal(t, time.Duration(5), Median(samples))
	// Input must stay unsorted.
	assert.Equal(t, []time.Duration{5, 1, 9, 3, 7}, samples)
}

func TestMedian_SingleSample(t *testing.T) {
	assert.Equal(t, 42*time.Millisecond, Median([]time.Duration{42 * time.Millisecond}))
}

func TestThroughput_ZeroMedian(t *testing.T) {
	assert.Equal(t, 0.0, ThroughputMBps(1048576, 0))
}

func TestThroughput_Conversion(t *testing.T) {
	// 1 MiB in 1 ms => 1048576*1000/1e6 MB/s.
	assert.InDelta(t, 1048.576, ThroughputMBps(1<<20, time.Millisecond), 0.001)
}

func TestCalibrate_Thresholds(t *testing.T) {
	small := Calibrate(1<<20 - 1)
	assert.Equal(t, Driver{Warmup: 3, Trials: 11}, small)

	large := Calibrate(1 << 20)
	assert.Equal(t, Driver{Warmup: 1, Trials: 5}, large)
}

func TestMeasure_WarmupNotTimedButCounted(t *testing.T) {
	calls := 0
	d := Driver{Warmup: 3, Trials: 5}
	_, err := d.measure(func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 8, calls)
}

func TestMeasureEncodeDecode_SmallCase(t *testing.T) {
	data := payload.Generate(1024, benchSeedA, benchSeedB)
	d := Driver{Warmup: 1, Trials: 3}

	encodeMedian, err := d.MeasureEncode(data, 64)
	require.NoError(t, err)
	assert.Greater(t, encodeMedian, time.Duration(0))

	decodeMedian, err := d.MeasureDecode(data, 64)
	require.NoError(t, err)
	assert.Greater(t, decodeMedian, time.Duration(0))
}

func TestRunCase_ProducesThroughput(t *testing.T) {
	result, err := RunCase(Case{Label: "1 KB", DataSize: 1024, SymbolSize: 64}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "1 KB", result.Label)
	assert.Equal(t, uint16(64), result.SymbolSize)
	assert.Greater(t, result.EncodeMBps, 0.0)
	assert.Greater(t, result.DecodeMBps, 0.0)
}

func TestReferenceCases_Shape(t *testing.T) {
	require.Len(t, Cases, 12)
	assert.Equal(t, Case{Label: "256 B", DataSize: 256, SymbolSize: 64}, Cases[0])
	assert.Equal(t, Case{Label: "10 MB", DataSize: 10485760, SymbolSize: 4096}, Cases[len(Cases)-1])
	for _, c := range Cases {
		assert.Equal(t, 1, Calibrate(c.DataSize).Trials%2, "case %s trials must be odd", c.Label)
	}
}

func TestLoadCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	body := "- label: tiny\n  data_size: 256\n  symbol_size: 32\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cases, err := LoadCases(path)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, Case{Label: "tiny", DataSize: 256, SymbolSize: 32}, cases[0])
}

func TestLoadCases_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0o644))
	_, err := LoadCases(path)
	assert.Error(t, err)
}
