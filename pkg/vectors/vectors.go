// Package vectors generates the fixed suite of RQ01 interop fixtures. Each
// named case pins a payload spec (length plus two seed bytes), a symbol
// size, and a packet-selection strategy, so every run — and every codec
// implementation — produces byte-identical files.
package vectors

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"rqharness/pkg/codec"
	"rqharness/pkg/fixture"
	"rqharness/pkg/payload"
	"rqharness/pkg/strategy"
)

// Spec names one test vector and pins everything that determines its bytes.
type Spec struct {
	Name       string
	Filename   string
	DataLen    int
	DataA      byte
	DataB      byte
	SymbolSize uint16
	Strategy   strategy.Strategy
}

// Specs is the reference case table. v07 is the minimum-K boundary case
// (one source symbol); v08 probes recovery from repair symbols alone.
var Specs = []Spec{
	{Name: "v01", Filename: "v01_small_source_only.bin", DataLen: 64, DataA: 7, DataB: 13, SymbolSize: 16,
		Strategy: strategy.NewSourceOnly()},
	{Name: "v02", Filename: "v02_medium_with_repair.bin", DataLen: 1024, DataA: 11, DataB: 23, SymbolSize: 32,
		Strategy: strategy.NewSourcePlusRepair(5)},
	{Name: "v03", Filename: "v03_large_symbol.bin", DataLen: 4096, DataA: 13, DataB: 37, SymbolSize: 256,
		Strategy: strategy.NewSourcePlusRepair(5)},
	{Name: "v04", Filename: "v04_loss_10pct.bin", DataLen: 512, DataA: 17, DataB: 41, SymbolSize: 32,
		Strategy: strategy.NewLossReplace(10, 2)},
	{Name: "v05", Filename: "v05_loss_50pct.bin", DataLen: 512, DataA: 19, DataB: 43, SymbolSize: 32,
		Strategy: strategy.NewLossReplace(50, 2)},
	{Name: "v06", Filename: "v06_padding_uneven.bin", DataLen: 100, DataA: 23, DataB: 47, SymbolSize: 32,
		Strategy: strategy.NewSourcePlusRepair(6)},
	{Name: "v07", Filename: "v07_minimum_k.bin", DataLen: 16, DataA: 29, DataB: 53, SymbolSize: 16,
		Strategy: strategy.NewSourcePlusRepair(9)},
	{Name: "v08", Filename: "v08_repair_only.bin", DataLen: 128, DataA: 31, DataB: 59, SymbolSize: 32,
		Strategy: strategy.NewRepairOnly(10)},
}

// Generate builds one fixture under dir and returns its path. Any failure
// is fatal for the case: the error names the vector and no partial file
// survives.
func Generate(dir string, spec Spec, log zerolog.Logger) (string, error) {
	data := payload.Generate(spec.DataLen, spec.DataA, spec.DataB)

	enc, err := codec.NewEncoder(data, spec.SymbolSize)
	if err != nil {
		return "", fmt.Errorf("vector %s: %w", spec.Name, err)
	}
	cfg := enc.Config()
	block := enc.BlockEncoders()[0]

	packets := spec.Strategy.Evaluate(block.SourcePackets(), block.RepairPackets)

	path := filepath.Join(dir, spec.Filename)
	if err := fixture.Write(path, cfg, data, packets); err != nil {
		return "", fmt.Errorf("vector %s: %w", spec.Name, err)
	}

	log.Info().
		Str("vector", spec.Name).
		Uint64("F", cfg.TransferLength).
		Uint16("T", cfg.SymbolSize).
		Uint8("Z", cfg.SourceBlocks).
		Uint32("K", block.SymbolCount()).
		Int("packets", len(packets)).
		Str("file", path).
		Msg("fixture written")
	return path, nil
}

// GenerateAll runs the whole case table sequentially into dir and returns a
// manifest of the written fixtures, tagged with runID.
func GenerateAll(dir, runID string, log zerolog.Logger) (*fixture.Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create fixture dir %s: %w", dir, err)
	}

	manifest := &fixture.Manifest{RunID: runID}
	for _, spec := range Specs {
		path, err := Generate(dir, spec, log)
		if err != nil {
			return nil, err
		}
		if err := manifest.Add(spec.Name, path); err != nil {
			return nil, err
		}
	}
	return manifest, nil
}
