// Package codec wraps the RaptorQ library behind the capability set the
// harness needs: encode source data into a transmission config plus
// per-block encoders, and reconstruct it with a decoder fed an arbitrary
// subset of source and repair packets. Any RFC 6330 implementation exposing
// the same operations can be substituted.
package codec

import (
	"fmt"

	raptorq "github.com/xssnick/raptorq"
)

// Encoder owns the transmission configuration and the per-block encoders
// derived from one source object. The underlying library codes a single
// block, so Z=1; the per-block shape is kept so a multi-block codec fits
// the same surface.
type Encoder struct {
	cfg    TransmissionConfig
	blocks []*BlockEncoder
}

// NewEncoder partitions data for coding at the given symbol size.
func NewEncoder(data []byte, symbolSize uint16) (*Encoder, error) {
	if symbolSize == 0 {
		return nil, fmt.Errorf("symbol size must be positive")
	}
	rq := raptorq.NewRaptorQ(uint32(symbolSize))
	enc, err := rq.CreateEncoder(data)
	if err != nil {
		return nil, fmt.Errorf("create encoder: %w", err)
	}

	cfg := TransmissionConfig{
		TransferLength:  uint64(len(data)),
		SymbolSize:      symbolSize,
		SourceBlocks:    1,
		SubBlocks:       1,
		SymbolAlignment: 1,
	}
	block := &BlockEncoder{
		sbn: 0,
		k:   enc.BaseSymbolsNum(),
		enc: enc,
	}
	return &Encoder{cfg: cfg, blocks: []*BlockEncoder{block}}, nil
}

// Config returns the immutable transmission configuration.
func (e *Encoder) Config() TransmissionConfig {
	return e.cfg
}

// BlockEncoders returns one encoder per source block, in SBN order.
func (e *Encoder) BlockEncoders() []*BlockEncoder {
	return e.blocks
}

// BlockEncoder materializes the symbols of one source block. Symbol
// generation is lazy in the underlying library: the first call pays the
// constraint-matrix solve.
type BlockEncoder struct {
	sbn uint8
	k   uint32
	enc *raptorq.Encoder
}

// SymbolCount returns K, the number of source symbols in this block.
func (b *BlockEncoder) SymbolCount() uint32 {
	return b.k
}

// SourcePackets returns the K source packets in ascending ESI order.
func (b *BlockEncoder) SourcePackets() []EncodingPacket {
	packets := make([]EncodingPacket, 0, b.k)
	for esi := uint32(0); esi < b.k; esi++ {
		packets = append(packets, b.packet(esi))
	}
	return packets
}

// RepairPackets returns count repair packets with ESIs K+start ..
// K+start+count-1, in ascending ESI order.
func (b *BlockEncoder) RepairPackets(start, count uint32) []EncodingPacket {
	packets := make([]EncodingPacket, 0, count)
	for i := uint32(0); i < count; i++ {
		packets = append(packets, b.packet(b.k+start+i))
	}
	return packets
}

func (b *BlockEncoder) packet(esi uint32) EncodingPacket {
	raw := b.enc.GenSymbol(esi)
	// GenSymbol may reuse its buffer between calls; keep our own copy.
	symbol := make([]byte, len(raw))
	copy(symbol, raw)
	return EncodingPacket{
		ID:   PayloadID{SourceBlock: b.sbn, SymbolID: esi},
		Data: symbol,
	}
}

// Decoder reconstructs a source object from submitted packets.
type Decoder struct {
	cfg       TransmissionConfig
	dec       *raptorq.Decoder
	submitted uint32
	minNeeded uint32
}

// NewDecoder builds a fresh decoder for the given configuration.
func NewDecoder(cfg TransmissionConfig) (*Decoder, error) {
	rq := raptorq.NewRaptorQ(uint32(cfg.SymbolSize))
	dec, err := rq.CreateDecoder(uint32(cfg.TransferLength))
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	symbols := cfg.TransferLength / uint64(cfg.SymbolSize)
	if cfg.TransferLength%uint64(cfg.SymbolSize) != 0 {
		symbols++
	}
	return &Decoder{cfg: cfg, dec: dec, minNeeded: uint32(symbols)}, nil
}

// Submit adds one packet and attempts reconstruction. It returns the
// reconstructed source bytes and true once enough symbols have arrived;
// until then it returns (nil, false, nil). Packets may arrive in any order
// and may be any mix of source and repair symbols.
func (d *Decoder) Submit(pkt EncodingPacket) ([]byte, bool, error) {
	if _, err := d.dec.AddSymbol(pkt.ID.SymbolID, pkt.Data); err != nil {
		return nil, false, fmt.Errorf("add symbol %d: %w", pkt.ID.SymbolID, err)
	}
	d.submitted++
	if d.submitted < d.minNeeded {
		// Fewer than K symbols can never decode; skip the solve attempt.
		return nil, false, nil
	}
	done, data, err := d.dec.Decode()
	if err != nil {
		return nil, false, fmt.Errorf("decode: %w", err)
	}
	if !done || data == nil {
		return nil, false, nil
	}
	return data, true, nil
}
