// Package strategy selects which packets of an encoded block are "delivered"
// to a decoder under test. The four variants model the loss scenarios the
// fixture suite covers, from lossless transmission to full-loss recovery
// from repair symbols alone.
package strategy

import (
	"rqharness/pkg/codec"
)

// RepairFn requests count repair packets from a block encoder, starting at
// the given offset past the last source ESI.
type RepairFn func(start, count uint32) []codec.EncodingPacket

// Kind tags the packet-selection variant. The set is closed: every consumer
// switches over it exhaustively.
type Kind int

const (
	// SourceOnly delivers all K source packets and nothing else.
	SourceOnly Kind = iota
	// SourcePlusRepair delivers all source packets plus Repair extra
	// repair packets.
	SourcePlusRepair
	// LossReplace drops the last DropCount(K, LossPct) source packets and
	// compensates with dropped+Overhead repair packets.
	LossReplace
	// RepairOnly delivers Repair repair packets and zero source packets.
	RepairOnly
)

// Strategy is one packet-selection variant with its parameters. Unused
// fields are zero for kinds that do not take them.
type Strategy struct {
	Kind     Kind
	Repair   uint32 // SourcePlusRepair, RepairOnly: repair packet count
	LossPct  int    // LossReplace: percentage of source packets to drop
	Overhead uint32 // LossReplace: repair packets beyond the dropped count
}

func NewSourceOnly() Strategy                { return Strategy{Kind: SourceOnly} }
func NewSourcePlusRepair(n uint32) Strategy  { return Strategy{Kind: SourcePlusRepair, Repair: n} }
func NewRepairOnly(n uint32) Strategy        { return Strategy{Kind: RepairOnly, Repair: n} }
func NewLossReplace(pct int, overhead uint32) Strategy {
	return Strategy{Kind: LossReplace, LossPct: pct, Overhead: overhead}
}

// DropCount returns how many source packets a loss percentage removes from
// a block of k: floor(k*pct/100), clamped to at least 1 so a small block
// under nonzero loss still drops a packet instead of rounding to zero.
func DropCount(k, pct int) int {
	n := k * pct / 100
	if n < 1 {
		n = 1
	}
	return n
}

// Evaluate applies the strategy to the block's source packets, requesting
// repair packets as needed, and returns the delivered set in wire form.
// Order is fixed for fixture reproducibility: kept source packets in
// ascending ESI, then repair packets in ascending ESI. The source slice is
// never mutated. No decodability check is made; some fixtures deliberately
// carry insufficient redundancy.
func (s Strategy) Evaluate(source []codec.EncodingPacket, repair RepairFn) [][]byte {
	k := len(source)
	switch s.Kind {
	case SourceOnly:
		return serialize(source)
	case SourcePlusRepair:
		packets := serialize(source)
		return append(packets, serialize(repair(0, s.Repair))...)
	case LossReplace:
		dropped := DropCount(k, s.LossPct)
		packets := serialize(source[:k-dropped])
		return append(packets, serialize(repair(0, uint32(dropped)+s.Overhead))...)
	case RepairOnly:
		return serialize(repair(0, s.Repair))
	}
	return nil
}

func serialize(packets []codec.EncodingPacket) [][]byte {
	out := make([][]byte, 0, len(packets))
	for _, pkt := range packets {
		out = append(out, pkt.Serialize())
	}
	return out
}
