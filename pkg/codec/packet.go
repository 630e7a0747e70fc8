package codec

import (
	"encoding/binary"
	"fmt"
)

// PayloadIDLen is the wire size of a PayloadID: 8-bit SBN + 24-bit ESI.
const PayloadIDLen = 4

// PayloadID identifies one encoding symbol: which source block it belongs
// to (SBN) and which symbol within that block (ESI). Source symbols carry
// ESI < K, repair symbols ESI >= K. Within a block the pair is unique and a
// decoder treats packets as an unordered set keyed by it.
type PayloadID struct {
	SourceBlock uint8
	SymbolID    uint32 // 24-bit on the wire
}

// Serialize packs the ID into 4 big-endian bytes.
func (p PayloadID) Serialize() []byte {
	data := make([]byte, PayloadIDLen)
	binary.BigEndian.PutUint32(data, uint32(p.SourceBlock)<<24|p.SymbolID&0xFFFFFF)
	return data
}

// ParsePayloadID unpacks a 4-byte wire ID.
func ParsePayloadID(data []byte) (PayloadID, error) {
	if len(data) < PayloadIDLen {
		return PayloadID{}, fmt.Errorf("payload id needs %d bytes, got %d", PayloadIDLen, len(data))
	}
	v := binary.BigEndian.Uint32(data[:PayloadIDLen])
	return PayloadID{
		SourceBlock: uint8(v >> 24),
		SymbolID:    v & 0xFFFFFF,
	}, nil
}

// EncodingPacket is one symbol plus its identity: the unit a transport would
// ship and the unit persisted in fixtures.
type EncodingPacket struct {
	ID   PayloadID
	Data []byte
}

// Serialize returns the 4+T byte wire form: PayloadID followed by the raw
// symbol bytes.
func (p EncodingPacket) Serialize() []byte {
	data := make([]byte, 0, PayloadIDLen+len(p.Data))
	data = append(data, p.ID.Serialize()...)
	data = append(data, p.Data...)
	return data
}

// ParsePacket decodes a 4+T byte wire packet. The symbol payload is copied
// so the packet does not alias the input buffer.
func ParsePacket(data []byte) (EncodingPacket, error) {
	id, err := ParsePayloadID(data)
	if err != nil {
		return EncodingPacket{}, err
	}
	symbol := make([]byte, len(data)-PayloadIDLen)
	copy(symbol, data[PayloadIDLen:])
	return EncodingPacket{ID: id, Data: symbol}, nil
}
