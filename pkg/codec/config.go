package codec

import (
	"encoding/binary"
	"fmt"
)

// ConfigWireLen is the size of the canonical OTI encoding per RFC 6330:
// 40-bit transfer length, one reserved byte, 16-bit symbol size, 8-bit
// source block count, 16-bit sub-block count, 8-bit symbol alignment.
const ConfigWireLen = 12

// TransmissionConfig carries the Object Transmission Information a decoder
// needs to reconstruct the source object. It is produced once by the encoder
// and never mutated afterwards.
type TransmissionConfig struct {
	TransferLength  uint64 // F, total source bytes (40-bit on the wire)
	SymbolSize      uint16 // T, bytes per symbol
	SourceBlocks    uint8  // Z
	SubBlocks       uint16 // N
	SymbolAlignment uint8  // Al
}

// Serialize returns the canonical 12-byte big-endian wire encoding.
func (c TransmissionConfig) Serialize() []byte {
	data := make([]byte, ConfigWireLen)
	data[0] = byte(c.TransferLength >> 32)
	binary.BigEndian.PutUint32(data[1:5], uint32(c.TransferLength))
	data[5] = 0 // reserved
	binary.BigEndian.PutUint16(data[6:8], c.SymbolSize)
	data[8] = c.SourceBlocks
	binary.BigEndian.PutUint16(data[9:11], c.SubBlocks)
	data[11] = c.SymbolAlignment
	return data
}

// ParseConfig decodes the 12-byte OTI wire form.
func ParseConfig(data []byte) (TransmissionConfig, error) {
	if len(data) != ConfigWireLen {
		return TransmissionConfig{}, fmt.Errorf("OTI must be %d bytes, got %d", ConfigWireLen, len(data))
	}
	return TransmissionConfig{
		TransferLength:  uint64(data[0])<<32 | uint64(binary.BigEndian.Uint32(data[1:5])),
		SymbolSize:      binary.BigEndian.Uint16(data[6:8]),
		SourceBlocks:    data[8],
		SubBlocks:       binary.BigEndian.Uint16(data[9:11]),
		SymbolAlignment: data[11],
	}, nil
}
