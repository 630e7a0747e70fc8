package fixture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"rqharness/pkg/codec"
)

// Fixture is a parsed RQ01 file.
type Fixture struct {
	Config  codec.TransmissionConfig
	Source  []byte
	Packets []codec.EncodingPacket
}

// Read parses and validates an RQ01 fixture. It rejects files whose header
// fields disagree with the actual byte layout: wrong magic, source length
// different from the OTI transfer length, or a packet count that does not
// match the remaining bytes exactly.
func Read(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	if len(raw) < headerLen {
		return nil, fmt.Errorf("fixture %s: truncated header (%d bytes)", path, len(raw))
	}
	if !bytes.Equal(raw[:4], []byte(Magic)) {
		return nil, fmt.Errorf("fixture %s: bad magic %q", path, raw[:4])
	}

	cfg, err := codec.ParseConfig(raw[4 : 4+codec.ConfigWireLen])
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	srcLen := binary.BigEndian.Uint32(raw[4+codec.ConfigWireLen : headerLen])
	if uint64(srcLen) != cfg.TransferLength {
		return nil, fmt.Errorf("fixture %s: source length %d != transfer length %d", path, srcLen, cfg.TransferLength)
	}

	cursor := headerLen
	if len(raw) < cursor+int(srcLen)+4 {
		return nil, fmt.Errorf("fixture %s: truncated source data", path)
	}
	source := make([]byte, srcLen)
	copy(source, raw[cursor:cursor+int(srcLen)])
	cursor += int(srcLen)

	count := binary.BigEndian.Uint32(raw[cursor : cursor+4])
	cursor += 4

	packetLen := codec.PayloadIDLen + int(cfg.SymbolSize)
	if len(raw)-cursor != int(count)*packetLen {
		return nil, fmt.Errorf("fixture %s: %d packet bytes remain, want %d packets of %d",
			path, len(raw)-cursor, count, packetLen)
	}

	packets := make([]codec.EncodingPacket, 0, count)
	for i := uint32(0); i < count; i++ {
		pkt, perr := codec.ParsePacket(raw[cursor : cursor+packetLen])
		if perr != nil {
			return nil, fmt.Errorf("fixture %s: packet %d: %w", path, i, perr)
		}
		packets = append(packets, pkt)
		cursor += packetLen
	}

	return &Fixture{Config: cfg, Source: source, Packets: packets}, nil
}
