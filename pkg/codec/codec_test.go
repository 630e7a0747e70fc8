package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rqharness/pkg/payload"
)

func TestConfig_WireRoundTrip(t *testing.T) {
	cfg := TransmissionConfig{
		TransferLength:  1048576,
		SymbolSize:      1024,
		SourceBlocks:    1,
		SubBlocks:       1,
		SymbolAlignment: 1,
	}
	wire := cfg.Serialize()
	require.Len(t, wire, ConfigWireLen)

	parsed, err := ParseConfig(wire)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestConfig_FortyBitTransferLength(t *testing.T) {
	cfg := TransmissionConfig{TransferLength: 0x12_3456_789A, SymbolSize: 64}
	parsed, err := ParseConfig(cfg.Serialize())
	require.NoError(t, err)
	assert.Equal(t, cfg.TransferLength, parsed.TransferLength)
}

func TestParseConfig_WrongLength(t *testing.T) {
	_, err := ParseConfig(make([]byte, 11))
	assert.Error(t, err)
}

func TestPayloadID_WireRoundTrip(t *testing.T) {
	id := PayloadID{SourceBlock: 3, SymbolID: 0xABCDEF}
	wire := id.Serialize()
	require.Len(t, wire, PayloadIDLen)
	assert.Equal(t, []byte{0x03, 0xAB, 0xCD, 0xEF}, wire)

	parsed, err := ParsePayloadID(wire)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestPacket_WireRoundTrip(t *testing.T) {
	pkt := EncodingPacket{
		ID:   PayloadID{SourceBlock: 0, SymbolID: 42},
		Data: payload.Generate(32, 5, 9),
	}
	wire := pkt.Serialize()
	require.Len(t, wire, PayloadIDLen+32)

	parsed, err := ParsePacket(wire)
	require.NoError(t, err)
	assert.Equal(t, pkt, parsed)
}

func TestEncoder_ConfigAndSymbolCount(t *testing.T) {
	data := payload.Generate(1024, 11, 23)
	enc, err := NewEncoder(data, 32)
	require.NoError(t, err)

	cfg := enc.Config()
	assert.Equal(t, uint64(1024), cfg.TransferLength)
	assert.Equal(t, uint16(32), cfg.SymbolSize)
	assert.Equal(t, uint8(1), cfg.SourceBlocks)

	blocks := enc.BlockEncoders()
	require.Len(t, blocks, 1)
	assert.GreaterOrEqual(t, blocks[0].SymbolCount(), uint32(1024/32))

	src := blocks[0].SourcePackets()
	require.Len(t, src, int(blocks[0].SymbolCount()))
	for i, pkt := range src {
		assert.Equal(t, uint32(i), pkt.ID.SymbolID)
		assert.Len(t, pkt.Data, 32)
	}
}

func TestEncoder_RepairESIsFollowSource(t *testing.T) {
	data := payload.Generate(512, 17, 41)
	enc, err := NewEncoder(data, 32)
	require.NoError(t, err)

	block := enc.BlockEncoders()[0]
	k := block.SymbolCount()
	repair := block.RepairPackets(0, 4)
	require.Len(t, repair, 4)
	for i, pkt := range repair {
		assert.Equal(t, k+uint32(i), pkt.ID.SymbolID)
		assert.Len(t, pkt.Data, 32)
	}
}

func TestDecoder_AllSourcePackets(t *testing.T) {
	data := payload.Generate(1024, 11, 23)
	enc, err := NewEncoder(data, 32)
	require.NoError(t, err)

	dec, err := NewDecoder(enc.Config())
	require.NoError(t, err)

	var result []byte
	for _, pkt := range enc.BlockEncoders()[0].SourcePackets() {
		out, done, err := dec.Submit(pkt)
		require.NoError(t, err)
		if done {
			result = out
			break
		}
	}
	require.NotNil(t, result, "decoder never reported completion")
	assert.Equal(t, data, result)
}

func TestDecoder_PartialSourcePlusRepair(t *testing.T) {
	data := payload.Generate(512, 19, 43)
	enc, err := NewEncoder(data, 32)
	require.NoError(t, err)

	block := enc.BlockEncoders()[0]
	src := block.SourcePackets()
	k := len(src)
	dropped := 2
	repair := block.RepairPackets(0, uint32(dropped+3))

	dec, err := NewDecoder(enc.Config())
	require.NoError(t, err)

	delivered := make([]EncodingPacket, 0, k-dropped+len(repair))
	delivered = append(delivered, src[:k-dropped]...)
	delivered = append(delivered, repair...)

	var result []byte
	for _, pkt := range delivered {
		out, done, err := dec.Submit(pkt)
		require.NoError(t, err)
		if done {
			result = out
			break
		}
	}
	require.NotNil(t, result, "decoder never reported completion")
	assert.Equal(t, data, result)
}

func TestNewEncoder_ZeroSymbolSize(t *testing.T) {
	_, err := NewEncoder([]byte{1, 2, 3}, 0)
	assert.Error(t, err)
}
