// Package fixture persists and parses RQ01 interop test vectors. A fixture
// bundles a transmission configuration, the original source bytes, and the
// packet set a decoder under test is given, in one binary file that every
// codec implementation must read identically.
package fixture

import (
	"encoding/binary"
	"fmt"
	"os"

	"rqharness/pkg/codec"
)

// Magic opens every RQ01 fixture file.
const Magic = "RQ01"

// headerLen covers magic + OTI + source length field.
const headerLen = 4 + codec.ConfigWireLen + 4

// Write serializes a fixture to a newly created file at path:
// magic, 12-byte OTI, u32 source length, source bytes, u32 packet count,
// then each packet's wire form in the order given. Any failure removes the
// file again; a partial fixture on disk would silently poison interop runs.
func Write(path string, cfg codec.TransmissionConfig, source []byte, packets [][]byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()

	header := make([]byte, 0, headerLen)
	header = append(header, Magic...)
	header = append(header, cfg.Serialize()...)
	header = binary.BigEndian.AppendUint32(header, uint32(len(source)))

	chunks := make([][]byte, 0, 3+len(packets))
	chunks = append(chunks, header, source,
		binary.BigEndian.AppendUint32(nil, uint32(len(packets))))
	chunks = append(chunks, packets...)

	for _, chunk := range chunks {
		if _, werr := f.Write(chunk); werr != nil {
			err = fmt.Errorf("write fixture %s: %w", path, werr)
			return err
		}
	}
	if cerr := f.Close(); cerr != nil {
		err = fmt.Errorf("close fixture %s: %w", path, cerr)
		return err
	}
	return nil
}

// Size returns the exact byte size of a fixture with the given transfer
// length, symbol size, and packet count. The format has no variable parts
// beyond these three numbers.
func Size(transferLength int, symbolSize uint16, packetCount int) int {
	return headerLen + transferLength + 4 + packetCount*(codec.PayloadIDLen+int(symbolSize))
}
