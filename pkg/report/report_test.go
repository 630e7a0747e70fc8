package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rqharness/pkg/bench"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	results := []bench.Result{
		{Label: "1 KB", SymbolSize: 64, EncodeMBps: 123.45, DecodeMBps: 67.89},
		{Label: "10 MB", SymbolSize: 4096, EncodeMBps: 0, DecodeMBps: 0},
	}
	require.NoError(t, WriteTable(&buf, results))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Size")
	assert.Contains(t, lines[0], "Encode MB/s")
	assert.Contains(t, lines[0], "Decode MB/s")
	assert.Contains(t, lines[2], "1 KB")
	assert.Contains(t, lines[2], "123.5")
	assert.Contains(t, lines[3], "10 MB")
	assert.Contains(t, lines[3], "0.0")
}
