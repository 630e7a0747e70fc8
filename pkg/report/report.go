// Package report renders benchmark results as a fixed-width console table.
package report

import (
	"fmt"
	"io"
	"strings"

	"rqharness/pkg/bench"
)

// WriteTable prints one row per result under a
// `Size | T | Encode MB/s | Decode MB/s` header.
func WriteTable(w io.Writer, results []bench.Result) error {
	if _, err := fmt.Fprintf(w, "%-11s| %-7s| %-12s| %-12s\n",
		"Size", "T", "Encode MB/s", "Decode MB/s"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s|%s|%s|%s\n",
		strings.Repeat("-", 11), strings.Repeat("-", 8),
		strings.Repeat("-", 13), strings.Repeat("-", 12)); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%-11s| %-7d| %-12.1f| %-12.1f\n",
			r.Label, r.SymbolSize, r.EncodeMBps, r.DecodeMBps); err != nil {
			return err
		}
	}
	return nil
}
