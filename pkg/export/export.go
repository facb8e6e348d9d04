// Package export writes audit records in interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/foundry/core/audit"
)

// Formats accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Write encodes records to w in format.
func Write(w io.Writer, format string, records []audit.Record) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, records)
	case FormatCSV:
		return WriteCSV(w, records)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteJSON writes the records to w as a JSON array.
func WriteJSON(w io.Writer, records []audit.Record) error {
	if records == nil {
		records = []audit.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteCSV writes the records to w in CSV format with a header row.
func WriteCSV(w io.Writer, records []audit.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "timestamp", "op", "scope", "key", "outcome", "error", "duration_ms"}); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			r.ID,
			r.Timestamp.Format(time.RFC3339Nano),
			r.Op,
			r.Scope,
			r.Key,
			r.Outcome,
			r.Error,
			strconv.FormatFloat(r.DurationMS, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
