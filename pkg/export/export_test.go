package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/foundry/core/audit"
)

func TestWriteCSV(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	recs := []audit.Record{
		{ID: "1", Timestamp: ts, Op: "create", Scope: "connectors", Key: ".json", Outcome: "ok", DurationMS: 0.25},
		{ID: "2", Timestamp: ts, Op: "make", Scope: "frog-world", Key: "obstacle-entity", Outcome: "failed", Error: "boom, again"},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, recs))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "duration_ms", rows[0][7])
	assert.Equal(t, []string{"1", "2024-01-01T10:00:00Z", "create", "connectors", ".json", "ok", "", "0.25"}, rows[1])
	assert.Equal(t, "boom, again", rows[2][6])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "", nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, []audit.Record{{ID: "x", Outcome: "ok"}}))
	assert.Contains(t, buf.String(), `"id": "x"`)
}

func TestWriteUnsupported(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, "xml", nil))
}
