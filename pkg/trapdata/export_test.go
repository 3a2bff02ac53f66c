package trapdata_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteTrapExport(t *testing.T) {
	records := []trapdata.TrapRecord{
		{
			ID:              "F001",
			CollectionDate:  "2023-04-02",
			StatWeek:        "14",
			MarkAD:          "AD",
			Rear:            trapdata.RearHatchery,
			PhysTag:         "NT",
			PBTHatchery:     "Rapid River",
			PBTReleaseGroup: "RAPH-15-S",
			Release:         trapdata.ParseReleaseGroup("RAPH-15-S"),
			Age:             "1",
			GenSex:          "F",
			ForkLength:      "620",
		},
		{
			ID:      "F002",
			Rear:    trapdata.RearWild,
			Release: trapdata.ParseReleaseGroup("Unassigned"),
		},
	}

	path := filepath.Join(t.TempDir(), "trap_out.csv")
	require.NoError(t, trapdata.WriteTrapExport(path, records))

	rows := readRows(t, path)
	require.Len(t, rows, 3)

	header := rows[0]
	// The downstream label sits alongside the original column.
	assert.Contains(t, header, trapdata.DownstreamReleaseGroupColumn)
	assert.Contains(t, header, "releaseGroup")

	byName := func(row []string, col string) string {
		for i, h := range header {
			if h == col {
				return row[i]
			}
		}
		t.Fatalf("column %q not in header %v", col, header)
		return ""
	}

	assert.Equal(t, "RAPH-15-S", byName(rows[1], trapdata.DownstreamReleaseGroupColumn))
	assert.Equal(t, "RAPH-15-S", byName(rows[1], "releaseGroup"))
	assert.Equal(t, "Unassigned", byName(rows[2], trapdata.DownstreamReleaseGroupColumn))
	assert.Equal(t, "Unassigned", byName(rows[2], "releaseGroup"))
}

func TestWriteTagRateExport(t *testing.T) {
	rates := []trapdata.TagRateEntry{
		{Group: "G1", Rate: 0.85, RateSet: true, Raw: "0.85"},
		{Group: "G2", Raw: "n/a"},
	}

	path := filepath.Join(t.TempDir(), "rates_out.csv")
	require.NoError(t, trapdata.WriteTagRateExport(path, rates))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"PBT_RELEASE_GROUP", "TAG_RATE"}, rows[0])
	assert.Equal(t, []string{"G1", "0.85"}, rows[1])
	// Unparsed cells are preserved so a re-read reports the same anomaly.
	assert.Equal(t, []string{"G2", "n/a"}, rows[2])
}

func TestExportRoundTrip(t *testing.T) {
	// Re-reading an export must yield the same records, so any check run
	// on the exported tables matches the original run.
	records := []trapdata.TrapRecord{
		{ID: "F001", Rear: trapdata.RearHatchery, Release: trapdata.ParseReleaseGroup("G1")},
		{ID: "F002", Rear: trapdata.RearWild, Release: trapdata.ParseReleaseGroup("Unassigned")},
		{ID: "F003", Rear: trapdata.RearHatchery, Release: trapdata.ParseReleaseGroup("")},
	}
	rates := []trapdata.TagRateEntry{
		{Group: "G1", Rate: 0.85, RateSet: true, Raw: "0.85"},
	}

	dir := t.TempDir()
	trapOut := filepath.Join(dir, "trap.csv")
	rateOut := filepath.Join(dir, "rates.csv")
	require.NoError(t, trapdata.WriteTrapExport(trapOut, records))
	require.NoError(t, trapdata.WriteTagRateExport(rateOut, rates))

	gotRecords, err := trapdata.ReadTrapRecords(trapOut)
	require.NoError(t, err)
	require.Len(t, gotRecords, len(records))
	for i := range records {
		assert.Equal(t, records[i].ID, gotRecords[i].ID)
		assert.Equal(t, records[i].Release, gotRecords[i].Release)
		assert.Equal(t, records[i].Rear, gotRecords[i].Rear)
	}

	gotRates, err := trapdata.ReadTagRates(rateOut, trapdata.TagRateReadOptions{})
	require.NoError(t, err)
	require.Len(t, gotRates, 1)
	assert.Equal(t, "G1", gotRates[0].Group)
	assert.Equal(t, 0.85, gotRates[0].Rate)
}
