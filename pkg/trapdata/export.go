package trapdata

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/dsmi313/tagratecheck/pkg/errors"
)

// DownstreamReleaseGroupColumn is the label the downstream analysis tool
// expects for the release-group assignment.
const DownstreamReleaseGroupColumn = "GenPBT_ByHatGenPBT_RGroup"

// Canonical tag-rate export column names expected by the downstream tool.
const (
	ExportGroupColumn = "PBT_RELEASE_GROUP"
	ExportRateColumn  = "TAG_RATE"
)

// trapExportHeader is the trap export layout: the fixed column contract
// with the downstream label inserted alongside the original releaseGroup.
func trapExportHeader() []string {
	header := make([]string, 0, len(TrapColumns)+1)
	for _, col := range TrapColumns {
		if col == "releaseGroup" {
			header = append(header, DownstreamReleaseGroupColumn)
		}
		header = append(header, col)
	}
	return header
}

// WriteTrapExport writes records to path in the normalized layout the
// downstream tool expects. Pure transform of its input.
func WriteTrapExport(path string, records []TrapRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trapExportHeader()); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, r := range records {
		release := r.Release.SourceValue()
		row := []string{
			r.ID,
			r.CollectionDate,
			r.StatWeek,
			r.MarkAD,
			string(r.Rear),
			r.PhysTag,
			r.PBTHatchery,
			r.PBTReleaseGroup,
			release, // downstream label
			release, // original column
			r.GenStock,
			r.MPG,
			r.Age,
			r.GenSex,
			r.ForkLength,
		}
		if err := w.Write(row); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return f.Close()
}

// WriteTagRateExport writes rates to path with exactly the two canonical
// downstream columns. Unparsed rate cells are preserved verbatim so a
// re-read reports the same anomalies.
func WriteTagRateExport(path string, rates []TagRateEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{ExportGroupColumn, ExportRateColumn}); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, e := range rates {
		cell := e.Raw
		if e.RateSet {
			cell = strconv.FormatFloat(e.Rate, 'g', -1, 64)
		}
		if err := w.Write([]string{e.Group, cell}); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return f.Close()
}
