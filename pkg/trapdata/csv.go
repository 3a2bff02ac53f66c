package trapdata

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dsmi313/tagratecheck/pkg/errors"
)

// TrapColumns is the required trap-table column set, in export order.
// The names are a fixed contract with the upstream trap-record producers.
var TrapColumns = []string{
	"MasterID",
	"CollectionDate",
	"sWeek",
	"LGDMarkAD",
	"Rear",
	"physTag",
	"PBTBYHat",
	"PBTRGroup",
	"releaseGroup",
	"GenStock",
	"MPG",
	"Age",
	"GenSex",
	"LGDFLmm",
}

// Canonical tag-rate column names. The reader normalizes every accepted
// header spelling to these before any computation sees the data.
const (
	TagRateGroupColumn = "group"
	TagRateRateColumn  = "tagRate"
)

// ReadTrapRecords loads the trap table from path. A missing required
// column is a fatal schema error; extra columns are ignored.
func ReadTrapRecords(path string) ([]TrapRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // column check is ours, row by row

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParseError("csv", path, "missing header row", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range TrapColumns {
		if _, ok := index[col]; !ok {
			return nil, errors.NewSchemaError(path, col)
		}
	}

	field := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []TrapRecord
	line := 1
	for {
		row, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &errors.ParseError{Format: "csv", File: path, Line: line, Message: "malformed row", Err: err}
		}
		records = append(records, TrapRecord{
			ID:              field(row, "MasterID"),
			CollectionDate:  field(row, "CollectionDate"),
			StatWeek:        field(row, "sWeek"),
			MarkAD:          field(row, "LGDMarkAD"),
			Rear:            RearType(field(row, "Rear")),
			PhysTag:         field(row, "physTag"),
			PBTHatchery:     field(row, "PBTBYHat"),
			PBTReleaseGroup: field(row, "PBTRGroup"),
			Release:         ParseReleaseGroup(field(row, "releaseGroup")),
			GenStock:        field(row, "GenStock"),
			MPG:             field(row, "MPG"),
			Age:             field(row, "Age"),
			GenSex:          field(row, "GenSex"),
			ForkLength:      field(row, "LGDFLmm"),
		})
	}
	return records, nil
}

// TagRateReadOptions controls header tolerance for the tag-rate table.
type TagRateReadOptions struct {
	// Strict turns the positional-column fallback into a fatal schema
	// error instead of a warning.
	Strict bool
	// Logger receives the fallback warning. Nil discards it.
	Logger *zerolog.Logger
}

// ReadTagRates loads the tag-rate table from path. Accepted headers are
// group/tagRate or PBT_RELEASE_GROUP/TAG_RATE (case-insensitive); when
// neither matches, columns one and two are used positionally unless
// opts.Strict is set.
func ReadTagRates(path string, opts TagRateReadOptions) ([]TagRateEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParseError("csv", path, "missing header row", err)
	}

	groupIdx, rateIdx, matched := locateTagRateColumns(header)
	if !matched {
		if opts.Strict {
			return nil, &errors.SchemaError{
				File:    path,
				Column:  TagRateGroupColumn,
				Message: "no recognized tag-rate header and strict mode refuses positional fallback",
			}
		}
		if opts.Logger != nil {
			opts.Logger.Warn().
				Str("file", path).
				Strs("header", header).
				Msg("Unrecognized tag-rate header, falling back to positional columns 1 and 2")
		}
		if len(header) < 2 {
			return nil, &errors.SchemaError{
				File:    path,
				Column:  TagRateRateColumn,
				Message: "fewer than two columns",
			}
		}
		groupIdx, rateIdx = 0, 1
	}

	var entries []TagRateEntry
	line := 1
	for {
		row, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &errors.ParseError{Format: "csv", File: path, Line: line, Message: "malformed row", Err: err}
		}
		entry := TagRateEntry{}
		if groupIdx < len(row) {
			entry.Group = strings.TrimSpace(row[groupIdx])
		}
		if rateIdx < len(row) {
			entry.Raw = strings.TrimSpace(row[rateIdx])
		}
		if entry.Raw != "" {
			if rate, err := strconv.ParseFloat(entry.Raw, 64); err == nil {
				entry.Rate = rate
				entry.RateSet = true
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// locateTagRateColumns matches the accepted header spellings.
func locateTagRateColumns(header []string) (groupIdx, rateIdx int, matched bool) {
	groupIdx, rateIdx = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "group", "pbt_release_group":
			if groupIdx == -1 {
				groupIdx = i
			}
		case "tagrate", "tag_rate":
			if rateIdx == -1 {
				rateIdx = i
			}
		}
	}
	if groupIdx >= 0 && rateIdx >= 0 {
		return groupIdx, rateIdx, true
	}
	return 0, 1, false
}
