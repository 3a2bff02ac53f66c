// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dsmi313/tagratecheck/pkg/reconcile"
	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ClassificationToTableData renders the bucket breakdown cross-tabulated
// by rear type, one row per rear-type code plus a totals row.
func ClassificationToTableData(c *reconcile.Classification) Data {
	headers := []string{"Rear Type"}
	for _, b := range reconcile.Buckets {
		headers = append(headers, string(b))
	}
	headers = append(headers, "Total")

	var rows [][]string
	for _, rear := range c.RearTypes() {
		row := []string{rear.Label()}
		total := 0
		for _, b := range reconcile.Buckets {
			n := c.ByRear[rear][b]
			total += n
			row = append(row, strconv.Itoa(n))
		}
		row = append(row, strconv.Itoa(total))
		rows = append(rows, row)
	}

	totals := []string{"Total"}
	for _, b := range reconcile.Buckets {
		totals = append(totals, strconv.Itoa(c.Counts[b]))
	}
	totals = append(totals, strconv.Itoa(c.Total))
	rows = append(rows, totals)

	alignment := make([]Align, len(headers))
	alignment[0] = AlignLeft
	for i := 1; i < len(alignment); i++ {
		alignment[i] = AlignRight
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: alignment}
}

// MarkBreakdownToTableData renders the optional mark-status cross-tab.
func MarkBreakdownToTableData(c *reconcile.Classification) Data {
	headers := []string{"Mark (AD)"}
	for _, b := range reconcile.Buckets {
		headers = append(headers, string(b))
	}

	var rows [][]string
	for _, mark := range c.MarkStatuses() {
		label := mark
		if label == "" {
			label = "(blank)"
		}
		row := []string{label}
		for _, b := range reconcile.Buckets {
			row = append(row, strconv.Itoa(c.ByMark[mark][b]))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// CoverageToTableData renders the missing-group impact table.
func CoverageToTableData(cov *reconcile.Coverage) Data {
	headers := []string{"Release Group", "Affected Fish", "By Rear Type"}
	var rows [][]string
	for _, m := range cov.Missing {
		rows = append(rows, []string{
			m.Group,
			strconv.Itoa(m.Records),
			rearBreakdown(m.ByRear),
		})
	}
	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
}

// AnomaliesToTableData renders tag-rate and derivation anomalies.
func AnomaliesToTableData(anomalies []reconcile.Anomaly) Data {
	headers := []string{"Kind", "Group/Record", "Detail"}
	var rows [][]string
	for _, a := range anomalies {
		subject := a.Group
		if subject == "" {
			subject = a.Record
		}
		rows = append(rows, []string{string(a.Kind), subject, a.Message})
	}
	return Data{Headers: headers, Rows: rows}
}

// rearBreakdown formats a per-rear-type count map compactly, e.g. "H:3 HNC:1".
func rearBreakdown(byRear map[trapdata.RearType]int) string {
	out := ""
	for _, rear := range []trapdata.RearType{trapdata.RearWild, trapdata.RearHatchery, trapdata.RearHatcheryNoClip} {
		if n, ok := byRear[rear]; ok {
			if out != "" {
				out += " "
			}
			out += fmt.Sprintf("%s:%d", rear, n)
		}
	}
	var unknown []trapdata.RearType
	for rear := range byRear {
		if !rear.Known() {
			unknown = append(unknown, rear)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	for _, rear := range unknown {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%s:%d", rear.Label(), byRear[rear])
	}
	return out
}
