package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dsmi313/tagratecheck/pkg/errors"
	"github.com/dsmi313/tagratecheck/pkg/logging"
	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

// inputFlags holds the input-selection flags shared by check and export.
type inputFlags struct {
	dir      string
	trapPath string
	ratePath string
	strict   bool
}

// addInputFlags registers the shared input flags on a command.
func addInputFlags(cmd *cobra.Command) *inputFlags {
	f := &inputFlags{}
	cmd.Flags().StringVar(&f.dir, "dir", ".", "Directory holding the SY<year><species> input files")
	cmd.Flags().StringVar(&f.trapPath, "trap", "", "Trap table path (overrides the dataset naming convention)")
	cmd.Flags().StringVar(&f.ratePath, "tag-rates", "", "Tag-rate table path (overrides the dataset naming convention)")
	cmd.Flags().BoolVar(&f.strict, "strict", false,
		"Fail on unrecognized tag-rate headers instead of falling back to positional columns")
	return f
}

// resolve turns the dataset argument and flag overrides into concrete file
// paths. A dataset argument like SY2023Steelhead supplies defaults; explicit
// paths win.
func (f *inputFlags) resolve(args []string) (dataset, trapPath, ratePath string, err error) {
	if len(args) > 0 {
		ds, err := trapdata.ParseDataset(args[0])
		if err != nil {
			return "", "", "", err
		}
		dataset = ds.Name()
		trapPath = ds.TrapFile(f.dir)
		ratePath = ds.TagRateFile(f.dir)
	}
	if f.trapPath != "" {
		trapPath = f.trapPath
	}
	if f.ratePath != "" {
		ratePath = f.ratePath
	}
	if trapPath == "" || ratePath == "" {
		return "", "", "", errors.New("no input files: pass a dataset like SY2023Steelhead or both --trap and --tag-rates")
	}
	return dataset, trapPath, ratePath, nil
}

// loadTables reads both input tables, logging progress.
func (f *inputFlags) loadTables(trapPath, ratePath string) ([]trapdata.TrapRecord, []trapdata.TagRateEntry, error) {
	logger := logging.Default()

	records, err := trapdata.ReadTrapRecords(trapPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug().Str("file", trapPath).Int("records", len(records)).Msg("Loaded trap table")

	rates, err := trapdata.ReadTagRates(ratePath, trapdata.TagRateReadOptions{
		Strict: f.strict,
		Logger: logger,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug().Str("file", ratePath).Int("entries", len(rates)).Msg("Loaded tag-rate table")

	return records, rates, nil
}
