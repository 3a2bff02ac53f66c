package trapdata

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/dsmi313/tagratecheck/pkg/errors"
)

// Dataset identifies one spawn-year/species input pair. File names follow
// the SY<year><species> convention used by the upstream workflow.
type Dataset struct {
	Year    int
	Species string
}

// datasetNamePattern matches dataset identifiers like SY2023Steelhead.
var datasetNamePattern = regexp.MustCompile(`^SY(\d{4})([A-Za-z]+)$`)

// ParseDataset parses a dataset identifier such as "SY2023Steelhead".
func ParseDataset(name string) (Dataset, error) {
	m := datasetNamePattern.FindStringSubmatch(name)
	if m == nil {
		return Dataset{}, errors.NewValidationError("dataset", name,
			"expected SY<year><species>, e.g. SY2023Steelhead")
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return Dataset{}, errors.WrapValidation("dataset", err)
	}
	return Dataset{Year: year, Species: m[2]}, nil
}

// Name returns the dataset identifier, e.g. "SY2023Steelhead".
func (d Dataset) Name() string {
	return fmt.Sprintf("SY%d%s", d.Year, d.Species)
}

// TrapFile returns the trap-table path for this dataset under dir.
func (d Dataset) TrapFile(dir string) string {
	return filepath.Join(dir, d.Name()+"_trap.csv")
}

// TagRateFile returns the tag-rate-table path for this dataset under dir.
func (d Dataset) TagRateFile(dir string) string {
	return filepath.Join(dir, d.Name()+"_tagRates.csv")
}
